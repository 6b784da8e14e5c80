// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by taproom's packages:
// users and roles, admin sessions, dashboard aggregates and error kinds.
package model

import (
	"database/sql"
	"fmt"
	"time"
)

// Role is the closed set of user roles.
type Role string

// Known roles. ADMIN is the only role with access to the admin area.
const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsPrivileged reports whether the role may use the admin area.
func (r Role) IsPrivileged() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleClient:
		return false
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// User represents a storefront account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash sql.NullString `json:"-"` // Never expose in JSON
	Name         string         `json:"name"`
	Role         Role           `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	LastLoginAt  sql.NullTime   `json:"-"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.IsPrivileged()
}

// PublicUser is the user shape returned by the admin API.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Public strips credentials and bookkeeping fields.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
