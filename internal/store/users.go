// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/taproom/internal/model"
)

const userColumns = `id, email, password_hash, name, role, created_at, updated_at, last_login_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var (
		u    model.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if err != nil {
		return model.User{}, err
	}
	if u.Role, err = model.ParseRole(role); err != nil {
		return model.User{}, fmt.Errorf("user %s: %w", u.ID, err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by email. Emails are compared lower-cased.
// Returns sql.ErrNoRows when there is no such user.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, normalizeEmail(email))
	return scanUser(row)
}

// GetUserByID looks a user up by id. Returns sql.ErrNoRows when missing.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	row := q.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// CreateUserParams holds the fields of a new user. ID is generated when empty.
type CreateUserParams struct {
	ID           string
	Email        string
	PasswordHash sql.NullString
	Name         string
	Role         model.Role
	CreatedAt    time.Time
}

// CreateUser inserts a user and returns it.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	if arg.ID == "" {
		arg.ID = uuid.NewString()
	}
	if arg.CreatedAt.IsZero() {
		arg.CreatedAt = time.Now()
	}
	if _, err := model.ParseRole(string(arg.Role)); err != nil {
		return model.User{}, err
	}
	createdAt := arg.CreatedAt.UTC()

	_, err := q.exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, normalizeEmail(arg.Email), arg.PasswordHash, arg.Name, string(arg.Role), createdAt, createdAt)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id, hash string, updatedAt time.Time) error {
	_, err := q.exec(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, updatedAt.UTC(), id)
	return err
}

// UpdateUserLastLogin records a successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := q.exec(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at.UTC(), id)
	return err
}

// DeleteUser removes a user. Their admin session goes with them.
func (q *Queries) DeleteUser(ctx context.Context, id string) error {
	_, err := q.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// CountUsersByRole counts users with the given role.
func (q *Queries) CountUsersByRole(ctx context.Context, role model.Role) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, string(role))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
