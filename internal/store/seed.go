// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/taproom/internal/auth"
	"github.com/olegiv/taproom/internal/model"
)

// AdminSeed describes the administrator created on first start.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// Seed creates the administrator account if it does not exist yet.
func Seed(ctx context.Context, q *Queries, admin AdminSeed) error {
	_, err := q.GetUserByEmail(ctx, admin.Email)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "email", admin.Email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        admin.Email,
		PasswordHash: sql.NullString{String: passwordHash, Valid: true},
		Name:         admin.Name,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user", "id", user.ID, "email", user.Email)
	return nil
}
