// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for taproom.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/taproom/internal/auth"
	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that only outputs errors.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary SQLite database with migrations applied.
// The database is closed when the test finishes.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "taproom-test.db")
	db, err := store.NewDB(store.DialectSQLite, dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db, store.DialectSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestQueries returns a migrated database together with its queries.
func TestQueries(t *testing.T) (*sql.DB, *store.Queries) {
	t.Helper()
	db := TestDB(t)
	return db, store.New(db, store.DialectSQLite)
}

// CreateUser inserts a user with the given password hashed with argon2id.
// An empty password leaves the hash NULL.
func CreateUser(t *testing.T, q *store.Queries, email, password string, role model.Role) model.User {
	t.Helper()

	var hash sql.NullString
	if password != "" {
		h, err := auth.HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		hash = sql.NullString{String: h, Valid: true}
	}

	u, err := q.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test " + string(role),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

// CreateOrder inserts an order with the given total and creation time.
func CreateOrder(t *testing.T, q *store.Queries, total float64, createdAt time.Time) {
	t.Helper()

	if _, err := q.CreateOrder(context.Background(), store.CreateOrderParams{
		Total:     total,
		CreatedAt: createdAt,
	}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
}
