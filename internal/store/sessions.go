// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/taproom/internal/model"
)

// UpsertAdminSession stores the session of a user, replacing any session the
// user already had. The unique user_id column makes this a single atomic write.
func (q *Queries) UpsertAdminSession(ctx context.Context, s model.AdminSession) error {
	_, err := q.exec(ctx,
		`INSERT INTO admin_sessions (id, user_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET id = excluded.id, created_at = excluded.created_at`,
		s.Token, s.UserID, s.CreatedAt.UTC())
	return err
}

// DeleteAdminSessionsByUser removes every session of a user.
func (q *Queries) DeleteAdminSessionsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := q.exec(ctx, `DELETE FROM admin_sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetAdminSessionWithUser loads a session and its user by token.
// Returns sql.ErrNoRows when the token is unknown.
func (q *Queries) GetAdminSessionWithUser(ctx context.Context, token string) (model.Session, error) {
	row := q.queryRow(ctx,
		`SELECT s.id, s.user_id, s.created_at,
		        u.id, u.email, u.password_hash, u.name, u.role, u.created_at, u.updated_at, u.last_login_at
		 FROM admin_sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.id = ?`, token)

	var (
		s    model.Session
		role string
	)
	err := row.Scan(&s.Token, &s.UserID, &s.CreatedAt,
		&s.User.ID, &s.User.Email, &s.User.PasswordHash, &s.User.Name, &role,
		&s.User.CreatedAt, &s.User.UpdatedAt, &s.User.LastLoginAt)
	if err != nil {
		return model.Session{}, err
	}
	if s.User.Role, err = model.ParseRole(role); err != nil {
		return model.Session{}, fmt.Errorf("user %s: %w", s.User.ID, err)
	}
	return s, nil
}

// DeleteAdminSession removes a session by token. Unknown tokens are not an error.
func (q *Queries) DeleteAdminSession(ctx context.Context, token string) error {
	_, err := q.exec(ctx, `DELETE FROM admin_sessions WHERE id = ?`, token)
	return err
}

// DeleteAdminSessionsCreatedBefore removes sessions created before cutoff.
func (q *Queries) DeleteAdminSessionsCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.exec(ctx, `DELETE FROM admin_sessions WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountAdminSessionsByUser counts the sessions of one user.
func (q *Queries) CountAdminSessionsByUser(ctx context.Context, userID string) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM admin_sessions WHERE user_id = ?`, userID)
}

// CountAdminSessionsCreatedSince counts sessions created at or after cutoff.
func (q *Queries) CountAdminSessionsCreatedSince(ctx context.Context, cutoff time.Time) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM admin_sessions WHERE created_at >= ?`, cutoff.UTC())
}

// CountAdminSessions counts all stored sessions.
func (q *Queries) CountAdminSessions(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM admin_sessions`)
}
