// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session persists admin sessions and carries their tokens in a
// signed cookie.
package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// TokenBytes is the number of random bytes in a session token.
const TokenBytes = 32

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Store manages admin sessions. A user has at most one session at a time.
type Store struct {
	db      *sql.DB
	queries *store.Queries
	ttl     time.Duration
	now     func() time.Time
}

// NewStore creates a session store. A zero or negative ttl disables expiry.
func NewStore(db *sql.DB, queries *store.Queries, ttl time.Duration) *Store {
	return &Store{
		db:      db,
		queries: queries,
		ttl:     ttl,
		now:     time.Now,
	}
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// CreateSession issues a new token for userID and persists it. Any session the
// user already had is removed in the same transaction.
func (s *Store) CreateSession(ctx context.Context, userID string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%w: begin session tx: %v", model.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	if _, err := qtx.DeleteAdminSessionsByUser(ctx, userID); err != nil {
		return "", fmt.Errorf("%w: clearing sessions: %v", model.ErrPersistence, err)
	}
	if err := qtx.UpsertAdminSession(ctx, model.AdminSession{
		Token:     token,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return "", fmt.Errorf("%w: creating session: %v", model.ErrPersistence, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: commit session tx: %v", model.ErrPersistence, err)
	}
	return token, nil
}

// InvalidateSessionsForUser deletes every session of userID.
func (s *Store) InvalidateSessionsForUser(ctx context.Context, userID string) error {
	if _, err := s.queries.DeleteAdminSessionsByUser(ctx, userID); err != nil {
		return fmt.Errorf("%w: invalidating sessions: %v", model.ErrPersistence, err)
	}
	return nil
}

// GetSession returns the session for token together with its user.
// It returns nil and no error when the token is empty, unknown or expired.
func (s *Store) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := s.queries.GetAdminSessionWithUser(ctx, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading session: %v", model.ErrPersistence, err)
	}
	if sess.Expired(s.ttl, s.now()) {
		return nil, nil
	}
	return &sess, nil
}

// DeleteSession removes the session for token. Unknown tokens are ignored.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.queries.DeleteAdminSession(ctx, token); err != nil {
		return fmt.Errorf("%w: deleting session: %v", model.ErrPersistence, err)
	}
	return nil
}

// PurgeExpired removes sessions older than the TTL and returns how many
// were deleted.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	n, err := s.queries.DeleteAdminSessionsCreatedBefore(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, fmt.Errorf("%w: purging sessions: %v", model.ErrPersistence, err)
	}
	return n, nil
}

// CountSessions returns the number of stored sessions, expired ones included.
func (s *Store) CountSessions(ctx context.Context) (int64, error) {
	n, err := s.queries.CountAdminSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: counting sessions: %v", model.ErrPersistence, err)
	}
	return n, nil
}

func generateToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
