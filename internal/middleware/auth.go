// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// request protection and instrumentation.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/taproom/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdminSession holds the authenticated *model.Session.
const ContextKeyAdminSession ContextKey = "admin_session"

// SessionLookup resolves a session token to a live session.
// It returns nil and no error when the session does not exist.
type SessionLookup interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
}

// TokenReader extracts the session token from a request.
type TokenReader interface {
	Read(r *http.Request) (string, error)
}

// AdminSessionFromRequest returns the session of the calling administrator.
// A missing or invalid cookie, an unknown session and a non-admin user all
// yield model.ErrUnauthorized. Lookup failures wrap model.ErrPersistence.
func AdminSessionFromRequest(r *http.Request, sessions SessionLookup, tokens TokenReader) (*model.Session, error) {
	token, err := tokens.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}

	sess, err := sessions.GetSession(r.Context(), token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: session not found", model.ErrUnauthorized)
	}
	if !sess.User.IsAdmin() {
		slog.Warn("admin access denied",
			"user_id", sess.User.ID,
			"role", sess.User.Role.String(),
			"path", r.URL.Path,
		)
		return nil, fmt.Errorf("%w: role %s", model.ErrUnauthorized, sess.User.Role)
	}
	return sess, nil
}

// RequireAdmin rejects requests that do not carry the session of an
// administrator. The session is stored in the request context for handlers.
func RequireAdmin(sessions SessionLookup, tokens TokenReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := AdminSessionFromRequest(r, sessions, tokens)
			if err != nil {
				if errors.Is(err, model.ErrUnauthorized) {
					writeJSONError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
				slog.Error("session lookup failed", "error", err, "path", r.URL.Path)
				writeJSONError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminSession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminSession returns the session stored by RequireAdmin, or nil.
func GetAdminSession(r *http.Request) *model.Session {
	if sess, ok := r.Context().Value(ContextKeyAdminSession).(*model.Session); ok {
		return sess
	}
	return nil
}

// GetUser returns the user of the admin session, or nil.
func GetUser(r *http.Request) *model.User {
	if sess := GetAdminSession(r); sess != nil {
		return &sess.User
	}
	return nil
}
