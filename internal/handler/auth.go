// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP handlers of the admin API.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/taproom/internal/auth"
	"github.com/olegiv/taproom/internal/middleware"
	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/session"
	"github.com/olegiv/taproom/internal/store"
)

// AuthHandler handles admin login, session lookup and logout.
type AuthHandler struct {
	queries         *store.Queries
	sessions        *session.Store
	codec           *session.CookieCodec
	loginProtection *middleware.LoginProtection
	metrics         *middleware.Metrics
	simulateCheck   func(password string)
}

// NewAuthHandler creates a new AuthHandler. lp and metrics may be nil.
func NewAuthHandler(queries *store.Queries, sessions *session.Store, codec *session.CookieCodec, lp *middleware.LoginProtection, metrics *middleware.Metrics) *AuthHandler {
	return &AuthHandler{
		queries:         queries,
		sessions:        sessions,
		codec:           codec,
		loginProtection: lp,
		metrics:         metrics,
		simulateCheck:   auth.SimulateCheck,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /admin/api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, fmt.Errorf("%w: email and password are required", model.ErrValidation))
		return
	}

	user, err := h.authenticate(r.Context(), req, remoteIP(r))
	if err != nil {
		if statusForError(err) == http.StatusInternalServerError {
			slog.Error("admin login failed", "category", model.EventCategoryAuth, "error", err)
		}
		writeError(w, err)
		return
	}

	if err := h.sessions.InvalidateSessionsForUser(r.Context(), user.ID); err != nil {
		slog.Error("invalidating previous sessions failed", "category", model.EventCategorySession, "error", err, "user_id", user.ID)
		writeError(w, err)
		return
	}
	token, err := h.sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		slog.Error("creating admin session failed", "category", model.EventCategorySession, "error", err, "user_id", user.ID)
		writeError(w, err)
		return
	}
	if err := h.codec.Set(w, token); err != nil {
		slog.Error("encoding session cookie failed", "category", model.EventCategorySession, "error", err)
		writeError(w, err)
		return
	}

	h.metrics.RecordLogin(middleware.LoginOutcomeSuccess)
	slog.Info("admin logged in", "category", model.EventCategoryAuth, "user_id", user.ID, "email", user.Email)

	writeJSON(w, http.StatusOK, map[string]any{"user": user.Public()})
}

// authenticate checks the credentials and returns the administrator they
// belong to. Unknown emails, wrong passwords, missing hashes and non-admin
// roles all yield model.ErrAuthentication.
func (h *AuthHandler) authenticate(ctx context.Context, req loginRequest, ip string) (*model.User, error) {
	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(req.Email); locked {
			h.metrics.RecordLogin(middleware.LoginOutcomeLocked)
			slog.Warn("login attempt on locked admin account",
				"category", model.EventCategoryAuth,
				"email", req.Email,
				"ip", ip,
				"remaining", remaining.Round(time.Second).String(),
			)
			return nil, fmt.Errorf("%w: account locked", model.ErrRateLimited)
		}
	}

	user, err := h.queries.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: loading user: %v", model.ErrPersistence, err)
	}

	var reason string
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.simulateCheck(req.Password)
		reason = "user not found"
	default:
		valid, verr := auth.VerifyPassword(req.Password, user.PasswordHash)
		switch {
		case verr != nil:
			slog.Error("stored password hash is unusable", "category", model.EventCategoryAuth, "user_id", user.ID, "error", verr)
			reason = "unusable password hash"
		case !valid:
			reason = "invalid password"
		case !user.IsAdmin():
			reason = "role " + user.Role.String()
		}
	}

	if reason != "" {
		return nil, h.loginFailed(req.Email, ip, reason)
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Email)
	}
	h.afterLogin(ctx, &user, req.Password)
	return &user, nil
}

// loginFailed records a failed attempt and returns the error for the caller.
func (h *AuthHandler) loginFailed(email, ip, reason string) error {
	h.metrics.RecordLogin(middleware.LoginOutcomeFailure)
	slog.Warn("admin login failed",
		"category", model.EventCategoryAuth,
		"email", email,
		"ip", ip,
		"reason", reason,
	)

	if h.loginProtection != nil {
		if locked, d := h.loginProtection.RecordFailedAttempt(email); locked {
			return fmt.Errorf("%w: account locked for %s", model.ErrRateLimited, d)
		}
	}
	return fmt.Errorf("%w: %s", model.ErrAuthentication, reason)
}

// afterLogin upgrades outdated password hashes and stamps the login time.
// Failures are logged and do not block the login.
func (h *AuthHandler) afterLogin(ctx context.Context, user *model.User, password string) {
	now := time.Now()

	if auth.NeedsRehash(user.PasswordHash.String) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(ctx, user.ID, newHash, now); err != nil {
				slog.Error("failed to re-hash password", "category", model.EventCategoryAuth, "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with current parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
		slog.Error("failed to update last login time", "category", model.EventCategoryAuth, "error", err, "user_id", user.ID)
	}
}

// Session handles GET /admin/api/session. It reports the logged-in
// administrator, or a null user.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := middleware.AdminSessionFromRequest(r, h.sessions, h.codec)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			writeJSON(w, http.StatusOK, map[string]any{"user": nil})
			return
		}
		slog.Error("session lookup failed", "category", model.EventCategorySession, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": sess.User.Public()})
}

// Logout handles DELETE /admin/api/session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := h.codec.Read(r)
	h.codec.Clear(w)
	if err != nil {
		writeJSONSuccess(w, nil)
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), token); err != nil {
		slog.Error("deleting admin session failed", "category", model.EventCategorySession, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("admin logged out")
	writeJSONSuccess(w, nil)
}

// remoteIP returns the host part of RemoteAddr.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
