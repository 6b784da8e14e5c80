// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// AdminSession is a persisted admin session row.
type AdminSession struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

// Session is an admin session joined with its owning user.
type Session struct {
	AdminSession
	User User
}

// ExpiresAt returns the moment the session stops being valid for the given TTL.
// A zero or negative TTL means the session never expires.
func (s *AdminSession) ExpiresAt(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return s.CreatedAt.Add(ttl)
}

// Expired reports whether the session is past its TTL at now.
func (s *AdminSession) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return !now.Before(s.CreatedAt.Add(ttl))
}
