// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "errors"

// Error kinds. Wrap them with fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation error")
	// ErrAuthentication marks bad credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization marks an authenticated caller without the required role.
	ErrAuthorization = errors.New("insufficient permissions")
	// ErrUnauthorized is the session guard outcome. It does not reveal whether
	// the session was missing or the role was insufficient.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPersistence marks a database failure.
	ErrPersistence = errors.New("persistence error")
	// ErrRateLimited marks a throttled login attempt.
	ErrRateLimited = errors.New("too many attempts")
)
