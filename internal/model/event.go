// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth      = "auth"
	EventCategorySession   = "session"
	EventCategoryDashboard = "dashboard"
	EventCategorySystem    = "system"
)

// Event is an audit log entry.
type Event struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"-"` // JSON object
	CreatedAt time.Time `json:"createdAt"`
}

// IsEventLevel reports whether level is one of the stored event levels.
func IsEventLevel(level string) bool {
	switch level {
	case EventLevelInfo, EventLevelWarning, EventLevelError:
		return true
	}
	return false
}

// IsEventCategory reports whether category is one of the known categories.
func IsEventCategory(category string) bool {
	switch category {
	case EventCategoryAuth, EventCategorySession, EventCategoryDashboard, EventCategorySystem:
		return true
	}
	return false
}
