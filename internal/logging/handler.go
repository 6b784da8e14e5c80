// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into the events table for auditing.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// writeTimeout bounds a single event insert.
const writeTimeout = 2 * time.Second

// redactedKeys are attribute keys never copied into event metadata.
var redactedKeys = map[string]bool{
	"password": true,
	"token":    true,
	"secret":   true,
}

// EventLogHandler wraps another handler and also writes records at or above
// its level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
	attrs   []slog.Attr
	group   string
}

// NewEventLogHandler creates an EventLogHandler that records WARN and above.
func NewEventLogHandler(inner slog.Handler, queries *store.Queries) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, queries, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates an EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, queries *store.Queries, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: queries,
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level) || level >= h.level
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.inner.Enabled(ctx, r.Level) {
		if err := h.inner.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), h.qualify(attrs)...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *EventLogHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

// writeToEventLog inserts the record. It runs detached from the request
// context so events survive cancelled requests. Insert failures go to stderr;
// logging them through slog would recurse.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	attrs := append([]slog.Attr(nil), h.attrs...)
	var own []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)
		return true
	})
	attrs = append(attrs, h.qualify(own)...)

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	err := h.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     slogLevelToEventLevel(r.Level),
		Category:  extractCategory(r.Message, attrs),
		Message:   r.Message,
		Metadata:  extractMetadata(attrs),
		CreatedAt: r.Time,
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("event log write failed: " + err.Error() + "\n")
	}
}

// slogLevelToEventLevel converts a slog.Level to an event level.
func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory returns the "category" attribute when it names a known
// category, or infers one from the message.
func extractCategory(msg string, attrs []slog.Attr) string {
	for _, a := range attrs {
		if a.Key == "category" {
			if c := a.Value.String(); model.IsEventCategory(c) {
				return c
			}
		}
	}

	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "password") || strings.Contains(msg, "account"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "session") || strings.Contains(msg, "cookie"):
		return model.EventCategorySession
	case strings.Contains(msg, "dashboard") || strings.Contains(msg, "revenue") ||
		strings.Contains(msg, "metrics"):
		return model.EventCategoryDashboard
	default:
		return model.EventCategorySystem
	}
}

func redacted(key string) bool {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	return redactedKeys[strings.ToLower(key)]
}

// extractMetadata renders the attributes as a flat JSON object of strings.
func extractMetadata(attrs []slog.Attr) string {
	meta := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Key == "category" || redacted(a.Key) {
			continue
		}
		meta[a.Key] = a.Value.Resolve().String()
	}
	if len(meta) == 0 {
		return "{}"
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return "{}"
	}
	return string(b)
}
