// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
	"github.com/olegiv/taproom/internal/testutil"
)

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries) {
	t.Helper()
	_, q := testutil.TestQueries(t)
	return slog.New(NewEventLogHandler(discardHandler{}, q)), q
}

func events(t *testing.T, q *store.Queries) []model.Event {
	t.Helper()
	evs, err := q.ListRecentEvents(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return evs
}

func TestEventLogHandler_Levels(t *testing.T) {
	logger, q := newTestLogger(t)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	evs := events(t, q)
	if len(evs) != 2 {
		t.Fatalf("got %d events, want 2", len(evs))
	}
	levels := map[string]bool{}
	for _, e := range evs {
		levels[e.Level] = true
	}
	if !levels[model.EventLevelWarning] || !levels[model.EventLevelError] {
		t.Errorf("levels = %v, want warning and error", levels)
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	_, q := testutil.TestQueries(t)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, q, slog.LevelError))

	logger.Warn("not recorded")
	logger.Error("recorded")

	evs := events(t, q)
	if len(evs) != 1 || evs[0].Message != "recorded" {
		t.Errorf("events = %+v, want only the error", evs)
	}
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		msg   string
		attrs []slog.Attr
		want  string
	}{
		{msg: "admin login failed", want: model.EventCategoryAuth},
		{msg: "Account locked", want: model.EventCategoryAuth},
		{msg: "session lookup failed", want: model.EventCategorySession},
		{msg: "monthly revenue failed", want: model.EventCategoryDashboard},
		{msg: "disk almost full", want: model.EventCategorySystem},
		{
			msg:   "admin login failed",
			attrs: []slog.Attr{slog.String("category", model.EventCategorySession)},
			want:  model.EventCategorySession,
		},
		{
			msg:   "admin login failed",
			attrs: []slog.Attr{slog.String("category", "page")},
			want:  model.EventCategoryAuth,
		},
		{
			msg:   "disk almost full",
			attrs: []slog.Attr{slog.String("category", "")},
			want:  model.EventCategorySystem,
		},
	}

	for _, tt := range tests {
		if got := extractCategory(tt.msg, tt.attrs); got != tt.want {
			t.Errorf("extractCategory(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	logger, q := newTestLogger(t)

	logger.With("request_id", "r-1").
		WithGroup("db").
		Warn("admin login failed",
			"category", model.EventCategoryAuth,
			"email", "admin@example.com",
			"password", "hunter2",
			"note", "quote \" and\nnewline",
		)

	evs := events(t, q)
	if len(evs) != 1 {
		t.Fatalf("got %d events, want 1", len(evs))
	}
	e := evs[0]
	if e.Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want auth", e.Category)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata %q is not JSON: %v", e.Metadata, err)
	}
	want := map[string]string{
		"request_id": "r-1",
		"db.email":   "admin@example.com",
		"db.note":    "quote \" and\nnewline",
	}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, meta[k], v)
		}
	}
	if _, ok := meta["db.password"]; ok {
		t.Error("password must be redacted")
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	logger, q := newTestLogger(t)
	logger.Warn("bare warning")

	if evs := events(t, q); len(evs) != 1 || evs[0].Metadata != "{}" {
		t.Errorf("events = %+v, want one with {} metadata", evs)
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}
	for _, tt := range tests {
		if got := slogLevelToEventLevel(tt.level); got != tt.want {
			t.Errorf("slogLevelToEventLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestEventLogHandler_UnknownCategoryIsFilterable(t *testing.T) {
	logger, q := newTestLogger(t)

	logger.Warn("session lookup failed", "category", "caching")

	n, err := q.CountEvents(context.Background(), store.EventFilter{Category: model.EventCategorySession})
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if n != 1 {
		t.Errorf("session events = %d, want 1", n)
	}
}
