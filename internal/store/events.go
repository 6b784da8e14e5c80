// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/taproom/internal/model"
)

// CreateEventParams holds the fields of a new audit event.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an audit event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	_, err := q.exec(ctx,
		`INSERT INTO events (id, level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), arg.Level, arg.Category, arg.Message, arg.Metadata, orNow(arg.CreatedAt))
	return err
}

// EventFilter narrows an event listing. Empty fields match everything.
type EventFilter struct {
	Level    string
	Category string
}

func (f EventFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Level != "" {
		clauses = append(clauses, "level = ?")
		args = append(args, f.Level)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// CountEvents counts the events matching f.
func (q *Queries) CountEvents(ctx context.Context, f EventFilter) (int64, error) {
	where, args := f.where()
	return q.count(ctx, `SELECT COUNT(*) FROM events`+where, args...)
}

// ListEvents returns one page of events matching f, newest first.
func (q *Queries) ListEvents(ctx context.Context, f EventFilter, limit, offset int) ([]model.Event, error) {
	where, args := f.where()
	rows, err := q.query(ctx,
		`SELECT id, level, category, message, metadata, created_at
		 FROM events`+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListRecentEvents returns the newest events first.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	return q.ListEvents(ctx, EventFilter{}, limit, 0)
}
