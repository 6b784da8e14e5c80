// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// Event list page sizes.
const (
	EventsPerPage    = 25
	MaxEventsPerPage = 100
)

// EventLister reads the persisted event log.
type EventLister interface {
	CountEvents(ctx context.Context, f store.EventFilter) (int64, error)
	ListEvents(ctx context.Context, f store.EventFilter, limit, offset int) ([]model.Event, error)
}

// EventsHandler serves the event log to administrators.
type EventsHandler struct {
	events EventLister
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events EventLister) *EventsHandler {
	return &EventsHandler{events: events}
}

// eventResponse is one event as returned by the API.
type eventResponse struct {
	ID        string          `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	Details   string          `json:"details,omitempty"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
}

// formatMetadata converts JSON metadata to readable text format.
// Example: {"path":"/admin/api/login","error":"locked"} -> "error: locked, path: /admin/api/login"
func formatMetadata(metadata string) string {
	if metadata == "" || metadata == "{}" {
		return ""
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(metadata), &data); err != nil {
		return metadata
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		var strValue string
		switch v := data[key].(type) {
		case string:
			strValue = v
		case float64:
			strValue = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			strValue = strconv.FormatBool(v)
		default:
			if b, err := json.Marshal(v); err == nil {
				strValue = string(b)
			}
		}
		parts = append(parts, key+": "+strValue)
	}

	return strings.Join(parts, ", ")
}

func toEventResponse(e model.Event) eventResponse {
	raw := json.RawMessage(e.Metadata)
	if !json.Valid(raw) {
		raw = json.RawMessage("{}")
	}
	return eventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Details:   formatMetadata(e.Metadata),
		Metadata:  raw,
		CreatedAt: e.CreatedAt,
	}
}

// List handles GET /admin/api/events with optional level, category, page
// and per_page query parameters.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.EventFilter{
		Level:    r.URL.Query().Get("level"),
		Category: r.URL.Query().Get("category"),
	}
	if filter.Level != "" && !model.IsEventLevel(filter.Level) {
		writeError(w, fmt.Errorf("%w: unknown event level %q", model.ErrValidation, filter.Level))
		return
	}
	if filter.Category != "" && !model.IsEventCategory(filter.Category) {
		writeError(w, fmt.Errorf("%w: unknown event category %q", model.ErrValidation, filter.Category))
		return
	}

	total, err := h.events.CountEvents(r.Context(), filter)
	if err != nil {
		slog.Error("failed to count events", "category", model.EventCategorySystem, "error", err)
		writeError(w, fmt.Errorf("%w: counting events: %v", model.ErrPersistence, err))
		return
	}

	perPage := ParsePerPageParam(r, EventsPerPage, MaxEventsPerPage)
	pagination := NewPagination(ParsePageParam(r), total, perPage)

	events, err := h.events.ListEvents(r.Context(), filter, pagination.PerPage, pagination.Offset())
	if err != nil {
		slog.Error("failed to list events", "category", model.EventCategorySystem, "error", err)
		writeError(w, fmt.Errorf("%w: listing events: %v", model.ErrPersistence, err))
		return
	}

	items := make([]eventResponse, len(events))
	for i, e := range events {
		items[i] = toEventResponse(e)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events":     items,
		"pagination": pagination,
	})
}
