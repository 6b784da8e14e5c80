// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/taproom/internal/health"
	"github.com/olegiv/taproom/internal/model"
)

// healthTimeout bounds a single health report.
const healthTimeout = 5 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	reporter  *health.Reporter
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(reporter *health.Reporter) *HealthHandler {
	return &HealthHandler{
		reporter:  reporter,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler was created.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// Health handles GET /health. It responds 503 when the report status is error.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	report := h.reporter.Report(ctx)

	status := http.StatusOK
	if report.Status == health.StatusError {
		status = http.StatusServiceUnavailable
		slog.Error("health check failed", "category", model.EventCategorySystem, "checks", report.Checks)
	}
	writeJSON(w, status, report)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
