// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/taproom/internal/dashboard"
	"github.com/olegiv/taproom/internal/model"
)

// DashboardHandler serves the admin dashboard data.
type DashboardHandler struct {
	aggregator *dashboard.Aggregator
	revenue    *dashboard.RevenueBuilder
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(aggregator *dashboard.Aggregator, revenue *dashboard.RevenueBuilder) *DashboardHandler {
	return &DashboardHandler{
		aggregator: aggregator,
		revenue:    revenue,
	}
}

// Dashboard handles GET /admin/api/dashboard.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.aggregator.Metrics(r.Context())
	if err != nil {
		slog.Error("dashboard metrics failed", "category", model.EventCategoryDashboard, "error", err)
		writeError(w, err)
		return
	}

	monthly, err := h.revenue.MonthlyRevenue(r.Context())
	if err != nil {
		slog.Error("monthly revenue failed", "category", model.EventCategoryDashboard, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metrics":        metrics,
		"monthlyRevenue": monthly,
	})
}

// Metrics handles GET /admin/api/dashboard/metrics.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.aggregator.Metrics(r.Context())
	if err != nil {
		slog.Error("dashboard metrics failed", "category", model.EventCategoryDashboard, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// Revenue handles GET /admin/api/dashboard/revenue.
func (h *DashboardHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	monthly, err := h.revenue.MonthlyRevenue(r.Context())
	if err != nil {
		slog.Error("monthly revenue failed", "category", model.EventCategoryDashboard, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, monthly)
}
