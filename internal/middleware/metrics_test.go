// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("reading counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/admin/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/api/users/"+id, nil))
	}

	got := counterValue(t, m.requestTotal.WithLabelValues(http.MethodGet, "/admin/api/users/{id}", "418"))
	if got != 2 {
		t.Errorf("requests_total = %v, want 2", got)
	}
}

func TestMetricsRecordLogin(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordLogin(LoginOutcomeFailure)
	m.RecordLogin(LoginOutcomeFailure)
	m.RecordLogin(LoginOutcomeSuccess)

	if got := counterValue(t, m.loginAttempts.WithLabelValues(LoginOutcomeFailure)); got != 2 {
		t.Errorf("failure count = %v, want 2", got)
	}

	var nilMetrics *Metrics
	nilMetrics.RecordLogin(LoginOutcomeSuccess)
}

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewMetrics(reg)
	second := NewMetrics(reg)

	second.RecordLogin(LoginOutcomeLocked)
	if got := counterValue(t, first.loginAttempts.WithLabelValues(LoginOutcomeLocked)); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordLogin(LoginOutcomeSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), `taproom_admin_login_attempts_total{outcome="success"} 1`) {
		t.Errorf("exposition missing login counter:\n%s", rec.Body.String())
	}
}
