// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/taproom/internal/model"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad email", model.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: wrong password", model.ErrAuthentication), http.StatusUnauthorized},
		{fmt.Errorf("%w: no session", model.ErrUnauthorized), http.StatusUnauthorized},
		{model.ErrAuthorization, http.StatusForbidden},
		{fmt.Errorf("%w: locked", model.ErrRateLimited), http.StatusTooManyRequests},
		{fmt.Errorf("%w: db down", model.ErrPersistence), http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusForError(tt.err); got != tt.want {
			t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesInternals(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, fmt.Errorf("%w: dial tcp 10.0.0.3:5432: refused", model.ErrPersistence))

	if strings.Contains(rr.Body.String(), "10.0.0.3") {
		t.Errorf("internal detail leaked: %s", rr.Body.String())
	}
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSONSuccess(rr, map[string]any{"id": "abc"})

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := decodeBody(t, rr)
	if body["success"] != true || body["id"] != "abc" {
		t.Errorf("body = %v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"ipa"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "trailing object", body: `{"name":"a"}{"name":"b"}`, wantErr: true},
		{name: "unknown field", body: `{"nombre":"a"}`, wantErr: true},
		{name: "wrong type", body: `{"name":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := decodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr {
				if !errors.Is(err, model.ErrValidation) {
					t.Errorf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil || p.Name != "ipa" {
				t.Errorf("decodeJSON() = %v, name %q", err, p.Name)
			}
		})
	}
}
