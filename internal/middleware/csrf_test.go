// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDefaultCSRFConfig(t *testing.T) {
	key := []byte("12345678901234567890123456789012")

	dev := DefaultCSRFConfig(key, true)
	if len(dev.TrustedOrigins) == 0 {
		t.Error("development config should trust local origins")
	}
	for _, origin := range dev.TrustedOrigins {
		if strings.Contains(origin, "://") {
			t.Errorf("trusted origin %q must be host[:port] only", origin)
		}
	}

	prod := DefaultCSRFConfig(key, false)
	if len(prod.TrustedOrigins) != 0 {
		t.Errorf("production TrustedOrigins = %v, want none", prod.TrustedOrigins)
	}
}

func TestCSRF(t *testing.T) {
	key := []byte("12345678901234567890123456789012")
	handler := CSRF(DefaultCSRFConfig(key, false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{
			name:   "safe method passes",
			method: http.MethodGet,
			headers: map[string]string{
				"Sec-Fetch-Site": "cross-site",
			},
			want: http.StatusOK,
		},
		{
			name:   "same-origin post passes",
			method: http.MethodPost,
			headers: map[string]string{
				"Sec-Fetch-Site": "same-origin",
			},
			want: http.StatusOK,
		},
		{
			name:    "non-browser post passes",
			method:  http.MethodPost,
			headers: nil,
			want:    http.StatusOK,
		},
		{
			name:   "cross-site post rejected",
			method: http.MethodPost,
			headers: map[string]string{
				"Sec-Fetch-Site": "cross-site",
				"Origin":         "https://evil.example",
			},
			want: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "https://shop.example/admin/api/login", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusForbidden && !strings.Contains(rec.Body.String(), `"success":false`) {
				t.Errorf("body = %q, want JSON error", rec.Body.String())
			}
		})
	}
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	called := false
	cfg := CSRFConfig{
		AuthKey: []byte("12345678901234567890123456789012"),
		ErrorHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		}),
	}
	handler := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodDelete, "https://shop.example/admin/api/session", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, rec.Code)
	}
}
