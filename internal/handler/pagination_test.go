// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		name       string
		totalItems int
		perPage    int
		want       int
	}{
		{"zero items", 0, 10, 1},
		{"less than one page", 5, 10, 1},
		{"exactly one page", 10, 10, 1},
		{"one item over", 11, 10, 2},
		{"multiple pages", 25, 10, 3},
		{"exact multiple", 30, 10, 3},
		{"zero per page", 10, 0, 1},
		{"negative per page", 10, -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalPages(tt.totalItems, tt.perPage)
			if got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.totalItems, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"valid page", 3, 5, 3},
		{"first page", 1, 5, 1},
		{"last page", 5, 5, 5},
		{"below minimum", 0, 5, 1},
		{"negative page", -1, 5, 1},
		{"above maximum", 10, 5, 5},
		{"way above maximum", 100, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampPage(tt.page, tt.totalPages)
			if got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		totalItems     int
		perPage        int
		wantPage       int
		wantTotalPages int
	}{
		{"valid page", 2, 50, 10, 2, 5},
		{"page too high", 10, 50, 10, 5, 5},
		{"page too low", 0, 50, 10, 1, 5},
		{"single page", 1, 5, 10, 1, 1},
		{"empty list", 1, 0, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPage, gotTotal := NormalizePagination(tt.page, tt.totalItems, tt.perPage)
			if gotPage != tt.wantPage || gotTotal != tt.wantTotalPages {
				t.Errorf("NormalizePagination(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.totalItems, tt.perPage, gotPage, gotTotal, tt.wantPage, tt.wantTotalPages)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"valid page", "page=3", 3},
		{"first page", "page=1", 1},
		{"no param", "", 1},
		{"empty param", "page=", 1},
		{"invalid param", "page=abc", 1},
		{"zero page", "page=0", 1},
		{"negative page", "page=-1", 1},
		{"large page", "page=999", 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got := ParsePageParam(req)
			if got != tt.want {
				t.Errorf("ParsePageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestParsePerPageParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		defaultVal int
		maxVal     int
		want       int
	}{
		{"valid value", "per_page=20", 10, 100, 20},
		{"no param uses default", "", 10, 100, 10},
		{"empty param uses default", "per_page=", 10, 100, 10},
		{"invalid uses default", "per_page=abc", 10, 100, 10},
		{"below min uses default", "per_page=0", 10, 100, 10},
		{"above max uses default", "per_page=200", 10, 100, 10},
		{"at max", "per_page=100", 10, 100, 100},
		{"at min", "per_page=1", 10, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got := ParsePerPageParam(req, tt.defaultVal, tt.maxVal)
			if got != tt.want {
				t.Errorf("ParsePerPageParam() with query %q = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		param      string
		defaultVal int
		minVal     int
		maxVal     int
		want       int
	}{
		{"valid value", "limit=50", "limit", 10, 1, 100, 50},
		{"missing param", "", "limit", 10, 1, 100, 10},
		{"empty value", "limit=", "limit", 10, 1, 100, 10},
		{"invalid value", "limit=abc", "limit", 10, 1, 100, 10},
		{"below min", "limit=0", "limit", 10, 1, 100, 10},
		{"above max", "limit=200", "limit", 10, 1, 100, 10},
		{"no min check", "limit=0", "limit", 10, 0, 100, 0},
		{"no max check", "limit=500", "limit", 10, 1, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got := ParseIntParam(req, tt.param, tt.defaultVal, tt.minVal, tt.maxVal)
			if got != tt.want {
				t.Errorf("ParseIntParam() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(7, 51, 25)
	if p.Page != 3 || p.TotalPages != 3 || p.TotalItems != 51 || p.PerPage != 25 {
		t.Errorf("NewPagination(7, 51, 25) = %+v", p)
	}
	if got := p.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}

	empty := NewPagination(1, 0, 25)
	if empty.Page != 1 || empty.TotalPages != 1 || empty.Offset() != 0 {
		t.Errorf("NewPagination(1, 0, 25) = %+v", empty)
	}
}
