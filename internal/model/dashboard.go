// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// DashboardMetrics is a point-in-time snapshot of the store's core counts.
type DashboardMetrics struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalPosts    int64   `json:"totalPosts"`
	TotalClients  int64   `json:"totalClients"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

// MonthlyRevenuePoint is the revenue of one calendar month.
type MonthlyRevenuePoint struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}
