// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/taproom/internal/model"
)

// CountProducts counts catalog products.
func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM products`)
}

// CountPosts counts blog posts, drafts included.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM posts`)
}

// CountClients counts customer accounts.
func (q *Queries) CountClients(ctx context.Context) (int64, error) {
	return q.CountUsersByRole(ctx, model.RoleClient)
}

// CountOrders counts orders of any status.
func (q *Queries) CountOrders(ctx context.Context) (int64, error) {
	return q.count(ctx, `SELECT COUNT(*) FROM orders`)
}

// SumOrderTotals returns the sum of all order totals, 0 when there are none.
func (q *Queries) SumOrderTotals(ctx context.Context) (float64, error) {
	var raw any
	if err := q.queryRow(ctx, `SELECT SUM(total) FROM orders`).Scan(&raw); err != nil {
		return 0, err
	}
	return NumericToFloat64(raw)
}

// OrderTotal is the creation time and total of one order.
type OrderTotal struct {
	CreatedAt time.Time
	Total     float64
}

// ListOrderTotals returns the creation time and total of every order, oldest first.
func (q *Queries) ListOrderTotals(ctx context.Context) ([]OrderTotal, error) {
	rows, err := q.query(ctx, `SELECT created_at, total FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []OrderTotal
	for rows.Next() {
		var (
			item OrderTotal
			raw  any
		)
		if err := rows.Scan(&item.CreatedAt, &raw); err != nil {
			return nil, err
		}
		if item.Total, err = NumericToFloat64(raw); err != nil {
			return nil, fmt.Errorf("order total: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
