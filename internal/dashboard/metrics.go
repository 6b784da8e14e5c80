// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard computes the admin dashboard: the metrics snapshot and
// the monthly revenue series.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/taproom/internal/model"
)

// MetricsQuerier runs the counting and summing queries behind the snapshot.
// *store.Queries implements it.
type MetricsQuerier interface {
	CountProducts(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	SumOrderTotals(ctx context.Context) (float64, error)
}

// Aggregator builds dashboard metrics snapshots.
type Aggregator struct {
	queries MetricsQuerier
}

// NewAggregator creates an Aggregator over queries.
func NewAggregator(queries MetricsQuerier) *Aggregator {
	return &Aggregator{queries: queries}
}

// Metrics runs the five dashboard queries concurrently and returns the
// combined snapshot. If any query fails the others are cancelled and no
// partial snapshot is returned.
func (a *Aggregator) Metrics(ctx context.Context) (model.DashboardMetrics, error) {
	var m model.DashboardMetrics
	g, gctx := errgroup.WithContext(ctx)

	count := func(name string, fn func(context.Context) (int64, error), dst *int64) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("%w: counting %s: %v", model.ErrPersistence, name, err)
			}
			*dst = n
			return nil
		})
	}

	count("products", a.queries.CountProducts, &m.TotalProducts)
	count("posts", a.queries.CountPosts, &m.TotalPosts)
	count("clients", a.queries.CountClients, &m.TotalClients)
	count("orders", a.queries.CountOrders, &m.TotalOrders)
	g.Go(func() error {
		sum, err := a.queries.SumOrderTotals(gctx)
		if err != nil {
			return fmt.Errorf("%w: summing revenue: %v", model.ErrPersistence, err)
		}
		m.TotalRevenue = roundCents(sum)
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.DashboardMetrics{}, err
	}
	return m, nil
}
