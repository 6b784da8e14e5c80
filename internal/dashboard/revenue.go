// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// spanishMonths are the short month names used in chart labels.
var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// OrderTotalLister lists the creation time and total of every order.
// *store.Queries implements it.
type OrderTotalLister interface {
	ListOrderTotals(ctx context.Context) ([]store.OrderTotal, error)
}

// RevenueBuilder groups order totals into a monthly revenue series.
type RevenueBuilder struct {
	orders OrderTotalLister
	loc    *time.Location
}

// NewRevenueBuilder creates a builder that assigns orders to months in loc.
// A nil loc means UTC.
func NewRevenueBuilder(orders OrderTotalLister, loc *time.Location) *RevenueBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &RevenueBuilder{orders: orders, loc: loc}
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthlyRevenue returns revenue per calendar month, oldest month first.
// Months without orders are omitted.
func (b *RevenueBuilder) MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenuePoint, error) {
	orders, err := b.orders.ListOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing order totals: %v", model.ErrPersistence, err)
	}
	return GroupByMonth(orders, b.loc), nil
}

// GroupByMonth sums totals per calendar month in loc and labels each month.
func GroupByMonth(orders []store.OrderTotal, loc *time.Location) []model.MonthlyRevenuePoint {
	totals := make(map[monthKey]float64)
	for _, o := range orders {
		t := o.CreatedAt.In(loc)
		totals[monthKey{year: t.Year(), month: t.Month()}] += o.Total
	}

	keys := make([]monthKey, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	caser := cases.Title(language.Spanish)
	points := make([]model.MonthlyRevenuePoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, model.MonthlyRevenuePoint{
			Month: MonthLabel(caser, k.year, k.month),
			Total: roundCents(totals[k]),
		})
	}
	return points
}

// MonthLabel formats a month as its capitalized Spanish abbreviation and
// two-digit year, e.g. "Mar 24".
func MonthLabel(caser cases.Caser, year int, month time.Month) string {
	return caser.String(fmt.Sprintf("%s %02d", spanishMonths[month-1], year%100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
