// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// DBTX is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs taproom's SQL against a DBTX. Statements are written with
// '?' placeholders and rebound for PostgreSQL.
type Queries struct {
	db      DBTX
	dialect Dialect
}

// New creates Queries for the given connection and dialect.
func New(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, dialect: d}
}

// WithTx returns Queries bound to the transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, dialect: q.dialect}
}

// Dialect returns the dialect the queries are rebound for.
func (q *Queries) Dialect() Dialect {
	return q.dialect
}

func (q *Queries) rebind(query string) string {
	if q.dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.rebind(query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.rebind(query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.rebind(query), args...)
}

func (q *Queries) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := q.queryRow(ctx, query, args...).Scan(&n)
	return n, err
}
