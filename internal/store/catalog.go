// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Catalog, blog and order writes are owned by the storefront. These inserts
// exist for seeding and tests.

// CreateProductParams holds the fields of a new product.
type CreateProductParams struct {
	Name      string
	Slug      string
	Price     float64
	CreatedAt time.Time
}

// CreateProduct inserts a product and returns its id.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (string, error) {
	id := uuid.NewString()
	_, err := q.exec(ctx,
		`INSERT INTO products (id, name, slug, price, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, arg.Name, arg.Slug, arg.Price, orNow(arg.CreatedAt))
	return id, err
}

// CreatePostParams holds the fields of a new blog post.
type CreatePostParams struct {
	Title     string
	Slug      string
	Published bool
	CreatedAt time.Time
}

// CreatePost inserts a blog post and returns its id.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (string, error) {
	id := uuid.NewString()
	_, err := q.exec(ctx,
		`INSERT INTO posts (id, title, slug, published, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, arg.Title, arg.Slug, arg.Published, orNow(arg.CreatedAt))
	return id, err
}

// CreateOrderParams holds the fields of a new order.
type CreateOrderParams struct {
	UserID    sql.NullString
	Total     float64
	Status    string
	CreatedAt time.Time
}

// CreateOrder inserts an order and returns its id.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (string, error) {
	if arg.Status == "" {
		arg.Status = "PENDING"
	}
	id := uuid.NewString()
	_, err := q.exec(ctx,
		`INSERT INTO orders (id, user_id, total, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, arg.UserID, arg.Total, arg.Status, orNow(arg.CreatedAt))
	return id, err
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
