// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store owns the database: connection setup, migrations and the
// hand-written queries used by the rest of taproom.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect identifies the SQL flavour of the connected database.
type Dialect int

// Supported dialects.
const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "pgx":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// String implements fmt.Stringer.
func (d Dialect) String() string {
	switch d {
	case DialectSQLite:
		return "sqlite"
	case DialectPostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) gooseDialect() goose.Dialect {
	if d == DialectPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// DBConfig holds database configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// NewDB opens a database connection for the dialect and verifies it.
func NewDB(d Dialect, dsn string) (*sql.DB, error) {
	return NewDBWithConfig(d, dsn, DefaultDBConfig())
}

// NewDBWithConfig opens a database connection with custom pool configuration.
func NewDBWithConfig(d Dialect, dsn string, cfg DBConfig) (*sql.DB, error) {
	if d == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// sqlitePragmas are applied by the driver to every pooled connection.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
	"temp_store(MEMORY)",
}

// sqliteDSN appends the connection pragmas to a SQLite path or URI.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var sb strings.Builder
	sb.WriteString(dsn)
	for _, p := range sqlitePragmas {
		sb.WriteString(sep)
		sb.WriteString("_pragma=")
		sb.WriteString(p)
		sep = "&"
	}
	return sb.String()
}

func newMigrationProvider(db *sql.DB, d Dialect) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening migrations: %w", err)
	}
	provider, err := goose.NewProvider(d.gooseDialect(), db, fsys)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

// Migrate runs all pending database migrations.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	provider, err := newMigrationProvider(db, d)
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SchemaStatus reports the applied schema version and the newest known one.
func SchemaStatus(ctx context.Context, db *sql.DB, d Dialect) (current, latest int64, err error) {
	provider, err := newMigrationProvider(db, d)
	if err != nil {
		return 0, 0, err
	}
	current, err = provider.GetDBVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("reading schema version: %w", err)
	}
	sources := provider.ListSources()
	if len(sources) > 0 {
		latest = sources[len(sources)-1].Version
	}
	return current, latest, nil
}
