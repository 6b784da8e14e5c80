// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command taproom-health prints the health report of a taproom database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/taproom/internal/config"
	"github.com/olegiv/taproom/internal/health"
	"github.com/olegiv/taproom/internal/store"
)

const reportTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, os.Stdout))
}

// run writes the report to out and returns the process exit code.
func run(cfg *config.Config, out io.Writer) int {
	dialect, err := store.ParseDialect(cfg.DBDriver)
	if err != nil {
		slog.Error("invalid database driver", "error", err)
		return 1
	}

	db, err := store.NewDB(dialect, cfg.DBDSN)
	if err != nil {
		slog.Error("opening database", "error", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	report := health.NewReporter(db, store.New(db, dialect), "").
		WithSessionTTL(cfg.AdminSessionTTL).
		Report(ctx)
	return writeReport(out, report)
}

func writeReport(out io.Writer, report health.Report) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "encoding report: %v\n", err)
		return 1
	}
	if report.Status == health.StatusError {
		return 1
	}
	return 0
}
