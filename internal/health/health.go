// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package health builds the health report shared by the /health route and
// the taproom-health command.
package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/store"
)

// Status is the outcome of a check or of the whole report.
type Status string

// Statuses ordered by severity.
const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

func (s Status) severity() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusError:
		return 2
	}
	return 2
}

// Check is one labelled health check result.
type Check struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Details string `json:"details,omitempty"`
}

// Report is the aggregated health report. Status is the worst check status.
type Report struct {
	Status  Status  `json:"status"`
	Version string  `json:"version,omitempty"`
	Checks  []Check `json:"checks"`
}

// Check labels.
const (
	LabelDatabase = "Database connection"
	LabelSchema   = "Schema version"
	LabelAdmin    = "Admin account"
	LabelSessions = "Admin sessions"
)

// Reporter runs the health checks against the database.
type Reporter struct {
	db      *sql.DB
	queries *store.Queries
	dialect store.Dialect
	version string
	ttl     time.Duration
	now     func() time.Time
}

// NewReporter creates a Reporter. version is reported as-is.
func NewReporter(db *sql.DB, queries *store.Queries, version string) *Reporter {
	return &Reporter{
		db:      db,
		queries: queries,
		dialect: queries.Dialect(),
		version: version,
		now:     time.Now,
	}
}

// WithSessionTTL sets the admin session lifetime used to tell live sessions
// from expired ones. Without it every stored session counts as live.
func (r *Reporter) WithSessionTTL(ttl time.Duration) *Reporter {
	r.ttl = ttl
	return r
}

// Report runs every check. When the database is unreachable the remaining
// checks are reported as errors without running them.
func (r *Reporter) Report(ctx context.Context) Report {
	report := Report{Version: r.version}

	db := r.checkDatabase(ctx)
	report.Checks = append(report.Checks, db)
	if db.Status == StatusError {
		for _, label := range []string{LabelSchema, LabelAdmin, LabelSessions} {
			report.Checks = append(report.Checks, Check{
				Label:   label,
				Status:  StatusError,
				Details: "skipped: database unreachable",
			})
		}
	} else {
		report.Checks = append(report.Checks,
			r.checkSchema(ctx),
			r.checkAdmin(ctx),
			r.checkSessions(ctx),
		)
	}

	report.Status = Aggregate(report.Checks)
	return report
}

// Aggregate returns the most severe status among checks, or ok when empty.
func Aggregate(checks []Check) Status {
	worst := StatusOK
	for _, c := range checks {
		if c.Status.severity() > worst.severity() {
			worst = c.Status
		}
	}
	return worst
}

func (r *Reporter) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	if err := r.db.PingContext(ctx); err != nil {
		return Check{Label: LabelDatabase, Status: StatusError, Details: err.Error()}
	}
	return Check{
		Label:   LabelDatabase,
		Status:  StatusOK,
		Details: fmt.Sprintf("%s, ping %s", r.dialect, time.Since(start).Round(time.Microsecond)),
	}
}

func (r *Reporter) checkSchema(ctx context.Context) Check {
	current, latest, err := store.SchemaStatus(ctx, r.db, r.dialect)
	if err != nil {
		return Check{Label: LabelSchema, Status: StatusError, Details: err.Error()}
	}
	switch {
	case current < latest:
		return Check{
			Label:   LabelSchema,
			Status:  StatusWarning,
			Details: fmt.Sprintf("version %d, %d pending", current, latest-current),
		}
	case current > latest:
		return Check{
			Label:   LabelSchema,
			Status:  StatusWarning,
			Details: fmt.Sprintf("version %d is newer than this build (%d)", current, latest),
		}
	}
	return Check{Label: LabelSchema, Status: StatusOK, Details: fmt.Sprintf("version %d", current)}
}

func (r *Reporter) checkAdmin(ctx context.Context) Check {
	n, err := r.queries.CountUsersByRole(ctx, model.RoleAdmin)
	if err != nil {
		return Check{Label: LabelAdmin, Status: StatusError, Details: err.Error()}
	}
	if n == 0 {
		return Check{
			Label:   LabelAdmin,
			Status:  StatusWarning,
			Details: "no admin user; set TAPROOM_DO_SEED=true to create one",
		}
	}
	return Check{Label: LabelAdmin, Status: StatusOK, Details: fmt.Sprintf("%d admin user(s)", n)}
}

func (r *Reporter) checkSessions(ctx context.Context) Check {
	stored, err := r.queries.CountAdminSessions(ctx)
	if err != nil {
		return Check{Label: LabelSessions, Status: StatusError, Details: err.Error()}
	}
	live := stored
	if r.ttl > 0 {
		live, err = r.queries.CountAdminSessionsCreatedSince(ctx, r.now().Add(-r.ttl))
		if err != nil {
			return Check{Label: LabelSessions, Status: StatusError, Details: err.Error()}
		}
	}
	return Check{
		Label:   LabelSessions,
		Status:  StatusOK,
		Details: fmt.Sprintf("%d live, %d stored", live, stored),
	}
}
