// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/taproom/internal/model"
)

// DefaultPurgeSchedule removes expired admin sessions every fifteen minutes.
const DefaultPurgeSchedule = "*/15 * * * *"

const purgeTimeout = 30 * time.Second

// SessionPurger removes admin sessions older than the configured TTL.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler handles scheduled maintenance such as expired session cleanup.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionPurger
	schedule string
	logger   *slog.Logger
}

// New creates a new scheduler instance. An empty schedule falls back to
// DefaultPurgeSchedule.
func New(sessions SessionPurger, schedule string, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultPurgeSchedule
	}
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the purge job and starts the cron runner.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if _, err := s.PurgeSessions(ctx); err != nil {
			s.logger.Error("failed to purge expired admin sessions", "error", err, "category", model.EventCategorySession)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "schedule", s.schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PurgeSessions runs one purge pass and reports how many sessions were removed.
func (s *Scheduler) PurgeSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged expired admin sessions", "count", n, "category", model.EventCategorySession)
	}
	return n, nil
}
