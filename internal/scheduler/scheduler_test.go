// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/taproom/internal/model"
	"github.com/olegiv/taproom/internal/session"
	"github.com/olegiv/taproom/internal/testutil"
)

type stubPurger struct {
	n     int64
	err   error
	calls int
}

func (p *stubPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls++
	return p.n, p.err
}

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(&stubPurger{}, "", logger)
	require.NotNil(t, s)
	assert.NotNil(t, s.cron)
	assert.Equal(t, DefaultPurgeSchedule, s.schedule)
	assert.Same(t, logger, s.logger)

	s = New(&stubPurger{}, "@hourly", logger)
	assert.Equal(t, "@hourly", s.schedule)
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(&stubPurger{}, "", testutil.TestLoggerSilent())

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := New(&stubPurger{}, "not a schedule", testutil.TestLoggerSilent())
	assert.Error(t, s.Start())
}

func TestScheduler_PurgeSessions(t *testing.T) {
	p := &stubPurger{n: 3}
	s := New(p, "", testutil.TestLoggerSilent())

	n, err := s.PurgeSessions(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.Equal(t, 1, p.calls)

	p.err = errors.New("boom")
	_, err = s.PurgeSessions(context.Background())
	assert.Error(t, err)
}

func TestScheduler_PurgeSessionsWithStore(t *testing.T) {
	db, q := testutil.TestQueries(t)
	u := testutil.CreateUser(t, q, "admin@taproom.test", "secret-pass", model.RoleAdmin)

	store := session.NewStore(db, q, time.Nanosecond)
	_, err := store.CreateSession(context.Background(), u.ID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	s := New(store, "", testutil.TestLoggerSilent())
	n, err := s.PurgeSessions(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	count, err := store.CountSessions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
