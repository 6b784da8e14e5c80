// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/taproom/internal/config"
	"github.com/olegiv/taproom/internal/health"
	"github.com/olegiv/taproom/internal/store"
)

func TestWriteReportExitCodes(t *testing.T) {
	tests := []struct {
		status health.Status
		want   int
	}{
		{health.StatusOK, 0},
		{health.StatusWarning, 0},
		{health.StatusError, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			code := writeReport(&buf, health.Report{
				Status: tt.status,
				Checks: []health.Check{{Label: health.LabelDatabase, Status: tt.status}},
			})
			assert.Equal(t, tt.want, code)
			assert.Contains(t, buf.String(), "\n  \"status\": \""+string(tt.status)+"\"")
		})
	}
}

func TestRunReportsMissingAdmin(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "health.db")
	db, err := store.NewDB(store.DialectSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background(), db, store.DialectSQLite))
	require.NoError(t, db.Close())

	var buf bytes.Buffer
	code := run(&config.Config{DBDriver: config.DriverSQLite, DBDSN: dsn}, &buf)

	var report health.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, 0, code)
	assert.Equal(t, health.StatusWarning, report.Status)
	require.Len(t, report.Checks, 4)
	for _, c := range report.Checks {
		if c.Label == health.LabelAdmin {
			assert.Equal(t, health.StatusWarning, c.Status)
			continue
		}
		assert.Equal(t, health.StatusOK, c.Status, c.Label)
	}
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 1, run(&config.Config{DBDriver: "oracle"}, &buf))
	assert.Empty(t, buf.String())
}
