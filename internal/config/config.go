// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads taproom's configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for TAPROOM_TIMEZONE

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver      string `env:"TAPROOM_DB_DRIVER" envDefault:"sqlite"`
	DBDSN         string `env:"TAPROOM_DB_DSN" envDefault:"./data/taproom.db"`
	SessionSecret string `env:"TAPROOM_SESSION_SECRET,required"`
	ServerHost    string `env:"TAPROOM_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"TAPROOM_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"TAPROOM_ENV" envDefault:"development"`
	LogLevel      string `env:"TAPROOM_LOG_LEVEL" envDefault:"info"`

	// Timezone used to bucket orders into calendar months.
	Timezone string `env:"TAPROOM_TIMEZONE" envDefault:"Europe/Madrid"`

	// Admin sessions
	AdminSessionTTL      time.Duration `env:"TAPROOM_ADMIN_SESSION_TTL" envDefault:"24h"`
	SessionPurgeSchedule string        `env:"TAPROOM_SESSION_PURGE_SCHEDULE" envDefault:"*/15 * * * *"`

	// Seeding configuration
	DoSeed        bool   `env:"TAPROOM_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"TAPROOM_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"TAPROOM_ADMIN_PASSWORD" envDefault:"changeme"`
	AdminName     string `env:"TAPROOM_ADMIN_NAME" envDefault:"Administrator"`

	location *time.Location
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Location returns the configured timezone, UTC if none was loaded.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading TAPROOM_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("TAPROOM_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}

	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("TAPROOM_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("TAPROOM_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("TAPROOM_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if c.AdminSessionTTL < 0 {
		return fmt.Errorf("TAPROOM_ADMIN_SESSION_TTL must not be negative, got %s", c.AdminSessionTTL)
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
