// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/olegiv/taproom/internal/config"
	"github.com/olegiv/taproom/internal/dashboard"
	"github.com/olegiv/taproom/internal/handler"
	"github.com/olegiv/taproom/internal/health"
	"github.com/olegiv/taproom/internal/logging"
	"github.com/olegiv/taproom/internal/middleware"
	"github.com/olegiv/taproom/internal/scheduler"
	"github.com/olegiv/taproom/internal/session"
	"github.com/olegiv/taproom/internal/store"
	"github.com/olegiv/taproom/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "taproom - storefront admin backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_SESSION_SECRET      Cookie signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_DB_DRIVER           sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_DB_DSN              Database path or URL (default: ./data/taproom.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_SERVER_PORT         Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_ENV                 development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_TIMEZONE            Revenue month boundaries (default: Europe/Madrid)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TAPROOM_ADMIN_SESSION_TTL   Admin session lifetime (default: 24h)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Printf("taproom %s\n", versionInfo)
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	dialect, err := store.ParseDialect(cfg.DBDriver)
	if err != nil {
		return err
	}

	if dialect == store.DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", dialect)
	db, err := store.NewDB(dialect, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	ctx := context.Background()
	slog.Info("running database migrations")
	if err := store.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	queries := store.New(db, dialect)

	// Mirror WARN and ERROR logs into the events table
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, queries)))
	slog.Info("event log integration enabled", "min_level", "warn")

	if cfg.DoSeed {
		if err := store.Seed(ctx, queries, store.AdminSeed{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			Name:     cfg.AdminName,
		}); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	lpCfg := middleware.DefaultLoginProtectionConfig()
	lpCfg.Metrics = metrics
	loginProtection := middleware.NewLoginProtection(lpCfg)
	defer loginProtection.Close()

	sessions := session.NewStore(db, queries, cfg.AdminSessionTTL)
	cookies := session.NewCookieCodec(cfg.SessionSecret, cfg.AdminSessionTTL, !cfg.IsDevelopment())
	slog.Info("admin sessions initialized", "ttl", cfg.AdminSessionTTL, "secure_cookie", !cfg.IsDevelopment())

	sched := scheduler.New(sessions, cfg.SessionPurgeSchedule, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := newRouter(routerDeps{
		cfg:             cfg,
		db:              db,
		queries:         queries,
		sessions:        sessions,
		cookies:         cookies,
		loginProtection: loginProtection,
		metrics:         metrics,
		version:         versionInfo.String(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// routerDeps carries the services the HTTP routes are built from.
type routerDeps struct {
	cfg             *config.Config
	db              *sql.DB
	queries         *store.Queries
	sessions        *session.Store
	cookies         *session.CookieCodec
	loginProtection *middleware.LoginProtection
	metrics         *middleware.Metrics
	version         string
}

func newRouter(d routerDeps) chi.Router {
	authHandler := handler.NewAuthHandler(d.queries, d.sessions, d.cookies, d.loginProtection, d.metrics)
	dashboardHandler := handler.NewDashboardHandler(
		dashboard.NewAggregator(d.queries),
		dashboard.NewRevenueBuilder(d.queries, d.cfg.Location()),
	)
	eventsHandler := handler.NewEventsHandler(d.queries)
	healthHandler := handler.NewHealthHandler(health.NewReporter(d.db, d.queries, d.version).WithSessionTTL(d.sessions.TTL()))

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(d.metrics.Middleware)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.StripSlashes)

	securityConfig := middleware.DefaultSecurityHeadersConfig(d.cfg.IsDevelopment())
	securityConfig.ExcludePaths = []string{"/metrics"}
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Method(http.MethodGet, "/metrics", d.metrics.Handler())

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(d.cfg.SessionSecret), d.cfg.IsDevelopment()))
	requireAdmin := middleware.RequireAdmin(d.sessions, d.cookies)

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(csrfMiddleware)

		r.With(d.loginProtection.Middleware()).Post("/login", authHandler.Login)
		r.Get("/session", authHandler.Session)
		r.Delete("/session", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/dashboard", dashboardHandler.Dashboard)
			r.Get("/dashboard/metrics", dashboardHandler.Metrics)
			r.Get("/dashboard/revenue", dashboardHandler.Revenue)
			r.Get("/events", eventsHandler.List)
		})
	})

	return r
}
