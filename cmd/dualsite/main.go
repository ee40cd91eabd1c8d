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
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/dualsite/internal/config"
	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/handler/api"
	"github.com/olegiv/dualsite/internal/logging"
	"github.com/olegiv/dualsite/internal/metrics"
	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/service"
	"github.com/olegiv/dualsite/internal/session"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "dualsite - content API for the primary and secondary websites\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_SESSION_SECRET            Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_DB_PATH                   SQLite database path (default: ./data/dualsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_SERVER_PORT               Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_ENV                       Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_REVALIDATE_URL_PRIMARY    Primary frontend revalidation endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_REVALIDATE_URL_SECONDARY  Secondary frontend revalidation endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  DUALSITE_ADMIN_EMAIL               Administrator created on first start (optional)\n")
	}
	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("dualsite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath, "driver", cfg.DBDriver)
	dbConfig := store.DefaultDBConfig()
	dbConfig.Driver = cfg.DBDriver
	db, err := store.NewDBWithConfig(cfg.DBPath, dbConfig)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.AdminSeed{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	}, logger); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())

	serverMetrics := metrics.New()
	serverMetrics.SetBuildInfo(versionInfo)

	notifier := revalidate.New(revalidate.Config{
		URLs:         cfg.RevalidateURLs(),
		Secret:       cfg.RevalidateSecret,
		Timeout:      cfg.RevalidateTimeout,
		Logger:       logger,
		OnResult:     serverMetrics.RevalidationResult,
		BlockPrivate: cfg.RevalidateBlockPrivate,
	})

	services := service.New(db, notifier, logger, service.MediaConfig{
		UploadDir:     cfg.UploadsDir,
		URLPrefix:     cfg.UploadsURLPrefix,
		MaxUploadSize: cfg.MaxUploadSize(),
	})

	loginConfig := middleware.DefaultLoginProtectionConfig()
	loginConfig.OnDenied = serverMetrics.IncRateLimitDenied
	loginProtection := middleware.NewLoginProtection(loginConfig)
	slog.Info("login protection initialized",
		"ip_rate_limit", loginConfig.IPRateLimit,
		"max_failed_attempts", loginConfig.MaxFailedAttempts,
		"lockout_duration", loginConfig.LockoutDuration,
	)

	publicLimiter := middleware.NewIPRateLimiter("public", cfg.PublicRateLimit, cfg.PublicRateBurst,
		serverMetrics.IncRateLimitDenied)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())

	apiHandler := api.NewHandler(api.Config{
		Services:        services,
		Sessions:        sessionManager,
		LoginProtection: loginProtection,
		Logger:          logger,
	})
	healthHandler := handler.NewHealthHandler(db, sessionManager, cfg.UploadsDir, versionInfo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestPath)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	if cfg.MetricsEnabled {
		r.Use(serverMetrics.Middleware)
	}

	r.Mount(handler.RouteAPI, apiHandler.Routes(api.RouterConfig{
		DB:            db,
		CSRF:          middleware.CSRF(csrfConfig),
		CORSOrigins:   cfg.CORSOrigins,
		PublicLimiter: publicLimiter,
	}))

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Get(handler.RouteHealth, healthHandler.Health)
	})
	r.Get(handler.RouteHealth+"/live", healthHandler.Liveness)
	r.Get(handler.RouteHealth+"/ready", healthHandler.Readiness)

	if cfg.MetricsEnabled {
		r.Handle(handler.RouteMetrics, serverMetrics.Handler())
	}

	// Uploads: cache for 1 week (604800 seconds)
	uploadsPrefix := "/" + strings.Trim(cfg.UploadsURLPrefix, "/") + "/"
	uploadsHandler := middleware.StaticCache(604800)(http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(cfg.UploadsDir))))
	r.Handle(uploadsPrefix+"*", uploadsHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	// Let in-flight revalidation requests finish.
	notifier.Wait()

	slog.Info("server stopped")
	return nil
}
