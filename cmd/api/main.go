// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

// Command api is the entry point for the Lectern HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanvu/lectern/internal/api"
	"github.com/hanvu/lectern/internal/auth"
	"github.com/hanvu/lectern/internal/content/article"
	"github.com/hanvu/lectern/internal/content/chapter"
	"github.com/hanvu/lectern/internal/content/course"
	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/content/playlist"
	"github.com/hanvu/lectern/internal/content/section"
	"github.com/hanvu/lectern/internal/content/testsuite"
	"github.com/hanvu/lectern/internal/platform/config"
	"github.com/hanvu/lectern/internal/platform/constants"
	"github.com/hanvu/lectern/internal/platform/middleware"
	"github.com/hanvu/lectern/internal/platform/migration"
	pgstore "github.com/hanvu/lectern/internal/platform/postgres"
	redisstore "github.com/hanvu/lectern/internal/platform/redis"
	"github.com/hanvu/lectern/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Lectern] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity Verification ──────────────────────────────────────────
	identitySvc, err := sec.NewIdentityService(cfg.IdentityPubKeyPath, cfg.IdentityIssuer, cfg.IdentityAudience)
	must(log, err, "initialize identity verifier")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. User Directory ─────────────────────────────────────────────────
	userRepository := auth.NewRepository(pool)
	userCache := auth.NewCache(rdb)
	authService := auth.NewService(userRepository, userCache, log)

	// Route guards. Every content handler receives the same two: `resolve`
	// attaches the account when a token is present, `protect` demands one.
	resolve := middleware.ResolveUser(authService)
	protect := middleware.RequireRole(authService, sec.RoleRegular, sec.RoleAdmin)
	admin := middleware.RequireRole(authService, sec.RoleAdmin)

	userHandler := auth.NewHandler(authService, middleware.RequireAuth, protect, admin)

	// ── 9. Content Domains ────────────────────────────────────────────────
	// One lifecycle engine is shared by all kinds; each service pairs it
	// with its own descriptor.
	engine := lifecycle.NewEngine(pool)

	courseService := course.NewService(course.NewRepository(pool), engine, log)
	chapterService := chapter.NewService(chapter.NewRepository(pool), engine, log)
	sectionService := section.NewService(section.NewRepository(pool), engine, log)
	articleService := article.NewService(article.NewRepository(pool), engine, log)
	playlistService := playlist.NewService(playlist.NewRepository(pool), engine, log)
	testSuiteService := testsuite.NewService(testsuite.NewRepository(pool), engine, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		User:      userHandler,
		Course:    course.NewHandler(courseService, resolve, protect),
		Chapter:   chapter.NewHandler(chapterService, resolve, protect),
		Section:   section.NewHandler(sectionService, resolve, protect),
		Article:   article.NewHandler(articleService, resolve, protect),
		Playlist:  playlist.NewHandler(playlistService, resolve, protect),
		TestSuite: testsuite.NewHandler(testSuiteService, resolve, protect),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, identitySvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
