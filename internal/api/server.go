// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/hanvu/lectern/internal/auth"
	"github.com/hanvu/lectern/internal/content/article"
	"github.com/hanvu/lectern/internal/content/chapter"
	"github.com/hanvu/lectern/internal/content/course"
	"github.com/hanvu/lectern/internal/content/playlist"
	"github.com/hanvu/lectern/internal/content/section"
	"github.com/hanvu/lectern/internal/content/testsuite"
	"github.com/hanvu/lectern/internal/platform/config"
	"github.com/hanvu/lectern/internal/platform/constants"
	"github.com/hanvu/lectern/internal/platform/middleware"
	"github.com/hanvu/lectern/internal/platform/sec"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// User handles session resolution and the user directory.
	User *auth.Handler

	// Course handles the course catalog.
	Course *course.Handler

	// Chapter handles course chapters.
	Chapter *chapter.Handler

	// Section handles chapter sections.
	Section *section.Handler

	// Article handles standalone articles.
	Article *article.Handler

	// Playlist handles curated course playlists.
	Playlist *playlist.Handler

	// TestSuite handles quiz test suites.
	TestSuite *testsuite.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier sec.IdentityVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/users", h.User.Routes())
		api.Mount("/courses", h.Course.Routes())
		api.Mount("/chapters", h.Chapter.Routes())
		api.Mount("/sections", h.Section.Routes())
		api.Mount("/articles", h.Article.Routes())
		api.Mount("/playlists", h.Playlist.Routes())
		api.Mount("/test-suites", h.TestSuite.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
