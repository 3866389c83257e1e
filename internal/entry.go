// Package internal provides the application entry points: the journal
// commands and the HTTP server.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/tag/internal/api"
	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/sse"
)

// NewHTTPHandler builds the root router: health checks and the API under /api.
func NewHTTPHandler(apiRouter http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", apiRouter)
	return r
}

// Serve runs the HTTP API, the SSE broker and the journal watcher until ctx
// is cancelled or a shutdown signal arrives.
func Serve(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	// Writes from the API are indexed by the watcher so that they also
	// reach SSE subscribers.
	ws, err := app.open(os.Stdout, true, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	cfg := ws.cfg
	logger := ws.logger
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("journal", ws.store.Root()+string(os.PathSeparator)+ws.name),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Run initial sync.
	if _, err := index.Sync(ws.db, ws.store, ws.name, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	apiRouter := api.NewRouter(ws.svc, ws.db, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           NewHTTPHandler(apiRouter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start journal watcher with SSE callback.
	g.Go(func() error {
		return index.Watch(gCtx, ws.db, ws.store, ws.store.Root(), ws.name, logger, func(kind, path string) {
			broker.PublishJournalEvent(kind, path)
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		// SSE handlers return once their channels are closed.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Stop the watcher as well when the shutdown came from a signal.
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

var errShutdown = errors.New("shutdown")
