// main is the entry point of the Persons API application.
//
// STARTUP SEQUENCE:
//  1. Load .env (if present) and the environment configuration
//  2. Initialise the logger
//  3. Connect to (and set up) the database — PostgreSQL, or an
//     in-memory SQLite instance when TESTING=true
//  4. Build the HTTP router
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/persons-api
//
// Connection parameters come from POSTGRES_USER, POSTGRES_PASSWORD,
// POSTGRES_DB, DB_HOST and DB_PORT; all have compose-friendly defaults.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/holodmoose/ds-lab1/internal/config"
	"github.com/holodmoose/ds-lab1/internal/http/router"
	"github.com/holodmoose/ds-lab1/internal/storage"
	"github.com/holodmoose/ds-lab1/internal/storage/postgres"
	"github.com/holodmoose/ds-lab1/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// A local .env is a convenience for development; in containers the
	// environment is populated by the orchestrator and the file is absent.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.String("error", err.Error()))
	}

	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting persons-api",
		slog.String("env", cfg.Env),
		slog.Bool("testing", cfg.Testing),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The handlers only ever see the storage.Storage interface, so the
	// production/test split is decided here, once, and injected.
	var (
		store storage.Storage
		err   error
	)
	if cfg.Testing {
		store, err = sqlite.New(sqlite.InMemoryDSN)
	} else {
		store, err = postgres.New(cfg)
	}
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised")

	// ── 4. Build the HTTP Router ──────────────────────────────────────────
	handler := router.New(store)

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		// Timeouts guard against slow clients holding connections open.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks, so it runs apart from the shutdown logic.
	// It returns http.ErrServerClosed after Shutdown() — that's expected.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	// Give in-flight requests up to 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
