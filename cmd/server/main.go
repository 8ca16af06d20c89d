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

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/questcycle/backend/internal/api"
	"github.com/questcycle/backend/internal/app"
	"github.com/questcycle/backend/internal/infrastructure/config"
	"github.com/questcycle/backend/internal/service"
	"github.com/questcycle/backend/internal/source"

	_ "github.com/questcycle/backend/docs" // generated swagger docs
)

// @title           QuestCycle API
// @version         1.0
// @description     Practice sessions drawn from a public question bank, without repeats until the pool is exhausted.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if p, ok := application.Source.(source.Pinger); ok {
		go source.KeepAlive(ctx, p, cfg.KeepAliveInterval, logger)
	}

	go func() {
		if _, err := application.Sessions.Restore(ctx); err != nil && !errors.Is(err, service.ErrSuperseded) {
			logger.Warn("failed to restore saved filter", "error", err)
		}
	}()

	handler := api.NewHandler(application.Sessions, application.History, application.DB, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// filter requests wait on the remote question API
		WriteTimeout: cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
