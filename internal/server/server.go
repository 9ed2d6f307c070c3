// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

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

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/database"
	"codeberg.org/oliverandrich/scentbook/internal/handlers"
	"codeberg.org/oliverandrich/scentbook/internal/i18n"
	"codeberg.org/oliverandrich/scentbook/internal/logging"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
	"codeberg.org/oliverandrich/scentbook/internal/services/auth"
	"codeberg.org/oliverandrich/scentbook/internal/services/fragrance"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"codeberg.org/oliverandrich/scentbook/internal/views"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (migrations run on open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	e, err := New(cfg, repository.New(db))
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the Echo instance with all services, middleware and routes.
// i18n must be initialized by the caller.
func New(cfg *config.Config, repo *repository.Repository, opts ...auth.Option) (*echo.Echo, error) {
	authSvc, err := auth.NewService(repo, &cfg.Auth, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	sessions, err := session.NewManager(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session manager: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	setupMiddleware(e, cfg, authSvc, sessions)
	setupRoutes(e, views.NewRouter(), authSvc, sessions, fragrance.NewService(repo))

	return e, nil
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errChan := make(chan error, 1)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
