// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package shell is the client application: it owns the store, the router and
// the API client, and renders the current view.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/client"
	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/csrf"
	"codeberg.org/oliverandrich/scentbook/internal/i18n"
	"codeberg.org/oliverandrich/scentbook/internal/logging"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/router"
	"codeberg.org/oliverandrich/scentbook/internal/store"
	"codeberg.org/oliverandrich/scentbook/internal/views"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
)

// API is the part of the backend the shell talks to.
type API interface {
	store.TokenFetcher
	Login(ctx context.Context, csrfToken, username, password string) (*client.Token, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context, csrfToken string) error
	CloseIdleConnections()
}

// Shell ties one store, one router and one API client together for the
// lifetime of a client session.
type Shell struct {
	api    API
	store  *store.Store
	router *router.Router
	locale language.Tag
}

// Option customizes a Shell.
type Option func(*Shell)

// WithLocale sets the language views are rendered in.
func WithLocale(tag language.Tag) Option {
	return func(s *Shell) { s.locale = tag }
}

// New creates a Shell.
func New(api API, st *store.Store, r *router.Router, opts ...Option) *Shell {
	s := &Shell{api: api, store: st, router: r, locale: language.English}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the session state.
func (s *Shell) Store() *store.Store {
	return s.store
}

// Router returns the navigator.
func (s *Shell) Router() *router.Router {
	return s.router
}

// Close releases the client's pooled connections.
func (s *Shell) Close() {
	s.api.CloseIdleConnections()
}

// Boot fetches the initial CSRF token.
func (s *Shell) Boot(ctx context.Context) error {
	return s.store.FetchCSRFToken(ctx)
}

// Login signs in and loads the user into the store. A CSRF token is fetched
// first when the store has none.
func (s *Shell) Login(ctx context.Context, username, password string) error {
	token, err := s.csrfToken(ctx)
	if err != nil {
		return err
	}

	if _, err := s.api.Login(ctx, token, username, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	s.store.SetUser(user)

	slog.Info("login_success", "username", user.Username)
	return nil
}

// Logout ends the session and clears the user.
func (s *Shell) Logout(ctx context.Context) error {
	token, err := s.csrfToken(ctx)
	if err != nil {
		return err
	}
	if err := s.api.Logout(ctx, token); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	s.store.SetUser(nil)
	return nil
}

func (s *Shell) csrfToken(ctx context.Context) (string, error) {
	if token, ok := s.store.CSRFToken(); ok {
		return token, nil
	}
	if err := s.store.FetchCSRFToken(ctx); err != nil {
		return "", fmt.Errorf("failed to fetch csrf token: %w", err)
	}
	token, _ := s.store.CSRFToken()
	return token, nil
}

// Navigate moves to path and renders the matched view to w. The returned
// match tells whether the fallback was used.
func (s *Shell) Navigate(ctx context.Context, path string, w io.Writer) (router.Match, error) {
	m := s.router.Push(path)
	return m, s.render(ctx, m, w)
}

// Render renders the current view to w without navigating.
func (s *Shell) Render(ctx context.Context, w io.Writer) error {
	return s.render(ctx, s.router.Current(), w)
}

func (s *Shell) render(ctx context.Context, m router.Match, w io.Writer) error {
	ctx = i18n.WithLocale(ctx, s.locale)
	ctx = views.WithRequestedPath(ctx, m.Path)
	if user := s.store.User(); user != nil {
		ctx = auth.WithUser(ctx, user)
	}
	if token, ok := s.store.CSRFToken(); ok {
		ctx = csrf.WithToken(ctx, token)
	}
	return m.Route.View.Render(ctx, w)
}

// Run is the action of the client command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewClientFromCLI(cmd)
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to init i18n: %w", err)
	}

	api, err := client.New(cfg.Client.BaseURL, client.WithTimeout(cfg.Client.Timeout))
	if err != nil {
		return err
	}

	sh := New(api, store.New(api), views.NewRouter(),
		WithLocale(i18n.MatchLanguage(cmd.String("lang"))))
	defer sh.Close()

	if err := sh.Boot(ctx); err != nil {
		var se *client.StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("backend rejected csrf request: %w", err)
		}
		return fmt.Errorf("failed to reach backend at %s: %w", cfg.Client.BaseURL, err)
	}

	if username := cmd.String("username"); username != "" {
		if err := sh.Login(ctx, username, cmd.String("password")); err != nil {
			return err
		}
	}

	m, err := sh.Navigate(ctx, cmd.String("path"), os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", m.Path, err)
	}
	if m.NotFound {
		slog.Warn("route_not_found", "path", m.Path)
	}
	return nil
}
