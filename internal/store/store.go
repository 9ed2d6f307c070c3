// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package store holds the client-side application state: the signed-in user
// and the CSRF token issued by the backend.
package store

import (
	"context"
	"log/slog"
	"sync"

	"codeberg.org/oliverandrich/scentbook/internal/models"
)

// TokenFetcher retrieves a fresh CSRF token from the backend.
type TokenFetcher interface {
	FetchCSRFToken(ctx context.Context) (string, error)
}

// Store is the shared state of a client session. The zero state has no user
// and no token.
type Store struct {
	fetcher   TokenFetcher
	user      *models.User
	csrfToken *string
	mu        sync.RWMutex
}

// New creates an empty Store that fetches tokens through fetcher.
func New(fetcher TokenFetcher) *Store {
	return &Store{fetcher: fetcher}
}

// SetUser replaces the current user. nil signs the session out.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// User returns the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetCSRFToken replaces the token. nil clears it.
func (s *Store) SetCSRFToken(token *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == nil {
		s.csrfToken = nil
		return
	}
	t := *token
	s.csrfToken = &t
}

// CSRFToken returns the token and whether one is set.
func (s *Store) CSRFToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.csrfToken == nil {
		return "", false
	}
	return *s.csrfToken, true
}

// IsAuthenticated reports whether a user is set.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// FetchCSRFToken requests a new token once and stores it. On error the
// current token is left as it was.
func (s *Store) FetchCSRFToken(ctx context.Context) error {
	token, err := s.fetcher.FetchCSRFToken(ctx)
	if err != nil {
		slog.Warn("csrf_fetch_failed", "error", err)
		return err
	}
	s.SetCSRFToken(&token)
	slog.Debug("csrf_fetch_success")
	return nil
}
