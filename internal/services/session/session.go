// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session issues and verifies the signed session cookie.
package session

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"github.com/gorilla/securecookie"
)

// Data is the payload stored in the session cookie.
type Data struct {
	ExpiresAt time.Time
	Username  string
	UserID    int64
}

// Manager encodes and decodes session cookies.
type Manager struct {
	codec    *securecookie.SecureCookie
	clock    func() time.Time
	name     string
	maxAge   time.Duration
	secure   bool
	sameSite http.SameSite
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source for expiry stamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// NewManager creates a session manager from the auth configuration. The
// session lives as long as an access token. An empty hash key is replaced
// by a random one, which logs everyone out on restart.
func NewManager(cfg *config.AuthConfig, opts ...Option) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(32)
		slog.Warn("session hash key not configured, using a random one")
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	maxAge := cfg.AccessTokenTTL()
	if maxAge <= 0 {
		maxAge = 30 * time.Minute
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(maxAge.Seconds()))

	m := &Manager{
		codec:    codec,
		name:     cfg.CookieName,
		maxAge:   maxAge,
		secure:   cfg.CookieSecure,
		sameSite: cfg.SameSite(),
	}
	if m.name == "" {
		m.name = "access_token"
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func decodeKey(key, kind string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("invalid session %s key: %w", kind, err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("invalid session %s key: must be 32 bytes, got %d", kind, len(b))
	}
	return b, nil
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.name
}

// Create returns a cookie holding a fresh session for the user.
func (m *Manager) Create(userID int64, username string) (*http.Cookie, error) {
	data := Data{
		UserID:    userID,
		Username:  username,
		ExpiresAt: m.now().Add(m.maxAge),
	}

	encoded, err := m.codec.Encode(m.name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	return m.cookie(encoded, int(m.maxAge.Seconds())), nil
}

// Parse returns the session carried by the request. A missing, tampered or
// expired cookie yields nil without an error.
func (m *Manager) Parse(r *http.Request) (*Data, error) {
	c, err := r.Cookie(m.name)
	if err != nil {
		return nil, nil //nolint:nilerr // no cookie means no session
	}

	var data Data
	if err := m.codec.Decode(m.name, c.Value, &data); err != nil {
		return nil, nil //nolint:nilerr // invalid cookie means no session
	}

	if data.UserID == 0 || !m.now().Before(data.ExpiresAt) {
		return nil, nil
	}
	return &data, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie("", -1)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}

func (m *Manager) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}
