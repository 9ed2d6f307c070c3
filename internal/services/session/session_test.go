// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validHashKey is a valid 32-byte hex-encoded key for testing
const validHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// validBlockKey is a valid 32-byte hex-encoded key for encryption testing
const validBlockKey = "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		CookieName:       "_test_session",
		JWTExpireMinutes: 60,
		HashKey:          validHashKey,
	}
}

func TestNewManager(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())

	require.NoError(t, err)
	assert.Equal(t, "_test_session", mgr.CookieName())
}

func TestNewManager_WithBlockKey(t *testing.T) {
	cfg := newTestConfig()
	cfg.BlockKey = validBlockKey

	mgr, err := session.NewManager(cfg)

	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestNewManager_InvalidHashKey_NotHex(t *testing.T) {
	cfg := newTestConfig()
	cfg.HashKey = "not-hex-encoded"

	_, err := session.NewManager(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid session hash key")
}

func TestNewManager_InvalidBlockKey_WrongLength(t *testing.T) {
	cfg := newTestConfig()
	cfg.BlockKey = "0123456789abcdef" // only 8 bytes

	_, err := session.NewManager(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be 32 bytes")
}

func TestNewManager_DevMode_GeneratesKey(t *testing.T) {
	cfg := newTestConfig()
	cfg.HashKey = ""

	mgr, err := session.NewManager(cfg)

	require.NoError(t, err)
	assert.NotNil(t, mgr)
}

func TestCreate(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())
	require.NoError(t, err)

	cookie, err := mgr.Create(123, "testuser")

	require.NoError(t, err)
	assert.Equal(t, "_test_session", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestCreate_SecureStrict(t *testing.T) {
	cfg := newTestConfig()
	cfg.CookieSecure = true
	cfg.CookieSameSite = "strict"
	mgr, err := session.NewManager(cfg)
	require.NoError(t, err)

	cookie, err := mgr.Create(123, "testuser")

	require.NoError(t, err)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestParse(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())
	require.NoError(t, err)
	cookie, err := mgr.Create(123, "testuser")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	data, err := mgr.Parse(req)

	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, int64(123), data.UserID)
	assert.Equal(t, "testuser", data.Username)
	assert.False(t, data.ExpiresAt.IsZero())
}

func TestParse_NoCookie(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())
	require.NoError(t, err)

	data, err := mgr.Parse(httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestParse_TamperedCookie(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())
	require.NoError(t, err)
	cookie, err := mgr.Create(123, "testuser")
	require.NoError(t, err)

	cookie.Value = cookie.Value[:len(cookie.Value)-5] + "XXXXX"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	data, err := mgr.Parse(req)

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestParse_ExpiredSession(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer, err := session.NewManager(newTestConfig(), session.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	cookie, err := issuer.Create(123, "testuser")
	require.NoError(t, err)

	verifier, err := session.NewManager(newTestConfig())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	data, err := verifier.Parse(req)

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestParse_DifferentManager(t *testing.T) {
	mgr1, err := session.NewManager(newTestConfig())
	require.NoError(t, err)
	cookie, err := mgr1.Create(123, "testuser")
	require.NoError(t, err)

	cfg2 := newTestConfig()
	cfg2.HashKey = validBlockKey
	mgr2, err := session.NewManager(cfg2)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	data, err := mgr2.Parse(req)

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestClear(t *testing.T) {
	mgr, err := session.NewManager(newTestConfig())
	require.NoError(t, err)

	cookie := mgr.Clear()

	assert.Equal(t, "_test_session", cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, -1, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}
