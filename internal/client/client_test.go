// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/client"
	"codeberg.org/oliverandrich/scentbook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T, status int, contentType, body string) *client.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/csrf-token" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := client.New("not a url")
	assert.Error(t, err)
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := client.New("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestFetchCSRFToken(t *testing.T) {
	c := newStub(t, http.StatusOK, "application/json", `{"csrf_token":"abc123"}`)

	token, err := c.FetchCSRFToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestFetchCSRFToken_Errors(t *testing.T) {
	tests := []struct {
		check       func(t *testing.T, err error)
		name        string
		contentType string
		body        string
		status      int
	}{
		{
			name:        "non-JSON body",
			status:      http.StatusOK,
			contentType: "text/html",
			body:        "<html>oops</html>",
			check: func(t *testing.T, err error) {
				var de *client.DecodeError
				assert.ErrorAs(t, err, &de)
			},
		},
		{
			name:        "trailing data after JSON",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"csrf_token":"a"}<html>oops</html>`,
			check: func(t *testing.T, err error) {
				var de *client.DecodeError
				assert.ErrorAs(t, err, &de)
			},
		},
		{
			name:        "second JSON value",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"csrf_token":"a"} {"csrf_token":"b"}`,
			check: func(t *testing.T, err error) {
				var de *client.DecodeError
				assert.ErrorAs(t, err, &de)
			},
		},
		{
			name:        "missing field",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrMissingToken)
			},
		},
		{
			name:        "empty token",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"csrf_token":""}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrMissingToken)
			},
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"detail":"database unavailable"}`,
			check: func(t *testing.T, err error) {
				var se *client.StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
				assert.Equal(t, "database unavailable", se.Detail())
				assert.True(t, client.IsStatus(err, http.StatusInternalServerError))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newStub(t, tt.status, tt.contentType, tt.body)

			token, err := c.FetchCSRFToken(context.Background())

			require.Error(t, err)
			assert.Empty(t, token)
			tt.check(t, err)
		})
	}
}

func TestFetchCSRFToken_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.New(url, client.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.FetchCSRFToken(context.Background())

	var ne *client.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.MethodGet, ne.Method)
}

func TestFetchCSRFToken_Cancelled(t *testing.T) {
	c := newStub(t, http.StatusOK, "application/json", `{"csrf_token":"abc123"}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchCSRFToken(ctx)

	var ne *client.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchCSRFToken_SendsCookies(t *testing.T) {
	var sawCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("_csrf"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "_csrf", Value: "cookie-value", Path: "/"})
		_, _ = w.Write([]byte(`{"csrf_token":"abc123"}`))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchCSRFToken(context.Background())
	require.NoError(t, err)
	assert.False(t, sawCookie)

	_, err = c.FetchCSRFToken(context.Background())
	require.NoError(t, err)
	assert.True(t, sawCookie, "second request carries the jar cookie")
}

// The store properties against a real HTTP stub.
func TestStore_FetchThroughClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := store.New(newStub(t, http.StatusOK, "application/json", `{"csrf_token":"abc123"}`))

		require.NoError(t, s.FetchCSRFToken(context.Background()))

		token, ok := s.CSRFToken()
		assert.True(t, ok)
		assert.Equal(t, "abc123", token)
	})

	t.Run("decode failure keeps null", func(t *testing.T) {
		s := store.New(newStub(t, http.StatusOK, "text/plain", "not json"))

		err := s.FetchCSRFToken(context.Background())

		var de *client.DecodeError
		require.ErrorAs(t, err, &de)
		_, ok := s.CSRFToken()
		assert.False(t, ok)
	})

	t.Run("missing field keeps null", func(t *testing.T) {
		s := store.New(newStub(t, http.StatusOK, "application/json", `{}`))

		err := s.FetchCSRFToken(context.Background())

		require.ErrorIs(t, err, client.ErrMissingToken)
		_, ok := s.CSRFToken()
		assert.False(t, ok)
	})
}
