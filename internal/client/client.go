// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package client talks to the scentbook HTTP API. Cookies set by the server
// (the CSRF cookie and the session) are kept in a jar and sent on every
// request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"codeberg.org/oliverandrich/scentbook/internal/models"
	"golang.org/x/net/publicsuffix"
)

const (
	csrfTokenPath = "/api/auth/csrf-token"
	loginPath     = "/api/auth/login"
	logoutPath    = "/api/auth/logout"
	registerPath  = "/api/auth/register"
	mePath        = "/api/auth/me"

	csrfHeader = "X-CSRF-Token"

	maxErrorBody = 4 << 10
)

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Client is an API client bound to one base URL and one cookie jar.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the timeout for a whole request. Zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		http:    &http.Client{Jar: jar},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// FetchCSRFToken requests a CSRF token. The server also sets the matching
// cookie, which the jar keeps for later requests.
func (c *Client) FetchCSRFToken(ctx context.Context) (string, error) {
	var body struct {
		CSRFToken *string `json:"csrf_token"`
	}
	if err := c.do(ctx, http.MethodGet, csrfTokenPath, nil, "", "", &body); err != nil {
		return "", err
	}
	if body.CSRFToken == nil || *body.CSRFToken == "" {
		return "", ErrMissingToken
	}
	return *body.CSRFToken, nil
}

// Login posts the credentials as a form. On success the server sets the
// session cookie and also returns a bearer token.
func (c *Client) Login(ctx context.Context, csrfToken, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	err := c.do(ctx, http.MethodPost, loginPath, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", csrfToken, &tok)
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

// RegisterRequest is the payload of Register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, csrfToken string, req RegisterRequest) (*models.User, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	var user models.User
	err = c.do(ctx, http.MethodPost, registerPath, bytes.NewReader(payload),
		"application/json", csrfToken, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser returns the user of the current session.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, mePath, nil, "", "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context, csrfToken string) error {
	return c.do(ctx, http.MethodPost, logoutPath, nil, "", csrfToken, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, csrfToken string, out any) error {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if csrfToken != "" {
		req.Header.Set(csrfHeader, csrfToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("api_request", "method", method, "url", target, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, URL: target, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return &DecodeError{URL: target, Err: err}
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return &DecodeError{URL: target, Err: err}
	}
	return nil
}

func detailFromBody(body string) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Message
}
