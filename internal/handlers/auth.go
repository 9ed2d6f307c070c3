// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/csrf"
	authsvc "codeberg.org/oliverandrich/scentbook/internal/services/auth"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for authentication.
type AuthHandlers struct {
	auth     *authsvc.Service
	sessions *session.Manager
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(svc *authsvc.Service, sess *session.Manager) *AuthHandlers {
	return &AuthHandlers{
		auth:     svc,
		sessions: sess,
	}
}

// CSRFTokenResponse carries the token for the X-CSRF-Token header.
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

// CSRFToken returns the CSRF token issued by the middleware for this client.
func (h *AuthHandlers) CSRFToken(c echo.Context) error {
	token := csrf.FromEcho(c)
	if token == "" {
		return InternalServerError(c, errors.New("csrf middleware did not issue a token"))
	}
	return c.JSON(http.StatusOK, CSRFTokenResponse{CSRFToken: token})
}

// RegisterRequest is the body of a registration. JSON and form bodies are
// both accepted.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Register creates a user account.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "invalid request")
	}

	user, err := h.auth.Register(c.Request().Context(), authsvc.RegisterParams(req))
	if err != nil {
		var pwErr *authsvc.PasswordValidationError
		switch {
		case errors.Is(err, authsvc.ErrUsernameTaken):
			return BadRequest(c, "Username already taken")
		case errors.Is(err, authsvc.ErrEmailTaken):
			return BadRequest(c, "Email already taken")
		case errors.Is(err, authsvc.ErrInvalidUsername), errors.Is(err, authsvc.ErrInvalidEmail):
			return BadRequest(c, err.Error())
		case errors.As(err, &pwErr):
			return BadRequest(c, pwErr.Error())
		default:
			return InternalServerError(c, err)
		}
	}

	return c.JSON(http.StatusOK, user)
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login checks form credentials, sets the session cookie and returns a
// bearer token.
func (h *AuthHandlers) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return Unauthorized(c, "Incorrect username or password")
	}

	user, err := h.auth.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return Unauthorized(c, "Incorrect username or password")
		}
		return InternalServerError(c, err)
	}

	token, err := h.auth.IssueToken(user.ID, user.Username)
	if err != nil {
		return InternalServerError(c, err)
	}

	cookie, err := h.sessions.Create(user.ID, user.Username)
	if err != nil {
		return InternalServerError(c, err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: authsvc.TokenType})
}

// Logout clears the session cookie.
func (h *AuthHandlers) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.Clear())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandlers) Me(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if user == nil {
		return Unauthorized(c, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}
