// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/scentbook/internal/auth"
	"codeberg.org/oliverandrich/scentbook/internal/handlers"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"github.com/labstack/echo/v4"
)

// UserResolver loads users for bearer tokens and sessions.
type UserResolver interface {
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// LoadUser puts the current user on the request context. A bearer token in
// the Authorization header wins over the session cookie. Invalid credentials
// leave the request anonymous.
func LoadUser(users UserResolver, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			user := userFromBearer(r, users)
			if user == nil {
				user = userFromSession(r, users, sessions)
			}
			if user != nil {
				c.SetRequest(r.WithContext(auth.WithUser(r.Context(), user)))
			}
			return next(c)
		}
	}
}

func userFromBearer(r *http.Request, users UserResolver) *models.User {
	token, ok := bearerToken(r)
	if !ok {
		return nil
	}
	user, err := users.UserFromToken(r.Context(), token)
	if err != nil {
		slog.Debug("bearer_rejected", "error", err)
		return nil
	}
	return user
}

func userFromSession(r *http.Request, users UserResolver, sessions *session.Manager) *models.User {
	data, err := sessions.Parse(r)
	if err != nil || data == nil {
		return nil
	}
	user, err := users.UserByID(r.Context(), data.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("failed to load session user", "error", err, "user_id", data.UserID)
		}
		return nil
	}
	return user
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.IsAuthenticated(c.Request().Context()) {
			return unauthorized(c)
		}
		return next(c)
	}
}

// RequireRole lets through users holding one of roles. Anonymous requests
// get 401, users with another role 403.
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	msg := "Role must be one of: " + strings.Join(names, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := auth.GetUser(c.Request().Context())
			if user == nil {
				return unauthorized(c)
			}
			if !user.HasRole(roles...) {
				slog.Warn("role_denied", "user_id", user.ID, "role", user.Role, "path", c.Request().URL.Path)
				return writeDetail(c, http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return handlers.Unauthorized(c, "Not authenticated")
}
