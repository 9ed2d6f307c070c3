// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package csrf wires echo's double-submit CSRF protection and exposes the
// token to templates through the request context.
package csrf

import (
	"context"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/scentbook/internal/ctxkeys"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	// CookieName is the cookie holding the server side of the token.
	CookieName = "_csrf"
	// HeaderName is the request header API clients echo the token in.
	HeaderName = "X-CSRF-Token"
	// FormField is the form field HTML forms echo the token in.
	FormField = "csrf_token"
	// contextKey is where echo stores the token for the current request.
	contextKey = "csrf"
)

// WithToken returns a copy of ctx carrying the token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkeys.CSRFToken{}, token)
}

// GetToken retrieves the CSRF token from the context
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(ctxkeys.CSRFToken{}).(string); ok {
		return token
	}
	return ""
}

// FromEcho returns the token echo's middleware generated for this request.
func FromEcho(c echo.Context) string {
	token, _ := c.Get(contextKey).(string)
	return token
}

// Middleware configures CSRF protection.
func Middleware(secure bool, sameSite http.SameSite) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + HeaderName + ",form:" + FormField,
		ContextKey:     contextKey,
		CookieName:     CookieName,
		CookiePath:     "/",
		CookieSecure:   secure,
		CookieHTTPOnly: true,
		CookieSameSite: sameSite,
		ErrorHandler: func(err error, c echo.Context) error {
			r := c.Request()
			slog.Warn("csrf_failure",
				"path", r.URL.Path,
				"method", r.Method,
				"ip", c.RealIP(),
				"error", err,
			)
			return echo.NewHTTPError(http.StatusForbidden, "invalid csrf token")
		},
	})
}

// ToContext copies the CSRF token to the request context.
func ToContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := FromEcho(c); token != "" {
				c.SetRequest(c.Request().WithContext(WithToken(c.Request().Context(), token)))
			}
			return next(c)
		}
	}
}
