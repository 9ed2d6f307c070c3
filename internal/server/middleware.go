// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"fmt"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/csrf"
	mw "codeberg.org/oliverandrich/scentbook/internal/middleware"
	"codeberg.org/oliverandrich/scentbook/internal/services/session"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func setupMiddleware(e *echo.Echo, cfg *config.Config, users mw.UserResolver, sessions *session.Manager) {
	e.Pre(mw.StripTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(mw.RequestLogger())
	e.Use(middleware.Secure())
	e.Use(middleware.Gzip())
	if cfg.Server.MaxBodySize > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Server.MaxBodySize)))
	}
	e.Use(csrf.Middleware(cfg.Auth.CookieSecure, cfg.Auth.SameSite()))
	e.Use(csrf.ToContext())
	e.Use(mw.Locale())
	e.Use(mw.LoadUser(users, sessions))
}
