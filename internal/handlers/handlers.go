// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/scentbook/internal/router"
	"codeberg.org/oliverandrich/scentbook/internal/views"
	"github.com/labstack/echo/v4"
)

// Handlers contains the page and health handlers.
type Handlers struct {
	router *router.Router
}

// New creates a new Handlers instance serving pages from r.
func New(r *router.Router) *Handlers {
	return &Handlers{router: r}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Page renders the view the route table binds to the request path. Paths
// without a route get the not-found view with status 404.
func (h *Handlers) Page(c echo.Context) error {
	m := h.router.Resolve(c.Request().URL.Path)

	ctx := views.WithRequestedPath(c.Request().Context(), m.Path)
	c.SetRequest(c.Request().WithContext(ctx))

	status := http.StatusOK
	if m.NotFound {
		status = http.StatusNotFound
	}
	return Render(c, status, m.Route.View)
}
