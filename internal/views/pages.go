// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package views holds the page components and the route table that binds
// them to paths.
package views

import (
	"context"
	"io"

	"codeberg.org/oliverandrich/scentbook/internal/router"
	"github.com/a-h/templ"
)

// MainPage is the start page.
func MainPage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			w := &writer{w: out}
			w.raw(`<main id="main-page"><h1>`)
			w.text(T(ctx, "main_title"))
			w.raw(`</h1><p>`)
			w.text(T(ctx, "main_welcome"))
			w.raw(`</p><p class="session">`)
			if user := GetUser(ctx); user != nil {
				w.text(TData(ctx, "main_greeting", map[string]any{"Username": user.Username}))
			} else {
				w.text(T(ctx, "main_anonymous"))
			}
			w.raw(`</p></main>`)
			return w.err
		})
		return Layout(T(ctx, "main_title"), body).Render(ctx, out)
	})
}

// NotFound is rendered for paths without a route.
func NotFound(path string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
			w := &writer{w: out}
			w.raw(`<main id="not-found"><h1>404</h1><p>`)
			w.text(TData(ctx, "not_found_message", map[string]any{"Path": path}))
			w.raw(`</p><a href="/">`)
			w.text(T(ctx, "not_found_back"))
			w.raw(`</a></main>`)
			return w.err
		})
		return Layout(T(ctx, "not_found_title"), body).Render(ctx, out)
	})
}

// notFoundView renders NotFound for the path currently being served, which
// it reads from the render context.
func notFoundView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		return NotFound(RequestedPath(ctx)).Render(ctx, out)
	})
}

type pathKey struct{}

// WithRequestedPath stores the path being rendered on the context.
func WithRequestedPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// RequestedPath returns the path stored by WithRequestedPath.
func RequestedPath(ctx context.Context) string {
	if p, ok := ctx.Value(pathKey{}).(string); ok {
		return p
	}
	return ""
}

// Routes returns the application route table. It is the single place that
// decides which view a path shows.
func Routes() *router.Table {
	table, err := router.NewTable(
		router.Route{Path: "/", Name: "main", View: MainPage()},
	)
	if err != nil {
		// The table is static; an error here is a programming mistake.
		panic(err)
	}
	return table
}

// FallbackRoute is shown for every path Routes does not contain.
func FallbackRoute() router.Route {
	return router.Route{Path: "/404", Name: "not_found", View: notFoundView()}
}

// NewRouter returns a router over Routes with the not-found fallback.
func NewRouter() *router.Router {
	return router.New(Routes(), FallbackRoute())
}
