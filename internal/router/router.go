// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package router maps request paths to views.
//
// A Table is an ordered list of routes. Resolution normalizes the requested
// path and returns the first route whose path is exactly equal to it. Paths
// that match nothing resolve to the Router's fallback route, which keeps
// resolution deterministic for every input.
package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

var (
	ErrDuplicatePath = errors.New("duplicate route path")
	ErrInvalidPath   = errors.New("route path must start with /")
	ErrNilView       = errors.New("route view is nil")
)

// Route binds a path to the view rendered for it.
type Route struct {
	View templ.Component
	Path string
	Name string
}

// Table is an ordered, immutable list of routes with unique paths.
type Table struct {
	routes []Route
}

// NewTable validates the routes and returns them as a table.
// Order is kept as given.
func NewTable(routes ...Route) (*Table, error) {
	seen := make(map[string]struct{}, len(routes))
	out := make([]Route, 0, len(routes))

	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, r.Path)
		}
		if r.View == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilView, r.Path)
		}
		path := Normalize(r.Path)
		if _, ok := seen[path]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, r.Path)
		}
		seen[path] = struct{}{}
		r.Path = path
		out = append(out, r)
	}

	return &Table{routes: out}, nil
}

// Resolve returns the first route whose path equals the normalized path.
func (t *Table) Resolve(path string) (Route, bool) {
	path = Normalize(path)
	for _, r := range t.routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Routes returns a copy of the routes in table order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// Normalize drops query and fragment, maps the empty path to "/" and strips a
// single trailing slash from anything but the root.
func Normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Match is the outcome of resolving a path.
type Match struct {
	Route    Route
	Path     string // normalized path that was requested
	NotFound bool   // true when Route is the fallback
}

// Router resolves paths against a table and tracks navigation in an
// in-memory history.
type Router struct {
	table    *Table
	history  *MemoryHistory
	fallback Route
}

// New creates a Router. The fallback route is returned for every path the
// table does not contain.
func New(table *Table, fallback Route) *Router {
	return &Router{
		table:    table,
		history:  NewMemoryHistory(),
		fallback: fallback,
	}
}

// Resolve matches the path without touching history.
func (r *Router) Resolve(path string) Match {
	path = Normalize(path)
	if route, ok := r.table.Resolve(path); ok {
		return Match{Route: route, Path: path}
	}
	return Match{Route: r.fallback, Path: path, NotFound: true}
}

// Push navigates to path and returns the new current match.
func (r *Router) Push(path string) Match {
	r.history.Push(Normalize(path))
	return r.Current()
}

// Replace swaps the current history entry for path.
func (r *Router) Replace(path string) Match {
	r.history.Replace(Normalize(path))
	return r.Current()
}

// Back moves one entry back. It reports false when already at the start.
func (r *Router) Back() (Match, bool) {
	if !r.history.Back() {
		return r.Current(), false
	}
	return r.Current(), true
}

// Forward moves one entry forward. It reports false when already at the end.
func (r *Router) Forward() (Match, bool) {
	if !r.history.Forward() {
		return r.Current(), false
	}
	return r.Current(), true
}

// Current returns the match for the current history entry. Before any
// navigation the current location is "/".
func (r *Router) Current() Match {
	path, ok := r.history.Current()
	if !ok {
		path = "/"
	}
	return r.Resolve(path)
}

// History exposes the navigation history.
func (r *Router) History() *MemoryHistory {
	return r.history
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}
