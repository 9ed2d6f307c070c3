// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!doctype html><html lang="`)
		w.text(Locale(ctx))
		w.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		if token := CSRFToken(ctx); token != "" {
			w.raw(`<meta name="csrf-token" content="`)
			w.text(token)
			w.raw(`">`)
		}
		w.raw(`<title>`)
		w.text(title)
		w.raw(` · `)
		w.text(T(ctx, "app_name"))
		w.raw(`</title></head><body>`)
		if w.err != nil {
			return w.err
		}
		if err := body.Render(ctx, out); err != nil {
			return err
		}
		w.raw(`</body></html>`)
		return w.err
	})
}
