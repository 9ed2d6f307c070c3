// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware

import (
	"codeberg.org/oliverandrich/scentbook/internal/handlers"
	"github.com/labstack/echo/v4"
)

// writeDetail renders msg in the API error shape.
func writeDetail(c echo.Context, code int, msg string) error {
	return c.JSON(code, handlers.ErrorResponse{Detail: msg})
}
