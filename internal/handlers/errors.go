// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func detail(c echo.Context, code int, msg string) error {
	return c.JSON(code, ErrorResponse{Detail: msg})
}

// BadRequest writes a 400 error.
func BadRequest(c echo.Context, msg string) error {
	return detail(c, http.StatusBadRequest, msg)
}

func notFound(c echo.Context) error {
	return detail(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// Unauthorized writes a 401 error with a bearer challenge.
func Unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return detail(c, http.StatusUnauthorized, msg)
}

// InternalServerError logs err and writes a generic 500 error.
func InternalServerError(c echo.Context, err error) error {
	slog.Error("request_failed",
		"error", err,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)
	return detail(c, http.StatusInternalServerError, "internal server error")
}

// ErrorHandler renders errors that reach echo as JSON detail bodies.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		slog.Error("unhandled_error", "error", err, "path", c.Request().URL.Path)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = detail(c, code, msg)
	}
	if writeErr != nil {
		slog.Error("error_response_failed", "error", writeErr)
	}
}
