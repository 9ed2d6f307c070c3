// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned when the CSRF endpoint answers with valid JSON
// that lacks a csrf_token value.
var ErrMissingToken = errors.New("response has no csrf_token")

var errTrailingData = errors.New("unexpected data after JSON value")

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Err    error
	Method string
	URL    string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response. Body holds at most the first few
// kilobytes of the response.
type StatusError struct {
	Method     string
	URL        string
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Detail returns the "detail" message of a JSON error body, or the raw body.
func (e *StatusError) Detail() string {
	if d := detailFromBody(e.Body); d != "" {
		return d
	}
	return e.Body
}

// DecodeError reports a response body that is not the expected JSON.
type DecodeError struct {
	Err error
	URL string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
