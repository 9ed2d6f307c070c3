// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PasswordValidator validates passwords against various criteria
type PasswordValidator struct {
	MinLength           int
	CheckUserSimilarity bool
}

// DefaultPasswordValidator returns the validator used for registration.
func DefaultPasswordValidator() *PasswordValidator {
	return &PasswordValidator{
		MinLength:           8,
		CheckUserSimilarity: true,
	}
}

// ValidationError represents a single password validation error
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// PasswordValidationError wraps multiple validation errors
type PasswordValidationError struct {
	Errors []ValidationError
}

func (e *PasswordValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "password validation failed"
	}
	return e.Errors[0].Message
}

// Messages returns all error messages
func (e *PasswordValidationError) Messages() []string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Message
	}
	return messages
}

// Validate checks a password and returns nil or a *PasswordValidationError.
func (v *PasswordValidator) Validate(password string, userAttributes ...string) error {
	var errs []ValidationError

	if utf8.RuneCountInString(password) < v.MinLength {
		errs = append(errs, ValidationError{
			Code:    "min_length",
			Message: fmt.Sprintf("Password must be at least %d characters", v.MinLength),
		})
	}

	if v.CheckUserSimilarity && containsAttribute(password, userAttributes) {
		errs = append(errs, ValidationError{
			Code:    "too_similar",
			Message: "Password is too similar to your username or email",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return &PasswordValidationError{Errors: errs}
}

func containsAttribute(password string, attributes []string) bool {
	passwordLower := strings.ToLower(password)
	for _, attr := range attributes {
		if attr == "" {
			continue
		}
		if strings.EqualFold(passwordLower, attr) || strings.Contains(passwordLower, strings.ToLower(attr)) {
			return true
		}
	}
	return false
}
