// Package errors provides the base error categories shared by every domain package.
// Domain packages declare their own sentinels by wrapping one of these categories,
// and the HTTP layer maps the category to a status code.
package errors

import (
	"errors"
	"fmt"
)

// Base error categories.
var (
	// ErrInvalidInput indicates the caller sent data that cannot be processed
	// (missing header, malformed body, bad ciphertext encoding).
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the caller failed an authenticity check
	// (unwrappable session key, expired or mismatched signature).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the request is understood but refused.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMisconfigured indicates the process was started with unusable settings.
	ErrMisconfigured = errors.New("misconfigured")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
