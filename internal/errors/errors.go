// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these (usually wrapped with a
// user-facing message) and handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream indicates a dependent service (Shopify, widget worker) failed.
	ErrUpstream = errors.New("upstream failure")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Public builds an error whose message is safe to show to API clients while still
// matching kind with errors.Is. Message() extracts the text again.
func Public(kind error, message string) error {
	return &publicError{kind: kind, message: message}
}

// Message returns the client-facing message of an error built with Public, or ""
// when err carries none.
func Message(err error) string {
	var pe *publicError
	if errors.As(err, &pe) {
		return pe.message
	}
	return ""
}

type publicError struct {
	kind    error
	message string
}

func (e *publicError) Error() string { return e.message }

func (e *publicError) Unwrap() error { return e.kind }

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
