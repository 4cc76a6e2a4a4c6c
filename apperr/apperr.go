// Package apperr holds the error kinds surfaced by the catalog client.
// Callers match them with errors.Is; the message of the wrapping error carries
// the detail meant for the user.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a required input field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidURL indicates no YouTube video id could be extracted from a URL.
	ErrInvalidURL = errors.New("invalid youtube url")

	// ErrAuthentication indicates the backend rejected the credentials.
	ErrAuthentication = errors.New("invalid credentials")

	// ErrDuplicateEmail indicates an account with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNetwork indicates the request never produced a backend response.
	ErrNetwork = errors.New("network request failed")

	// ErrNotFound indicates the backend answered 404 for the entity.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthenticated indicates the operation needs a logged in session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates the operation needs the admin role.
	ErrForbidden = errors.New("admin role required")

	// ErrBackend indicates the backend answered with an unexpected status.
	ErrBackend = errors.New("backend error")
)

// Validation wraps ErrValidation with a user facing message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// InvalidURL wraps ErrInvalidURL with the offending input.
func InvalidURL(raw string) error {
	return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
}
