package domain

import "errors"

// Sentinel errors shared between the service layer, the repositories and the
// HTTP error handler. Matched with errors.Is.
var (
	// ErrAuthenticationFailed is deliberately opaque: it covers both an
	// unknown email and a wrong password so the response never reveals
	// which credential was bad.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")

	// ErrInvalidRole covers a malformed or non-existent role id in an
	// assignment request.
	ErrInvalidRole = errors.New("invalid role")

	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidToken = errors.New("invalid token")
)
