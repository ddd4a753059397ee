// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/repository/service layers.
var (
	// ErrNotFound indicates the requested entity (or storage key) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication (unknown email or wrong password).
	ErrUnauthorized = errors.New("invalid email or password")

	// ErrNotAuthenticated indicates the operation requires a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden indicates the current user lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates temporary login lock due to repeated failures.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a uniqueness violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation")

	// ErrCorrupt indicates a stored value that cannot be decoded or authenticated.
	ErrCorrupt = errors.New("corrupt value")
)
