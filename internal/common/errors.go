// Package common defines shared constants and sentinel errors used across
// TutorIT client components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors raised before any network call.
	ErrorValidation = errors.New("validation error")
)
