package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// ValidationError carries a server-reported validation message that must be
// surfaced to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

// IsOptionalMiss reports whether err is the kind of failure an optional
// aggregate read is allowed to swallow (missing or forbidden resource).
func IsOptionalMiss(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func statusError(code int, serverMsg string) error {
	switch {
	case code == 401:
		return ErrUnauthorized
	case code == 403 || code == 404:
		return ErrNotFound
	case code == 400:
		return &ValidationError{Message: serverMsg}
	default:
		if serverMsg != "" {
			return fmt.Errorf("%w: status %d: %s", ErrUnavailable, code, serverMsg)
		}
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
}
