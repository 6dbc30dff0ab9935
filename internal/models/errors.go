package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimitBackoff marks a ServiceError caused by quota exhaustion
	// (429 responses survived all retries). Kept distinct for observability.
	ErrRateLimitBackoff = errors.New("rate limit backoff exceeded")
)

// ServiceError wraps a failure of an external collaborator (workspace store
// or AI provider) after the retrying client has exhausted its attempts, or a
// non-retryable failure surfaced on first occurrence.
type ServiceError struct {
	Op  string // e.g. "readSchema", "createRecord"
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("workspace service: %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewServiceError wraps err as a ServiceError for the given operation.
func NewServiceError(op string, err error) *ServiceError {
	return &ServiceError{Op: op, Err: err}
}

// IsServiceError reports whether err is (or wraps) a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}
