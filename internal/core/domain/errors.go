package domain

import (
	"errors"
	"fmt"
	"time"
)

// Access control.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Abuse mitigation.
var (
	ErrTooManyRequests = errors.New("too many requests")
	ErrCaptchaFailed   = errors.New("captcha verification failed")
)

// Persistence and collaborators. A row owned by another dealer is reported as
// ErrNotFound so its existence is not disclosed.
var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("already exists")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrUserExists         = fmt.Errorf("user %w", ErrConflict)
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// RetryAfterError is ErrTooManyRequests with the wait until the next request
// would be admitted.
type RetryAfterError struct {
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%v: retry after %s", ErrTooManyRequests, e.After)
}

func (e *RetryAfterError) Unwrap() error { return ErrTooManyRequests }

// ValidationError carries field-level messages for the submitting form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
