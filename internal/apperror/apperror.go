// Package apperror defines the domain error taxonomy shared by all layers.
//
// Services return these errors; the HTTP layer translates them into flash
// messages or error pages. Handlers check the kind with errors.Is against the
// sentinel values below, which works through any fmt.Errorf("%w") wrapping.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// ErrAuth is returned for any failed login attempt. It is intentionally
	// unspecific: unknown usernames and wrong passwords produce the same
	// error so the login form cannot be used to enumerate accounts.
	ErrAuth = errors.New("invalid login attempt")
)

type AppError struct {
	Err     error  // sentinel identifying the error kind
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// InvalidLogin returns the generic authentication failure. The message never
// varies, regardless of which part of the credentials was wrong.
func InvalidLogin() *AppError {
	return &AppError{
		Err:     ErrAuth,
		Message: "Invalid Login Attempt.",
	}
}

// FieldError is a single validation failure on one entity field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors aggregates every field error found by an entity's Validate
// function. A nil or empty slice means the entity is valid. It satisfies the
// error interface and unwraps to ErrValidation, so callers can treat the
// whole list like any other validation failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}
