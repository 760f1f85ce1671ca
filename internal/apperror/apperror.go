// Package apperror defines the typed errors shared by the service and HTTP layers.
//
// Services return *AppError values wrapping one of the sentinels below.
// Handlers never inspect messages; they match the sentinel with errors.Is
// and pick the HTTP status from it.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrUpstream   = errors.New("upstream error")
)

type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying failure, for logs only
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Upstream reports that a mandatory call to an external service failed.
// step names the call (e.g. "fetch profile") and ends up in the message.
func Upstream(step string, cause error) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: fmt.Sprintf("%s failed", step),
		Cause:   cause,
	}
}
