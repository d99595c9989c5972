// Package errors classifies failures into a small set of codes the UI and CLI
// act on: validation problems stay on the form, unauthorized sends the operator
// to login, everything else becomes a flash message.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes an AppError.
type ErrorCode string

// Error codes. Each shop API status maps onto exactly one of them.
const (
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
	ErrCodeUpstream     ErrorCode = "upstream"
)

// AppError carries an operator-facing message alongside the failure that caused it.
type AppError struct {
	Code ErrorCode
	// Message is safe to show to the operator.
	Message string
	// Status is the shop API response status, 0 when the failure was local.
	Status int
	Cause  error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Validation reports input rejected before it reached the shop API.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Upstream wraps a shop API failure that has no more specific code.
func Upstream(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeUpstream, Message: message, Cause: cause}
}

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err carries ErrCodeValidation.
func IsValidation(err error) bool { return GetCode(err) == ErrCodeValidation }

// IsUnauthorized reports whether err carries ErrCodeUnauthorized.
func IsUnauthorized(err error) bool { return GetCode(err) == ErrCodeUnauthorized }

// IsUpstream reports whether err carries ErrCodeUpstream.
func IsUpstream(err error) bool { return GetCode(err) == ErrCodeUpstream }
