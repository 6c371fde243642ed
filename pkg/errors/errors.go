package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthenticated
	ErrForbidden
	ErrInternal
)

// Fixed boundary messages. Clients match on these strings.
const (
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgForbidden        = "You do not have permission to perform this action."
	MsgNotFound         = "Not found."
	MsgServerError      = "A server error occurred."
	MsgNoURLMatch       = "Invalid hyperlink - No URL match."
	MsgBlank            = "This field may not be blank."
)

// AppError represents an application error. Validation errors additionally
// carry one message list per offending field.
type AppError struct {
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NotFound builds the 404 error for a missing or scoped-out resource.
func NotFound(err error) *AppError {
	return &AppError{Code: ErrNotFound, Message: MsgNotFound, Err: err}
}

// Unauthenticated builds the 401 error for requests with no valid identity.
func Unauthenticated() *AppError {
	return &AppError{Code: ErrUnauthenticated, Message: MsgNotAuthenticated}
}

// Forbidden builds the 403 error for an authenticated actor whose role
// matches no disjunct.
func Forbidden() *AppError {
	return &AppError{Code: ErrForbidden, Message: MsgForbidden}
}

// Internal wraps an unexpected failure; fatal to the request only.
func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: MsgServerError, Err: err}
}

// Validation builds a 400 error from per-field messages.
func Validation(fields map[string][]string) *AppError {
	return &AppError{Code: ErrValidation, Message: "validation failed", Fields: fields}
}

// FieldError builds a 400 error for a single offending field.
func FieldError(field, message string) *AppError {
	return Validation(map[string][]string{field: {message}})
}

// FieldErrors accumulates per-field validation messages and converts to an
// AppError once complete.
type FieldErrors map[string][]string

// Add appends a message for a field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Err returns a validation AppError, or nil if no field failed.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return Validation(f)
}

// AsAppError extracts an *AppError from err, if there is one in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
