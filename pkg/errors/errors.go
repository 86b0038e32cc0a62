package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness. Field, Value and
// Details carry validation context so callers can name the offending input.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Field   string      `json:"field,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Details string      `json:"details,omitempty"`
	Fields  []string    `json:"fields,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation       = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrConstraint       = New("CONSTRAINT_ERROR", http.StatusBadRequest, "constraint violated")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrStoreUnavailable = New("CONNECTION_ERROR", http.StatusInternalServerError, "store unavailable")
	ErrPoolExhausted    = New("CONNECTION_ERROR", http.StatusInternalServerError, "pool exhausted")
	ErrCacheMiss        = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Validation builds a validation error naming the missing/invalid fields.
func Validation(message string, fields ...string) *Error {
	return &Error{
		Code:    ErrValidation.Code,
		Status:  ErrValidation.Status,
		Message: message,
		Fields:  fields,
	}
}

// ValidationField builds a validation error for a single field and its value.
func ValidationField(message, field string, value interface{}) *Error {
	return &Error{
		Code:    ErrValidation.Code,
		Status:  ErrValidation.Status,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// NotFound builds a not-found error for the given entity.
func NotFound(message, field string, value interface{}) *Error {
	return &Error{
		Code:    ErrNotFound.Code,
		Status:  ErrNotFound.Status,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// IsConnection reports whether the error belongs to the connection taxonomy.
func IsConnection(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrStoreUnavailable.Code
	}
	return false
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
