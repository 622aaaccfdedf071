// internal/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// or is treated as internal.
var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error carries a kind plus a message. Message may be a translation key, in
// which case Args fill its verbs when the response is rendered.
type Error struct {
	Kind    error
	Message string
	Args    []interface{}
	Details interface{}
}

func (e *Error) Error() string {
	if len(e.Args) > 0 {
		return fmt.Sprintf(e.Message, e.Args...)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New builds an error of the given kind with a formatted message.
func New(kind error, message string, args ...interface{}) error {
	return &Error{Kind: kind, Message: message, Args: args}
}

func Validation(message string, details ...interface{}) error {
	e := &Error{Kind: ErrValidation, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func Unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Code is the machine readable code sent in the error envelope.
func Code(err error) string {
	switch Status(err) {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// IsInternal reports whether err carries none of the known kinds.
func IsInternal(err error) bool {
	return err != nil && Status(err) == http.StatusInternalServerError
}

// Details returns the structured details attached to err, if any.
func Details(err error) interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
