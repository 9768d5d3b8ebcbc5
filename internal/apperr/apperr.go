// Package apperr defines the domain error taxonomy and its translation
// to HTTP responses. Handlers never pick status codes themselves; they
// attach an *Error (or anything wrapping one) to the request and the
// translator middleware writes the uniform envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a named category of failure, independent of transport status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidIdentifier
	KindInvalidField
	KindInvalidValue
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindConflict
)

// Status returns the HTTP status the kind translates to.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidIdentifier, KindInvalidField, KindInvalidValue:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Title returns the stable name used in the error envelope.
func (k Kind) Title() string {
	switch k {
	case KindValidation:
		return "ValidationFailed"
	case KindInvalidIdentifier:
		return "InvalidIdentifier"
	case KindInvalidField:
		return "InvalidField"
	case KindInvalidValue:
		return "InvalidValue"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// FieldError is one per-field message inside a ValidationFailed error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Title(), e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Title(), e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error          { return New(KindNotFound, message) }
func Unauthorized(message string) *Error      { return New(KindUnauthorized, message) }
func Unauthenticated(message string) *Error   { return New(KindUnauthenticated, message) }
func InvalidIdentifier(message string) *Error { return New(KindInvalidIdentifier, message) }
func InvalidField(message string) *Error      { return New(KindInvalidField, message) }
func InvalidValue(message string) *Error      { return New(KindInvalidValue, message) }
func Conflict(message string) *Error          { return New(KindConflict, message) }

// Validation builds a ValidationFailed error carrying per-field messages.
func Validation(fields []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "invalid data", Fields: fields}
}

// Internal wraps an unclassified error.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "there is a problem with the server", cause: err}
}

// From extracts the classified error wrapped in err, or classifies it
// as internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
