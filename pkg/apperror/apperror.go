// Package apperror defines the tagged failures every request can end with and
// their HTTP status codes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags a failure with the class the transport layer maps to a status code.
type Kind string

const (
	KindBadInput          Kind = "bad_input"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindUnauthorized      Kind = "unauthorized"
	KindInvalidCredential Kind = "invalid_credential"
)

// Error is a terminal, request-scoped failure carrying a human readable message.
type Error struct {
	Kind    Kind
	Message string

	// identifierRequired marks the BadInput raised when no owner can be determined at all.
	identifierRequired bool
}

func (e *Error) Error() string { return e.Message }

// IsIdentifierRequired reports whether the error is the "no owner could be determined" flavour of BadInput.
func (e *Error) IsIdentifierRequired() bool { return e.identifierRequired }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadInput creates a validation failure.
func BadInput(format string, args ...interface{}) *Error {
	return newError(KindBadInput, format, args...)
}

// IdentifierRequired creates the BadInput raised when neither a session nor a supplied identifier exists.
func IdentifierRequired(format string, args ...interface{}) *Error {
	e := newError(KindBadInput, format, args...)
	e.identifierRequired = true
	return e
}

// NotFound creates a failure for a referenced entity that does not exist.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Forbidden creates an ownership gate denial.
func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

// Unauthorized creates a failure for a request without credentials.
func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

// InvalidCredential creates a failure for a credential that does not verify.
func InvalidCredential(format string, args ...interface{}) *Error {
	return newError(KindInvalidCredential, format, args...)
}

var statusByKind = map[Kind]int{
	KindBadInput:          http.StatusBadRequest,
	KindNotFound:          http.StatusNotFound,
	KindForbidden:         http.StatusForbidden,
	KindUnauthorized:      http.StatusUnauthorized,
	KindInvalidCredential: http.StatusUnauthorized,
}

// StatusCode maps err to its HTTP status. Errors that are not tagged map to 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		if code, ok := statusByKind[appErr.Kind]; ok {
			return code
		}
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
