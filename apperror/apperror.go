// Package apperror defines the error kinds used across the application and
// their single mapping to HTTP status codes
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Unauthenticated covers missing or invalid session credentials
	Unauthenticated Kind = iota
	// Forbidden covers authenticated requests with insufficient privileges
	Forbidden
	// NotFound covers missing users, tokens or records
	NotFound
	// BadRequest covers rejected input: expired tokens, duplicate emails,
	// wrong passwords, unverified accounts, out-of-range pagination
	BadRequest
	// Internal covers datastore and mail infrastructure failures. The
	// underlying error is logged, never returned to the client
	Internal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error kind. This is the only
// place where kinds and status codes meet.
func (e *Error) Status() int {
	switch e.Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case BadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewUnauthenticated(message string) *Error {
	return New(Unauthenticated, message, nil)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message, nil)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message, nil)
}

func NewBadRequest(message string) *Error {
	return New(BadRequest, message, nil)
}

func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// FromError converts err to an *Error, wrapping unknown errors as Internal
// with a user-safe message
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal("Something went wrong, please try again.", err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
