package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the response pipeline.
type Kind string

const (
	KindMissingCredentials    Kind = "missing_credentials"
	KindTokenInvalid          Kind = "token_invalid"
	KindTokenExpired          Kind = "token_expired"
	KindUserNotFound          Kind = "user_not_found"
	KindStaleCredentials      Kind = "stale_credentials"
	KindInvalidCredentials    Kind = "invalid_credentials"
	KindInvalidOrExpiredToken Kind = "invalid_or_expired_token"
	KindDeliveryFailed        Kind = "delivery_failed"

	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

var defaultStatus = map[Kind]int{
	KindMissingCredentials:    http.StatusUnauthorized,
	KindTokenInvalid:          http.StatusUnauthorized,
	KindTokenExpired:          http.StatusUnauthorized,
	KindUserNotFound:          http.StatusNotFound,
	KindStaleCredentials:      http.StatusUnauthorized,
	KindInvalidCredentials:    http.StatusUnauthorized,
	KindInvalidOrExpiredToken: http.StatusBadRequest,
	KindDeliveryFailed:        http.StatusBadRequest,
	KindValidation:            http.StatusBadRequest,
	KindConflict:              http.StatusConflict,
	KindForbidden:             http.StatusForbidden,
	KindNotFound:              http.StatusNotFound,
	KindInternal:              http.StatusInternalServerError,
}

// Error is an error carrying a kind, an HTTP status and a client-facing message.
// Operational errors are expected failures whose message is safe to show to clients.
type Error struct {
	Kind        Kind
	Status      int
	Message     string
	Operational bool
	Details     any
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, apperror.New(KindX, "")) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an operational error with the default status for kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Status: StatusOf(kind), Message: message, Operational: kind != KindInternal}
}

// WithStatus returns a copy of e using status instead of the kind default.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// WithDetails returns a copy of e carrying client-facing details (e.g. field errors).
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// Wrap attaches a cause to an operational error.
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

// Internal wraps an unexpected failure; its cause is never shown to clients outside development.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "something went wrong", Err: err}
}

// StatusOf returns the default HTTP status of kind.
func StatusOf(kind Kind) int {
	if s, ok := defaultStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// From converts any error into an *Error; unknown errors become Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	return From(err).Kind
}
