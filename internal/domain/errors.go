package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Consumers branch on the kind, not
// on error text.
type Kind int

const (
	// KindInvalidInput marks a malformed or missing parameter.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks a reference to an entity that does not resolve.
	KindNotFound
	// KindForbidden marks a failed ownership check.
	KindForbidden
	// KindUnknownOperation marks an unrecognized dispatcher operation.
	KindUnknownOperation
	// KindStore marks a data-access collaborator failure.
	KindStore
)

// Error is the unified domain error. It carries a kind for matching and
// an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is matches any error of the same kind, so sentinels below work with
// errors.Is regardless of the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden        = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrUnknownOperation = &Error{Kind: KindUnknownOperation, Message: "unknown operation"}
	ErrStore            = &Error{Kind: KindStore, Message: "store error"}
)

// InvalidInputf builds an invalid-input error with a formatted message.
func InvalidInputf(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds a forbidden error with a formatted message.
func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// UnknownOperationf builds an unknown-operation error.
func UnknownOperationf(format string, args ...any) error {
	return &Error{Kind: KindUnknownOperation, Message: fmt.Sprintf(format, args...)}
}

// StoreErr wraps a collaborator failure. The cause is preserved for
// errors.Is / errors.As.
func StoreErr(msg string, cause error) error {
	return &Error{Kind: KindStore, Message: msg, cause: cause}
}
