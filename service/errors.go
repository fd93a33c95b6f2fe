package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure so handlers can map it to a
// transport status without inspecting messages.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindInvalidState      ErrorKind = "invalid_state"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindAlreadyProcessed  ErrorKind = "already_processed"
	KindStorage           ErrorKind = "storage"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func ErrValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func ErrInvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func ErrInsufficientFunds(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientFunds, Message: fmt.Sprintf(format, args...)}
}

func ErrAlreadyProcessed(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyProcessed, Message: fmt.Sprintf(format, args...)}
}

func ErrStorage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf extracts the kind of a service error; unknown errors count as
// storage failures so they never leak internals to the caller.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}
