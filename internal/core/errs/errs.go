// Package errs defines the stable error codes surfaced by fleetdesk operations.
// Every rejected operation carries one of these codes plus a human-readable reason.
package errs

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	CodeNotFound          Code = "NOT_FOUND"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeResourceConflict  Code = "RESOURCE_CONFLICT"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeInternal          Code = "INTERNAL"
)

// Error is a coded error. Reason is shown to users as-is.
type Error struct {
	Code   Code
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Reason == "" || t.Reason == e.Reason)
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrInvalidTransition = &Error{Code: CodeInvalidTransition}
	ErrResourceConflict  = &Error{Code: CodeResourceConflict}
	ErrInvalidInput      = &Error{Code: CodeInvalidInput}
)

// NotFound reports an unknown entity id.
func NotFound(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Reason: fmt.Sprintf("%s %s not found", entity, id)}
}

// InvalidTransition reports an operation whose precondition is not met.
func InvalidTransition(reason string) *Error {
	return &Error{Code: CodeInvalidTransition, Reason: reason}
}

// ResourceConflict reports a vehicle that is already held.
func ResourceConflict(reason string) *Error {
	return &Error{Code: CodeResourceConflict, Reason: reason}
}

// InvalidInput reports a malformed request.
func InvalidInput(reason string) *Error {
	return &Error{Code: CodeInvalidInput, Reason: reason}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ReasonOf returns the user-facing reason for err, or "" for nil.
func ReasonOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return err.Error()
}
