package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; every error built by this package
// unwraps to exactly one of them.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error is a kinded error with a human-readable message.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return newf(ErrValidation, format, args...)
}

// NotFoundf builds a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

// Conflictf builds a Conflict error with a formatted message.
func Conflictf(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}
