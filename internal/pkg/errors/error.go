package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors. Services wrap these with a
// human-readable message naming the offending entity; the response
// package maps the sentinel to an HTTP status.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource not available")
	ErrForbidden    = errors.New("access denied")
	ErrInvalidState = errors.New("invalid state transition")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrRateLimited  = errors.New("too many requests")
	ErrInternal     = errors.New("internal server error")
)

// E wraps a sentinel kind with a formatted message so that
// errors.Is(err, kind) keeps working while the message carries the
// identifying fields (model and plate rather than a raw id).
func E(kind error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, kind)...)
}

// Validationf builds an ErrValidation with context.
func Validationf(format string, args ...interface{}) error {
	return E(ErrValidation, format, args...)
}

// NotFoundf builds an ErrNotFound with context.
func NotFoundf(format string, args ...interface{}) error {
	return E(ErrNotFound, format, args...)
}

// Conflictf builds an ErrConflict with context.
func Conflictf(format string, args ...interface{}) error {
	return E(ErrConflict, format, args...)
}

// Forbiddenf builds an ErrForbidden with context.
func Forbiddenf(format string, args ...interface{}) error {
	return E(ErrForbidden, format, args...)
}

// InvalidStatef builds an ErrInvalidState with context.
func InvalidStatef(format string, args ...interface{}) error {
	return E(ErrInvalidState, format, args...)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
