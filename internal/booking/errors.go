package booking

import (
	"errors"
	"fmt"

	"github.com/goalpark/stadium-booking/internal/model"
)

// Kind is the machine-readable classification of a failed booking
// operation.  Handlers map kinds to HTTP statuses and clients map them
// to localized messages; the Message field is a plain-English fallback.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindNotFound   Kind = "not_found"
	KindStorage    Kind = "storage_error"
	KindUnknown    Kind = "unknown"
)

// Error is the tagged failure returned by every service operation.
// Service methods never panic and never let raw repository or driver
// errors cross the boundary: everything is wrapped into one of these.
type Error struct {
	Kind      Kind
	Message   string
	Conflicts []model.Booking // populated only for KindConflict
	Err       error           // underlying cause, when any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Validationf builds a validation error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error from a format string.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a conflict error carrying the overlapping bookings.
func Conflict(msg string, conflicts []model.Booking) *Error {
	return &Error{Kind: KindConflict, Message: msg, Conflicts: conflicts}
}

// Storage wraps a failed storage side effect.
func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// Unknownf wraps an unexpected backend failure.
func Unknownf(err error, format string, args ...any) *Error {
	return &Error{Kind: KindUnknown, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsError extracts a *Error from err, or wraps err as KindUnknown so
// callers can always rely on a tagged result.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return be
	}
	return &Error{Kind: KindUnknown, Message: "unexpected error", Err: err}
}
