// Package repository contains the data access layer.  Sentinel errors
// defined here let the service layer distinguish failure scenarios
// without inspecting driver errors: ErrBookingConflict signals that a
// transactional check-and-insert found overlapping rows, while
// ErrNotCancellable reports a cancellation attempted on a booking whose
// date has already passed.
package repository

import "errors"

// ErrEmailExists is returned when registering an email that is already
// taken (MySQL duplicate-key on users.email).
var ErrEmailExists = errors.New("email already exists")

// ErrStadiumNotFound is returned when a stadium lookup by name or id
// matches no active row.
var ErrStadiumNotFound = errors.New("stadium not found")

// ErrBookingNotFound is returned when a booking id does not exist, or
// does not belong to the user the query was scoped to.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBookingConflict is returned by the transactional create when the
// requested range overlaps existing active bookings.  The overlapping
// rows travel alongside it in the Create return value.
var ErrBookingConflict = errors.New("booking time conflict")

// ErrNotCancellable is returned when a cancellation is requested for a
// booking dated strictly before today.
var ErrNotCancellable = errors.New("booking date has passed")
