// Package ports declares the narrow interfaces the service layer
// depends on.  The repository and objectstore packages satisfy them in
// production; tests substitute mocks.
package ports

import (
	"context"
	"time"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/model"
	"github.com/goalpark/stadium-booking/internal/repository"
)

// BookingStore is the persistence contract of the booking lifecycle.
// Create and Cancel are transactional on the implementation side:
// Create re-checks the slot inside its insert transaction, Cancel
// archives and deletes as one unit.
type BookingStore interface {
	FindConflicts(ctx context.Context, stadium string, date time.Time, start, end booking.TimeOfDay) ([]model.Booking, error)
	Create(ctx context.Context, b *model.Booking) ([]model.Booking, error)
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	ListForDate(ctx context.Context, stadium string, date time.Time) ([]model.Booking, error)
	ListAll(ctx context.Context, f repository.ListFilter) ([]model.Booking, error)
	Confirm(ctx context.Context, id uint64, slipPath, slipFilename string) (*model.Booking, error)
	Cancel(ctx context.Context, id uint64, scopeUser, cancelledBy *uint64, reason string, now time.Time) (*model.CancelledBooking, error)
	Delete(ctx context.Context, id uint64) error
	ListCancelledByUser(ctx context.Context, userID uint64) ([]model.CancelledBooking, error)
}
