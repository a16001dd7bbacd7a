// Package service implements the booking lifecycle on top of the
// ports interfaces: creation behind the conflict check, payment
// evidence handling, cancellation with refund bookkeeping, and the
// admin operations.  Every public method returns a *booking.Error on
// failure so handlers can map error kinds to HTTP statuses without
// inspecting driver errors.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/model"
	"github.com/goalpark/stadium-booking/internal/objectstore"
	"github.com/goalpark/stadium-booking/internal/queue"
	"github.com/goalpark/stadium-booking/internal/repository"
	"github.com/goalpark/stadium-booking/internal/service/ports"
)

// DefaultPaymentMethod is recorded when the requester does not pick
// one; manual bank transfer is the only flow the slip upload supports.
const DefaultPaymentMethod = "bank_transfer"

// Config carries the tunables of the booking flow.
type Config struct {
	// UploadMaxBytes caps payment-slip uploads; zero means the
	// built-in booking.MaxSlipBytes.
	UploadMaxBytes int64
	// StrictConflicts controls the advisory conflict check on read
	// errors.  False (the default) fails open: a failed read reports
	// no conflict and the write-side check remains the authority.
	// True fails the operation instead.
	StrictConflicts bool
}

// BookingService orchestrates the reservation lifecycle.
type BookingService struct {
	bookings ports.BookingStore
	stadiums ports.StadiumStore
	slips    ports.SlipStore
	objects  objectstore.Store
	events   ports.EventPublisher
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings ports.BookingStore,
	stadiums ports.StadiumStore,
	slips ports.SlipStore,
	objects objectstore.Store,
	events ports.EventPublisher,
	cfg Config,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		stadiums: stadiums,
		slips:    slips,
		objects:  objects,
		events:   events,
		cfg:      cfg,
		log:      log.With().Str("component", "booking-service").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBookingRequest is the canonical creation input.  Times use
// "HH:MM", the date "YYYY-MM-DD"; older clients sending
// time_from/time_to are normalized to these fields at the handler
// boundary.
type CreateBookingRequest struct {
	UserID        *uint64
	StadiumName   string
	BookerName    string
	BookerPhone   *string
	BookerEmail   *string
	Date          string
	StartTime     string
	EndTime       string
	PaymentMethod string
	Notes         *string
}

type parsedRange struct {
	date       time.Time
	start, end booking.TimeOfDay
}

func parseRange(dateStr, startStr, endStr string) (parsedRange, *booking.Error) {
	var pr parsedRange
	date, err := time.Parse(model.DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return pr, booking.Validationf("invalid booking date %q, expected YYYY-MM-DD", dateStr)
	}
	start, err := booking.ParseTimeOfDay(startStr)
	if err != nil {
		return pr, booking.Validationf("invalid start time %q, expected HH:MM", startStr)
	}
	end, err := booking.ParseTimeOfDay(endStr)
	if err != nil {
		return pr, booking.Validationf("invalid end time %q, expected HH:MM", endStr)
	}
	if start >= end {
		return pr, booking.Validationf("start time must be before end time")
	}
	pr.date, pr.start, pr.end = date, start, end
	return pr, nil
}

// CheckConflict runs the advisory overlap check the wizard calls
// before its final step.  In the default permissive mode a failed read
// reports no conflict and the error is only logged; the transactional
// check in Create still guards the write.  Strict mode surfaces the
// read failure instead.
func (s *BookingService) CheckConflict(ctx context.Context, stadium, dateStr, startStr, endStr string) (*booking.ConflictReport, error) {
	if strings.TrimSpace(stadium) == "" {
		return nil, booking.Validationf("stadium name is required")
	}
	pr, verr := parseRange(dateStr, startStr, endStr)
	if verr != nil {
		return nil, verr
	}
	conflicts, err := s.bookings.FindConflicts(ctx, stadium, pr.date, pr.start, pr.end)
	if err != nil {
		if s.cfg.StrictConflicts {
			return nil, booking.Unknownf(err, "conflict check failed")
		}
		s.log.Error().Err(err).Str("stadium", stadium).Str("date", dateStr).
			Msg("conflict check read failed; failing open")
		return &booking.ConflictReport{HasConflict: false, Conflicts: []model.Booking{}}, nil
	}
	return &booking.ConflictReport{HasConflict: len(conflicts) > 0, Conflicts: conflicts}, nil
}

// Create validates the request, checks the slot, resolves the stadium
// snapshot and price, and writes the booking in pending_payment.  On
// overlap it fails with a conflict error carrying the colliding rows
// and writes nothing.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*model.Booking, error) {
	if strings.TrimSpace(req.StadiumName) == "" {
		return nil, booking.Validationf("stadium name is required")
	}
	if strings.TrimSpace(req.BookerName) == "" {
		return nil, booking.Validationf("booker name is required")
	}
	pr, verr := parseRange(req.Date, req.StartTime, req.EndTime)
	if verr != nil {
		return nil, verr
	}

	stadium, err := s.stadiums.GetActiveByName(ctx, req.StadiumName)
	if err != nil {
		if errors.Is(err, repository.ErrStadiumNotFound) {
			return nil, booking.NotFoundf("stadium %q not found", req.StadiumName)
		}
		return nil, booking.Unknownf(err, "stadium lookup failed")
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		method = DefaultPaymentMethod
	}
	hours := booking.Hours(pr.start, pr.end)
	b := &model.Booking{
		UserID:         req.UserID,
		StadiumName:    stadium.Name,
		StadiumAddress: stadium.Address,
		BookerName:     strings.TrimSpace(req.BookerName),
		BookerPhone:    req.BookerPhone,
		BookerEmail:    req.BookerEmail,
		BookingDate:    pr.date,
		StartTime:      pr.start.String(),
		EndTime:        pr.end.String(),
		Duration:       hours,
		PricePerHour:   stadium.PricePerHour,
		TotalPrice:     stadium.PricePerHour * hours,
		PaymentMethod:  method,
		Notes:          req.Notes,
	}
	conflicts, err := s.bookings.Create(ctx, b)
	if err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, booking.Conflict("the requested time range is already booked", conflicts)
		}
		return nil, booking.Unknownf(err, "create booking failed")
	}

	s.publish(ctx, queue.BookingEvent{
		Type:        queue.EventBookingCreated,
		BookingID:   b.ID,
		UserID:      b.UserID,
		StadiumName: b.StadiumName,
		BookingDate: b.BookingDate.Format(model.DateLayout),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		OccurredAt:  s.now().Format(time.RFC3339),
	})
	s.log.Info().Uint64("booking_id", b.ID).Str("stadium", b.StadiumName).
		Str("date", b.BookingDate.Format(model.DateLayout)).Msg("booking created")
	return b, nil
}

// AttachPaymentEvidence validates and stores a payment slip, records
// its metadata row, and confirms the booking.  Side effects run in a
// fixed order — object write, metadata row, booking update — and any
// failure aborts the remainder.  A failure after the object write
// leaves an orphan object (or an orphan metadata row); those are
// logged loudly for reconciliation, never silently retried.
func (s *BookingService) AttachPaymentEvidence(ctx context.Context, bookingID uint64, scopeUser *uint64, up *booking.SlipUpload) (*model.Booking, error) {
	b, err := s.loadScoped(ctx, bookingID, scopeUser)
	if err != nil {
		return nil, err
	}
	if verr := booking.ValidateSlip(up, s.cfg.UploadMaxBytes); verr != nil {
		return nil, verr
	}

	now := s.now()
	objectName := booking.SlipObjectName(b.ID, up.Filename, now)
	storedPath, err := s.objects.Put(ctx, objectName, up.Content, up.Size)
	if err != nil {
		return nil, booking.Storage("storing the slip file failed", err)
	}

	verifiedBy := model.VerifiedByAuto
	slip := &model.PaymentSlip{
		BookingID:          b.ID,
		FileName:           objectName,
		FilePath:           storedPath,
		FileSize:           up.Size,
		FileType:           up.ContentType,
		VerificationStatus: model.SlipVerified,
		VerifiedBy:         &verifiedBy,
		VerifiedAt:         &now,
	}
	if err := s.slips.Insert(ctx, slip); err != nil {
		// Best-effort cleanup of the orphan object; if that also fails
		// the log line is the reconciliation trail.
		if delErr := s.objects.Delete(ctx, objectName); delErr != nil {
			s.log.Error().Err(delErr).Str("object", storedPath).Msg("orphan slip object cleanup failed")
		}
		s.log.Error().Err(err).Uint64("booking_id", b.ID).Str("object", storedPath).
			Msg("slip metadata insert failed after object write")
		return nil, booking.Storage("recording the slip failed", err)
	}

	updated, err := s.bookings.Confirm(ctx, b.ID, s.objects.PublicURL(objectName), objectName)
	if err != nil {
		s.log.Error().Err(err).Uint64("booking_id", b.ID).Uint64("slip_id", slip.ID).
			Msg("booking confirm failed after slip write; booking needs reconciliation")
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, booking.NotFoundf("booking %d not found", b.ID)
		}
		return nil, booking.Storage("updating the booking failed", err)
	}

	s.publish(ctx, queue.BookingEvent{
		Type:        queue.EventBookingConfirmed,
		BookingID:   updated.ID,
		UserID:      updated.UserID,
		StadiumName: updated.StadiumName,
		BookingDate: updated.BookingDate.Format(model.DateLayout),
		StartTime:   updated.StartTime,
		EndTime:     updated.EndTime,
		TotalPrice:  updated.TotalPrice,
		Status:      updated.Status,
		OccurredAt:  now.Format(time.RFC3339),
	})
	s.log.Info().Uint64("booking_id", updated.ID).Str("slip", objectName).Msg("payment slip accepted")
	return updated, nil
}

// loadScoped fetches a booking, restricted to the owner when scopeUser
// is set.  Scoped misses and true misses both map to not found so ids
// cannot be probed.
func (s *BookingService) loadScoped(ctx context.Context, id uint64, scopeUser *uint64) (*model.Booking, error) {
	var (
		b   *model.Booking
		err error
	)
	if scopeUser != nil {
		b, err = s.bookings.GetByIDForUser(ctx, id, *scopeUser)
	} else {
		b, err = s.bookings.GetByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, booking.NotFoundf("booking %d not found", id)
		}
		return nil, booking.Unknownf(err, "load booking failed")
	}
	return b, nil
}

// Cancel archives and removes a booking.  When requestedBy is non-nil
// the booking must belong to that user; admins pass nil to cancel any
// booking.  A second cancel of the same id reports not found because
// the row is already gone.
func (s *BookingService) Cancel(ctx context.Context, id uint64, requestedBy *uint64, reason string) (*model.CancelledBooking, error) {
	if strings.TrimSpace(reason) == "" {
		reason = "cancelled by user"
	}
	arch, err := s.bookings.Cancel(ctx, id, requestedBy, requestedBy, reason, s.now())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotFound):
			return nil, booking.NotFoundf("booking %d not found", id)
		case errors.Is(err, repository.ErrNotCancellable):
			return nil, booking.Validationf("the booking date has passed and can no longer be cancelled")
		default:
			// The archive-and-delete pair rolls back together; an error
			// here means neither side landed, but it still needs eyes.
			s.log.Error().Err(err).Uint64("booking_id", id).Msg("cancellation failed")
			return nil, booking.Unknownf(err, "cancel booking failed")
		}
	}

	s.publish(ctx, queue.BookingEvent{
		Type:         queue.EventBookingCancelled,
		BookingID:    arch.OriginalBookingID,
		UserID:       arch.UserID,
		StadiumName:  arch.StadiumName,
		BookingDate:  arch.BookingDate.Format(model.DateLayout),
		StartTime:    arch.StartTime,
		EndTime:      arch.EndTime,
		TotalPrice:   arch.TotalPrice,
		Status:       model.StatusCancelled,
		RefundAmount: arch.RefundAmount,
		OccurredAt:   s.now().Format(time.RFC3339),
	})
	s.log.Info().Uint64("booking_id", arch.OriginalBookingID).Float64("refund", arch.RefundAmount).
		Msg("booking cancelled and archived")
	return arch, nil
}

// Delete is the administrative hard delete: existence-checked, no
// archive, slip metadata removed with the row.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return booking.NotFoundf("booking %d not found", id)
		}
		return booking.Unknownf(err, "delete booking failed")
	}
	s.log.Info().Uint64("booking_id", id).Msg("booking hard-deleted")
	return nil
}

// Get returns one booking without owner scoping, for admin use.
func (s *BookingService) Get(ctx context.Context, id uint64) (*model.Booking, error) {
	return s.loadScoped(ctx, id, nil)
}

// GetForUser returns one booking scoped to its owner.
func (s *BookingService) GetForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	b, err := s.bookings.GetByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, booking.NotFoundf("booking %d not found", id)
		}
		return nil, booking.Unknownf(err, "load booking failed")
	}
	return b, nil
}

// ListForUser returns the user's bookings for the history panel.
func (s *BookingService) ListForUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	out, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, booking.Unknownf(err, "list bookings failed")
	}
	return out, nil
}

// ListCancelledForUser returns the user's cancellation archive.
func (s *BookingService) ListCancelledForUser(ctx context.Context, userID uint64) ([]model.CancelledBooking, error) {
	out, err := s.bookings.ListCancelledByUser(ctx, userID)
	if err != nil {
		return nil, booking.Unknownf(err, "list cancelled bookings failed")
	}
	return out, nil
}

// ListAll returns bookings for the admin panel with optional filters.
func (s *BookingService) ListAll(ctx context.Context, f repository.ListFilter) ([]model.Booking, error) {
	out, err := s.bookings.ListAll(ctx, f)
	if err != nil {
		return nil, booking.Unknownf(err, "list bookings failed")
	}
	return out, nil
}

// Availability returns the active bookings of a stadium on a date so
// the wizard can display taken slots.
func (s *BookingService) Availability(ctx context.Context, stadium, dateStr string) ([]model.Booking, error) {
	if strings.TrimSpace(stadium) == "" {
		return nil, booking.Validationf("stadium name is required")
	}
	date, err := time.Parse(model.DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return nil, booking.Validationf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}
	out, err := s.bookings.ListForDate(ctx, stadium, date)
	if err != nil {
		return nil, booking.Unknownf(err, "availability lookup failed")
	}
	return out, nil
}

// publish sends a change-feed event, logging and swallowing failures:
// the feed is a UI convenience, never a correctness dependency.
func (s *BookingService) publish(ctx context.Context, ev queue.BookingEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warn().Err(err).Str("event", ev.Type).Uint64("booking_id", ev.BookingID).
			Msg("event publish failed")
	}
}
