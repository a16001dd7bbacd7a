package model

import "time"

// Refund status values on a cancellation archive row.  Rows are created
// with RefundPending; moving them through processing/completed/rejected
// is an administrative concern outside the booking flow, which never
// mutates an archive after writing it.
const (
	RefundPending    = "pending"
	RefundProcessing = "processing"
	RefundCompleted  = "completed"
	RefundRejected   = "rejected"
)

// CancelledBooking is the snapshot written when a booking is cancelled.
// Cancellation is delete-and-archive: the bookings row is removed and
// exactly one cancelled_bookings row referencing its id is created, so
// a booking id never has both an active row and an archive at once.
//
// The snapshot carries all booking fields at the moment of
// cancellation plus the cancellation bookkeeping: who cancelled, the
// free-text reason, and the refund state (amount initialised to the
// booking's total price, status to pending).
type CancelledBooking struct {
	ID                 uint64     // cancelled_bookings.id
	OriginalBookingID  uint64     // cancelled_bookings.original_booking_id
	UserID             *uint64    // cancelled_bookings.user_id (nullable)
	StadiumName        string     // cancelled_bookings.stadium_name
	StadiumAddress     string     // cancelled_bookings.stadium_address
	BookerName         string     // cancelled_bookings.booker_name
	BookerPhone        *string    // cancelled_bookings.booker_phone (nullable)
	BookerEmail        *string    // cancelled_bookings.booker_email (nullable)
	BookingDate        time.Time  // cancelled_bookings.booking_date
	StartTime          string     // cancelled_bookings.start_time
	EndTime            string     // cancelled_bookings.end_time
	Duration           float64    // cancelled_bookings.duration
	PricePerHour       float64    // cancelled_bookings.price_per_hour
	TotalPrice         float64    // cancelled_bookings.total_price
	SlipPath           *string    // cancelled_bookings.payment_slip_url (nullable)
	SlipFilename       *string    // cancelled_bookings.payment_slip_filename (nullable)
	Notes              *string    // cancelled_bookings.notes (nullable)
	CancelledBy        *uint64    // cancelled_bookings.cancelled_by (nullable)
	CancellationReason string     // cancelled_bookings.cancellation_reason
	RefundStatus       string     // cancelled_bookings.refund_status
	RefundAmount       float64    // cancelled_bookings.refund_amount
	CancelledAt        time.Time  // cancelled_bookings.cancelled_at
}
