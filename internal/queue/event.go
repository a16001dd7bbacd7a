// Package queue defines the change-feed events published on the
// message broker and the background consumer that tails them.  The
// feed exists so UIs and downstream tooling can refresh on booking
// activity without polling the primary database; nothing in the
// booking flow depends on it for correctness.
package queue

// Event types carried in BookingEvent.Type.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// EventsQueue is the durable queue all booking events are published to.
const EventsQueue = "booking.events"

// BookingEvent is published whenever a booking is created, confirmed
// or cancelled.  It carries enough for consumers to log, notify or
// refresh a view without querying the primary database.
type BookingEvent struct {
	Type         string  `json:"type"`
	BookingID    uint64  `json:"booking_id"`
	UserID       *uint64 `json:"user_id,omitempty"`
	StadiumName  string  `json:"stadium_name"`
	BookingDate  string  `json:"booking_date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
	RefundAmount float64 `json:"refund_amount,omitempty"`
	OccurredAt   string  `json:"occurred_at"`
}
