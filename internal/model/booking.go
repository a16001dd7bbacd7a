package model

import "time"

// Booking status values.  A booking starts in pending_payment, becomes
// confirmed once a payment slip is accepted, and leaves the bookings
// table entirely when cancelled (the snapshot lives in
// cancelled_bookings, see CancelledBooking).
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCancelled      = "cancelled"
)

// Payment status values tracked alongside the booking status.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// DateLayout is the calendar-date format used for booking_date columns
// and date parameters ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Booking records a reservation of a stadium for a time range on a
// calendar date.  UserID is nullable because guest bookings are
// allowed; such rows are owned by nobody and identified to the booker
// through the contact fields.  Start and end times are stored as
// "HH:MM" strings mirroring the TIME columns; time-of-day arithmetic
// lives in the booking package.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – account that made the booking (nil for guests).
//  StadiumName    – name of the booked stadium (conflict join key).
//  StadiumAddress – address snapshot taken at creation time.
//  BookerName     – contact name of the requester.
//  BookerPhone    – optional contact phone.
//  BookerEmail    – optional contact email.
//  BookingDate    – calendar date of the booking (midnight UTC).
//  StartTime      – start of the reserved range, "HH:MM".
//  EndTime        – end of the reserved range, "HH:MM".
//  Duration       – derived length in fractional hours.
//  PricePerHour   – stadium price snapshot at creation time.
//  TotalPrice     – Duration * PricePerHour.
//  PaymentMethod  – how the booker intends to pay (bank_transfer, ...).
//  Notes          – optional free text.
//  Status         – pending_payment or confirmed.
//  PaymentStatus  – pending or paid.
//  SlipPath       – object-store path of the accepted payment slip.
//  SlipFilename   – original-style filename of the slip object.
//  ConfirmedAt    – when the booking was confirmed (nil until then).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Booking struct {
	ID             uint64     // bookings.id
	UserID         *uint64    // bookings.user_id (nullable)
	StadiumName    string     // bookings.stadium_name
	StadiumAddress string     // bookings.stadium_address
	BookerName     string     // bookings.booker_name
	BookerPhone    *string    // bookings.booker_phone (nullable)
	BookerEmail    *string    // bookings.booker_email (nullable)
	BookingDate    time.Time  // bookings.booking_date
	StartTime      string     // bookings.start_time
	EndTime        string     // bookings.end_time
	Duration       float64    // bookings.duration
	PricePerHour   float64    // bookings.price_per_hour
	TotalPrice     float64    // bookings.total_price
	PaymentMethod  string     // bookings.payment_method
	Notes          *string    // bookings.notes (nullable)
	Status         string     // bookings.status
	PaymentStatus  string     // bookings.payment_status
	SlipPath       *string    // bookings.payment_slip_url (nullable)
	SlipFilename   *string    // bookings.payment_slip_filename (nullable)
	ConfirmedAt    *time.Time // bookings.confirmed_at (nullable)
	CreatedAt      time.Time  // bookings.created_at
	UpdatedAt      time.Time  // bookings.updated_at
}
