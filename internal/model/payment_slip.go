package model

import "time"

// Payment slip verification states.  The column exists to support a
// manual review queue, but the current flow marks slips verified
// immediately on upload (see VerifiedByAuto).
const (
	SlipVerified = "verified"
	SlipPendingReview = "pending"
	SlipRejected  = "rejected"
)

// VerifiedByAuto is recorded in verified_by when a slip is accepted by
// the automatic flow rather than by a human reviewer.
const VerifiedByAuto = "auto_system"

// PaymentSlip links a booking to its uploaded payment evidence stored
// in the object store.  One booking may accumulate several rows when a
// slip is resubmitted; the booking itself references only the latest
// accepted object.
type PaymentSlip struct {
	ID                 uint64     // payment_slips.id
	BookingID          uint64     // payment_slips.booking_id
	FileName           string     // payment_slips.file_name
	FilePath           string     // payment_slips.file_path
	FileSize           int64      // payment_slips.file_size
	FileType           string     // payment_slips.file_type
	VerificationStatus string     // payment_slips.verification_status
	VerifiedBy         *string    // payment_slips.verified_by (nullable)
	VerifiedAt         *time.Time // payment_slips.verified_at (nullable)
	CreatedAt          time.Time  // payment_slips.created_at
}
