package repository

import (
	"context"
	"database/sql"

	"github.com/goalpark/stadium-booking/internal/model"
)

// PaymentSlipRepo persists slip metadata rows linking a booking to its
// stored evidence object.
type PaymentSlipRepo struct {
	db *sql.DB
}

func NewPaymentSlipRepo(db *sql.DB) *PaymentSlipRepo { return &PaymentSlipRepo{db: db} }

// Insert writes a slip metadata row and populates the generated ID.
// The current flow inserts rows already verified (see
// model.VerifiedByAuto); a manual-review deployment would insert them
// as pending instead.
func (r *PaymentSlipRepo) Insert(ctx context.Context, s *model.PaymentSlip) error {
	const q = `INSERT INTO payment_slips
		(booking_id, file_name, file_path, file_size, file_type, verification_status, verified_by, verified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var verifiedBy any
	if s.VerifiedBy != nil {
		verifiedBy = *s.VerifiedBy
	}
	var verifiedAt any
	if s.VerifiedAt != nil {
		verifiedAt = *s.VerifiedAt
	}
	res, err := r.db.ExecContext(ctx, q, s.BookingID, s.FileName, s.FilePath, s.FileSize, s.FileType,
		s.VerificationStatus, verifiedBy, verifiedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListByBooking returns the slip rows of one booking, oldest first,
// so resubmission history reads top to bottom.
func (r *PaymentSlipRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.PaymentSlip, error) {
	const q = `SELECT id, booking_id, file_name, file_path, file_size, file_type,
	                  verification_status, verified_by, verified_at, created_at
	           FROM payment_slips WHERE booking_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PaymentSlip, 0)
	for rows.Next() {
		var (
			s          model.PaymentSlip
			verifiedBy sql.NullString
			verifiedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.BookingID, &s.FileName, &s.FilePath, &s.FileSize, &s.FileType,
			&s.VerificationStatus, &verifiedBy, &verifiedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		if verifiedBy.Valid {
			v := verifiedBy.String
			s.VerifiedBy = &v
		}
		if verifiedAt.Valid {
			t := verifiedAt.Time
			s.VerifiedAt = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
