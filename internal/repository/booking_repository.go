package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/model"
)

// BookingRepo provides CRUD over the bookings and cancelled_bookings
// tables.  The two operations with correctness weight live here, both
// inside transactions:
//
//   - Create re-runs the conflict select FOR UPDATE before inserting,
//     so the non-overlap invariant is enforced at the write, not just
//     in the advisory pre-check the UI runs.
//   - Cancel archives the row into cancelled_bookings and deletes the
//     original as one unit; a failure on either side rolls back both.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, stadium_name, stadium_address, booker_name, booker_phone, booker_email,
	booking_date, start_time, end_time, duration, price_per_hour, total_price, payment_method, notes,
	status, payment_status, payment_slip_url, payment_slip_filename, confirmed_at, created_at, updated_at`

type rowScanner interface{ Scan(...any) error }

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		b           model.Booking
		userID      sql.NullInt64
		phone       sql.NullString
		email       sql.NullString
		notes       sql.NullString
		slipPath    sql.NullString
		slipName    sql.NullString
		confirmedAt sql.NullTime
	)
	err := row.Scan(&b.ID, &userID, &b.StadiumName, &b.StadiumAddress, &b.BookerName, &phone, &email,
		&b.BookingDate, &b.StartTime, &b.EndTime, &b.Duration, &b.PricePerHour, &b.TotalPrice,
		&b.PaymentMethod, &notes, &b.Status, &b.PaymentStatus, &slipPath, &slipName,
		&confirmedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	b.BookerPhone = strPtr(phone)
	b.BookerEmail = strPtr(email)
	b.Notes = strPtr(notes)
	b.SlipPath = strPtr(slipPath)
	b.SlipFilename = strPtr(slipName)
	if confirmedAt.Valid {
		t := confirmedAt.Time
		b.ConfirmedAt = &t
	}
	// TIME columns come back as "HH:MM:SS"; keep the canonical "HH:MM".
	b.StartTime = trimSeconds(b.StartTime)
	b.EndTime = trimSeconds(b.EndTime)
	return &b, nil
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func trimSeconds(t string) string {
	if len(t) == 8 && strings.Count(t, ":") == 2 {
		return t[:5]
	}
	return t
}

// conflictWhere matches active rows of the same stadium and date whose
// half-open range intersects [start, end): existing.start < query.end
// AND existing.end > query.start, so adjacent ranges do not match.
const conflictWhere = `stadium_name = ? AND booking_date = ? AND status <> 'cancelled'
	  AND start_time < ? AND end_time > ?`

// FindConflicts returns every active booking overlapping the requested
// range.  This is the advisory read used before the wizard's final
// step; the authoritative check runs again inside Create.
func (r *BookingRepo) FindConflicts(ctx context.Context, stadium string, date time.Time, start, end booking.TimeOfDay) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE " + conflictWhere + " ORDER BY start_time"
	rows, err := r.db.QueryContext(ctx, q, stadium, date.Format(model.DateLayout), end.String(), start.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]model.Booking, error) {
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Create inserts a booking after re-checking the slot inside the same
// transaction.  The conflict select locks matching rows FOR UPDATE so
// two concurrent creates for the same slot serialize on the database;
// the loser observes the winner's row and backs out.  On conflict the
// overlapping rows are returned together with ErrBookingConflict and
// nothing is written.  On success the record is populated with its
// generated id and DB timestamps.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) ([]model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	q := "SELECT " + bookingColumns + " FROM bookings WHERE " + conflictWhere + " FOR UPDATE"
	rows, err := tx.QueryContext(ctx, q, b.StadiumName, b.BookingDate.Format(model.DateLayout), b.EndTime, b.StartTime)
	if err != nil {
		return nil, err
	}
	conflicts, err := collectBookings(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, ErrBookingConflict
	}

	const ins = `INSERT INTO bookings
		(user_id, stadium_name, stadium_address, booker_name, booker_phone, booker_email,
		 booking_date, start_time, end_time, duration, price_per_hour, total_price,
		 payment_method, notes, status, payment_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		nullU64(b.UserID), b.StadiumName, b.StadiumAddress, b.BookerName, nullStr(b.BookerPhone), nullStr(b.BookerEmail),
		b.BookingDate.Format(model.DateLayout), b.StartTime, b.EndTime, b.Duration, b.PricePerHour, b.TotalPrice,
		b.PaymentMethod, nullStr(b.Notes), model.StatusPendingPayment, model.PaymentPending)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	sel := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	stored, err := scanBooking(tx.QueryRowContext(ctx, sel, uint64(id)))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	*b = *stored
	return nil, nil
}

func nullStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullU64(p *uint64) any {
	if p == nil {
		return nil
	}
	return *p
}

// GetByID fetches one booking regardless of owner.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByIDForUser fetches one booking scoped to its owning user.
// Bookings owned by another user (or by nobody) are reported as not
// found rather than forbidden, so ids cannot be probed.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE id = ? AND user_id = ?"
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListByUser returns the user's bookings newest first, for the
// history panel.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListForDate returns all active bookings of one stadium on one date
// ordered by start time, which is exactly what the wizard needs to
// grey out taken slots.
func (r *BookingRepo) ListForDate(ctx context.Context, stadium string, date time.Time) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + ` FROM bookings
	     WHERE stadium_name = ? AND booking_date = ? AND status <> 'cancelled'
	     ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, stadium, date.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListFilter narrows ListAll.  Zero values mean "no filter".
type ListFilter struct {
	Stadium       string
	Date          *time.Time
	Status        string
	PaymentStatus string
	UserID        *uint64
}

// ListAll returns bookings for the admin panel, newest first, with
// optional stadium/date/status filters.
func (r *BookingRepo) ListAll(ctx context.Context, f ListFilter) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings WHERE 1=1"
	args := make([]any, 0, 5)
	if f.Stadium != "" {
		q += " AND stadium_name = ?"
		args = append(args, f.Stadium)
	}
	if f.Date != nil {
		q += " AND booking_date = ?"
		args = append(args, f.Date.Format(model.DateLayout))
	}
	if f.Status != "" {
		q += " AND status = ?"
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		q += " AND payment_status = ?"
		args = append(args, f.PaymentStatus)
	}
	if f.UserID != nil {
		q += " AND user_id = ?"
		args = append(args, *f.UserID)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// Confirm marks a booking paid after its slip has been stored: status
// confirmed, payment_status paid, slip references and confirmed_at
// stamped.  Returns the updated row or ErrBookingNotFound.
func (r *BookingRepo) Confirm(ctx context.Context, id uint64, slipPath, slipFilename string) (*model.Booking, error) {
	const q = `UPDATE bookings
	           SET status=?, payment_status=?, payment_slip_url=?, payment_slip_filename=?, confirmed_at=NOW()
	           WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, model.StatusConfirmed, model.PaymentPaid, slipPath, slipFilename, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
	}
	return r.GetByID(ctx, id)
}

// Cancel archives and removes a booking as one transaction.  The row
// is locked FOR UPDATE, checked for eligibility (bookings dated before
// today return ErrNotCancellable), copied into cancelled_bookings with
// refund bookkeeping initialised (status pending, amount equal to the
// booking's total price), and deleted.  When scopeUser is non-nil the
// lookup is restricted to that owner, so a second cancel of the same
// id — or a cancel of someone else's booking — fails with
// ErrBookingNotFound and writes nothing.
func (r *BookingRepo) Cancel(ctx context.Context, id uint64, scopeUser, cancelledBy *uint64, reason string, now time.Time) (*model.CancelledBooking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	q := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	args := []any{id}
	if scopeUser != nil {
		q += " AND user_id = ?"
		args = append(args, *scopeUser)
	}
	q += " FOR UPDATE"
	b, err := scanBooking(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !booking.CanCancel(b.Status, b.BookingDate, now) {
		return nil, ErrNotCancellable
	}

	arch := &model.CancelledBooking{
		OriginalBookingID:  b.ID,
		UserID:             b.UserID,
		StadiumName:        b.StadiumName,
		StadiumAddress:     b.StadiumAddress,
		BookerName:         b.BookerName,
		BookerPhone:        b.BookerPhone,
		BookerEmail:        b.BookerEmail,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Duration:           b.Duration,
		PricePerHour:       b.PricePerHour,
		TotalPrice:         b.TotalPrice,
		SlipPath:           b.SlipPath,
		SlipFilename:       b.SlipFilename,
		Notes:              b.Notes,
		CancelledBy:        cancelledBy,
		CancellationReason: reason,
		RefundStatus:       model.RefundPending,
		RefundAmount:       b.TotalPrice,
		CancelledAt:        now,
	}
	const ins = `INSERT INTO cancelled_bookings
		(original_booking_id, user_id, stadium_name, stadium_address, booker_name, booker_phone, booker_email,
		 booking_date, start_time, end_time, duration, price_per_hour, total_price,
		 payment_slip_url, payment_slip_filename, notes, cancelled_by, cancellation_reason,
		 refund_status, refund_amount, cancelled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		arch.OriginalBookingID, nullU64(arch.UserID), arch.StadiumName, arch.StadiumAddress,
		arch.BookerName, nullStr(arch.BookerPhone), nullStr(arch.BookerEmail),
		arch.BookingDate.Format(model.DateLayout), arch.StartTime, arch.EndTime,
		arch.Duration, arch.PricePerHour, arch.TotalPrice,
		nullStr(arch.SlipPath), nullStr(arch.SlipFilename), nullStr(arch.Notes),
		nullU64(arch.CancelledBy), arch.CancellationReason,
		arch.RefundStatus, arch.RefundAmount, arch.CancelledAt)
	if err != nil {
		return nil, err
	}
	archID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	arch.ID = uint64(archID)

	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", b.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return arch, nil
}

// Delete hard-deletes a booking and its slip metadata with no archive.
// This is the data-correction path, distinct from Cancel.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var one int
	if err := tx.QueryRowContext(ctx, "SELECT 1 FROM bookings WHERE id = ? FOR UPDATE", id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM payment_slips WHERE booking_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListCancelledByUser returns the user's cancellation archive, newest
// cancellation first.
func (r *BookingRepo) ListCancelledByUser(ctx context.Context, userID uint64) ([]model.CancelledBooking, error) {
	const q = `SELECT id, original_booking_id, user_id, stadium_name, stadium_address, booker_name,
	                  booker_phone, booker_email, booking_date, start_time, end_time, duration,
	                  price_per_hour, total_price, payment_slip_url, payment_slip_filename, notes,
	                  cancelled_by, cancellation_reason, refund_status, refund_amount, cancelled_at
	           FROM cancelled_bookings WHERE user_id = ? ORDER BY cancelled_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CancelledBooking, 0)
	for rows.Next() {
		var (
			cb          model.CancelledBooking
			uid         sql.NullInt64
			phone       sql.NullString
			email       sql.NullString
			slipPath    sql.NullString
			slipName    sql.NullString
			notes       sql.NullString
			cancelledBy sql.NullInt64
		)
		if err := rows.Scan(&cb.ID, &cb.OriginalBookingID, &uid, &cb.StadiumName, &cb.StadiumAddress,
			&cb.BookerName, &phone, &email, &cb.BookingDate, &cb.StartTime, &cb.EndTime, &cb.Duration,
			&cb.PricePerHour, &cb.TotalPrice, &slipPath, &slipName, &notes,
			&cancelledBy, &cb.CancellationReason, &cb.RefundStatus, &cb.RefundAmount, &cb.CancelledAt); err != nil {
			return nil, err
		}
		if uid.Valid {
			u := uint64(uid.Int64)
			cb.UserID = &u
		}
		if cancelledBy.Valid {
			u := uint64(cancelledBy.Int64)
			cb.CancelledBy = &u
		}
		cb.BookerPhone = strPtr(phone)
		cb.BookerEmail = strPtr(email)
		cb.SlipPath = strPtr(slipPath)
		cb.SlipFilename = strPtr(slipName)
		cb.Notes = strPtr(notes)
		cb.StartTime = trimSeconds(cb.StartTime)
		cb.EndTime = trimSeconds(cb.EndTime)
		out = append(out, cb)
	}
	return out, rows.Err()
}
