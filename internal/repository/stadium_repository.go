package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/goalpark/stadium-booking/internal/model"
)

// StadiumRepo encapsulates queries against the `stadiums` table.
// Stadium names are unique; bookings reference stadiums by name, so
// name lookups are the hot path here.
type StadiumRepo struct {
	db *sql.DB
}

func NewStadiumRepo(db *sql.DB) *StadiumRepo { return &StadiumRepo{db: db} }

const stadiumColumns = "id, name, address, open_time, close_time, price_per_hour, is_active, created_at, updated_at"

func scanStadium(row interface{ Scan(...any) error }) (*model.Stadium, error) {
	var s model.Stadium
	if err := row.Scan(&s.ID, &s.Name, &s.Address, &s.OpenTime, &s.CloseTime,
		&s.PricePerHour, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a stadium and populates the generated ID plus the
// DB-assigned timestamps on the provided record.
func (r *StadiumRepo) Create(ctx context.Context, s *model.Stadium) error {
	const q = `INSERT INTO stadiums (name, address, open_time, close_time, price_per_hour, is_active)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Address, s.OpenTime, s.CloseTime, s.PricePerHour, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = "SELECT " + stadiumColumns + " FROM stadiums WHERE id = ?"
	got, err := scanStadium(r.db.QueryRowContext(ctx, sel, s.ID))
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetActiveByName fetches an active stadium by its unique name.
// Inactive stadiums are invisible to the booking flow, so a match on
// a deactivated row still returns ErrStadiumNotFound.
func (r *StadiumRepo) GetActiveByName(ctx context.Context, name string) (*model.Stadium, error) {
	const q = "SELECT " + stadiumColumns + " FROM stadiums WHERE name = ? AND is_active = 1 LIMIT 1"
	s, err := scanStadium(r.db.QueryRowContext(ctx, q, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStadiumNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListActive returns all stadiums accepting bookings, ordered by name
// for stable browse output.
func (r *StadiumRepo) ListActive(ctx context.Context) ([]*model.Stadium, error) {
	const q = "SELECT " + stadiumColumns + " FROM stadiums WHERE is_active = 1 ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Stadium, 0)
	for rows.Next() {
		s, err := scanStadium(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a stadium.  Returns
// ErrStadiumNotFound when the id does not exist.
func (r *StadiumRepo) Update(ctx context.Context, s *model.Stadium) error {
	const q = `UPDATE stadiums SET name=?, address=?, open_time=?, close_time=?, price_per_hour=?, is_active=?
	           WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Address, s.OpenTime, s.CloseTime, s.PricePerHour, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 for a no-op update; confirm existence.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM stadiums WHERE id=?", s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrStadiumNotFound
			}
			return err
		}
	}
	return nil
}

// Deactivate flips is_active off so the stadium stops accepting new
// bookings while existing rows keep their snapshot data.
func (r *StadiumRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE stadiums SET is_active = 0 WHERE id = ? AND is_active = 1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStadiumNotFound
	}
	return nil
}
