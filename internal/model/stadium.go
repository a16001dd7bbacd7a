package model

import "time"

// Stadium represents a bookable venue.  The Name field is unique and is
// used as the join key when checking booking conflicts, matching the
// schema of the `stadiums` table where bookings reference stadiums by
// name rather than by surrogate id.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – unique stadium name (conflict-check join key).
//  Address      – street address shown to bookers.
//  OpenTime     – daily opening time as "HH:MM".
//  CloseTime    – daily closing time as "HH:MM".
//  PricePerHour – rental price per hour.
//  IsActive     – whether the stadium accepts new bookings.
//  CreatedAt    – timestamp when the row was created.
//  UpdatedAt    – timestamp of last update.
type Stadium struct {
	ID           uint64    // stadiums.id
	Name         string    // stadiums.name
	Address      string    // stadiums.address
	OpenTime     string    // stadiums.open_time
	CloseTime    string    // stadiums.close_time
	PricePerHour float64   // stadiums.price_per_hour
	IsActive     bool      // stadiums.is_active
	CreatedAt    time.Time // stadiums.created_at
	UpdatedAt    time.Time // stadiums.updated_at
}
