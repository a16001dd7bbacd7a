// Package booking holds the pure reservation logic shared by the
// service and repository layers: time-of-day arithmetic, the interval
// overlap predicate, price calculation, cancellation eligibility,
// payment-slip validation and the error taxonomy returned across the
// service boundary.  Nothing in this package touches the database or
// the network.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a clock time expressed as minutes since midnight.
// Booking rows store times as "HH:MM" strings; parsing them into
// minutes makes the overlap comparisons exact and cheap.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" (the MySQL TIME text
// form) into a TimeOfDay.  Seconds, when present, are ignored: the
// booking grid operates on whole minutes.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String renders the time back as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Hours returns the length of [start, end) in fractional hours,
// rounded to two decimals the way the original price math does
// (e.g. 90 minutes -> 1.5).
func Hours(start, end TimeOfDay) float64 {
	mins := int(end) - int(start)
	if mins <= 0 {
		return 0
	}
	h := float64(mins) / 60.0
	return float64(int(h*100+0.5)) / 100
}

// Total computes the price of a range at the given hourly rate.
func Total(pricePerHour float64, start, end TimeOfDay) float64 {
	return pricePerHour * Hours(start, end)
}
