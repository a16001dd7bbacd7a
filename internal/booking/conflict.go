package booking

import "github.com/goalpark/stadium-booking/internal/model"

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Ranges are half-open, so two bookings that merely touch (one ends at
// 10:00, the next starts at 10:00) do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}

// FilterOverlapping returns the subset of existing bookings whose time
// range overlaps [start, end).  Rows whose stored times cannot be
// parsed are counted as overlapping: a malformed row must block the
// slot rather than silently free it.  Cancelled rows never reach this
// function; the repository excludes them in the select.
func FilterOverlapping(existing []model.Booking, start, end TimeOfDay) []model.Booking {
	var out []model.Booking
	for _, b := range existing {
		from, err := ParseTimeOfDay(b.StartTime)
		if err != nil {
			out = append(out, b)
			continue
		}
		to, err := ParseTimeOfDay(b.EndTime)
		if err != nil {
			out = append(out, b)
			continue
		}
		if Overlaps(from, to, start, end) {
			out = append(out, b)
		}
	}
	return out
}

// ConflictReport is the result of a conflict check: the overlapping
// rows themselves, not just a flag, so callers can show the requester
// which bookings collide with the requested range.
type ConflictReport struct {
	HasConflict bool            `json:"has_conflict"`
	Conflicts   []model.Booking `json:"conflicting_bookings"`
}
