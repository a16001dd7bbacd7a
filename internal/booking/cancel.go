package booking

import (
	"strings"
	"time"
)

// CanCancel reports whether a booking in the given status and dated
// bookingDate may still be cancelled at the moment `now`.  The rules
// mirror the history panel: already-cancelled bookings stay cancelled,
// and a booking whose date has passed can no longer be cancelled.  The
// comparison is by calendar day, not time of day, so a booking later
// today is still cancellable.
func CanCancel(status string, bookingDate, now time.Time) bool {
	if strings.Contains(strings.ToLower(status), "cancel") {
		return false
	}
	return !dayOf(bookingDate).Before(dayOf(now))
}

// dayOf truncates a timestamp to midnight in its own location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
