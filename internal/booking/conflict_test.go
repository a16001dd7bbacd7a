package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpark/stadium-booking/internal/model"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "09:30:00", want: 570}, // MySQL TIME text form
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, TimeOfDay(tc.want), got, tc.in)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aFrom, aTo, bFrom, bTo     string
		want                       bool
	}{
		{"identical ranges", "09:00", "10:00", "09:00", "10:00", true},
		{"contained range", "09:00", "12:00", "10:00", "11:00", true},
		{"partial overlap front", "09:00", "11:00", "10:00", "12:00", true},
		{"partial overlap back", "10:00", "12:00", "09:00", "11:00", true},
		{"adjacent before", "09:00", "10:00", "10:00", "11:00", false},
		{"adjacent after", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "08:00", "09:00", "13:00", "14:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(mustTime(t, tc.aFrom), mustTime(t, tc.aTo), mustTime(t, tc.bFrom), mustTime(t, tc.bTo))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilterOverlapping(t *testing.T) {
	existing := []model.Booking{
		{ID: 1, StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, StartTime: "10:00", EndTime: "11:00"},
		{ID: 3, StartTime: "13:00", EndTime: "15:00"},
	}

	// 10:00-13:00 touches #1 and #3 at the boundary only; #2 collides.
	got := FilterOverlapping(existing, mustTime(t, "10:00"), mustTime(t, "13:00"))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)

	// No existing rows means no conflict.
	assert.Empty(t, FilterOverlapping(nil, mustTime(t, "10:00"), mustTime(t, "13:00")))
}

func TestFilterOverlappingMalformedRowBlocks(t *testing.T) {
	existing := []model.Booking{{ID: 9, StartTime: "bogus", EndTime: "10:00"}}
	got := FilterOverlapping(existing, mustTime(t, "18:00"), mustTime(t, "19:00"))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(9), got[0].ID)
}

func TestHoursAndTotal(t *testing.T) {
	// 500/hr for 09:00-11:00 must be exactly 1000.
	start, end := mustTime(t, "09:00"), mustTime(t, "11:00")
	assert.Equal(t, 2.0, Hours(start, end))
	assert.Equal(t, 1000.0, Total(500, start, end))

	// Fractional hours are allowed and rounded to two decimals.
	assert.Equal(t, 1.5, Hours(mustTime(t, "09:00"), mustTime(t, "10:30")))
	assert.Equal(t, 0.25, Hours(mustTime(t, "09:00"), mustTime(t, "09:15")))
	assert.Equal(t, 750.0, Total(500, mustTime(t, "09:00"), mustTime(t, "10:30")))

	// Degenerate ranges contribute nothing.
	assert.Equal(t, 0.0, Hours(mustTime(t, "10:00"), mustTime(t, "10:00")))
	assert.Equal(t, 0.0, Hours(mustTime(t, "11:00"), mustTime(t, "10:00")))
}
