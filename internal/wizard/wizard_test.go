package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpark/stadium-booking/internal/booking"
)

func frozen() time.Time {
	return time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
}

func newTestFlow() *Flow {
	f := New()
	f.now = frozen
	return f
}

func TestHappyPathWalksAllSteps(t *testing.T) {
	f := newTestFlow()
	assert.Equal(t, StepSelectStadium, f.Step())

	f.SelectStadium("Main Stadium")
	require.NoError(t, f.Next())
	assert.Equal(t, StepDetails, f.Step())

	f.SetDetails("Somsak", "2026-09-02", "10:00", "12:00")
	require.NoError(t, f.Next())
	assert.Equal(t, StepPayment, f.Step())

	f.AttachSlip()
	require.NoError(t, f.Next())
	assert.Equal(t, StepConfirmation, f.Step())
	assert.True(t, f.Done())
}

func TestGatesBlockAdvance(t *testing.T) {
	t.Run("no stadium chosen", func(t *testing.T) {
		f := newTestFlow()
		err := f.Next()
		require.Error(t, err)
		assert.Equal(t, booking.KindValidation, booking.AsError(err).Kind)
		assert.Equal(t, StepSelectStadium, f.Step())
	})

	t.Run("no slip attached", func(t *testing.T) {
		f := newTestFlow()
		f.SelectStadium("Main Stadium")
		require.NoError(t, f.Next())
		f.SetDetails("Somsak", "2026-09-02", "10:00", "12:00")
		require.NoError(t, f.Next())

		err := f.Next()
		require.Error(t, err)
		assert.Equal(t, StepPayment, f.Step())
	})
}

func TestDetailsGate(t *testing.T) {
	cases := []struct {
		name                     string
		booker, date, start, end string
	}{
		{"missing booker", "", "2026-09-02", "10:00", "12:00"},
		{"bad date format", "Somsak", "02/09/2026", "10:00", "12:00"},
		{"past date", "Somsak", "2026-08-31", "10:00", "12:00"},
		{"bad start", "Somsak", "2026-09-02", "10am", "12:00"},
		{"inverted range", "Somsak", "2026-09-02", "12:00", "10:00"},
		{"zero-length range", "Somsak", "2026-09-02", "10:00", "10:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFlow()
			f.SelectStadium("Main Stadium")
			require.NoError(t, f.Next())
			f.SetDetails(tc.booker, tc.date, tc.start, tc.end)

			err := f.Next()
			require.Error(t, err)
			assert.Equal(t, booking.KindValidation, booking.AsError(err).Kind)
			assert.Equal(t, StepDetails, f.Step())
		})
	}
}

func TestTodayIsBookable(t *testing.T) {
	f := newTestFlow()
	f.SelectStadium("Main Stadium")
	require.NoError(t, f.Next())
	f.SetDetails("Somsak", "2026-09-01", "18:00", "20:00")
	assert.NoError(t, f.Next())
}

func TestBack(t *testing.T) {
	f := newTestFlow()
	assert.Error(t, f.Back())

	f.SelectStadium("Main Stadium")
	require.NoError(t, f.Next())
	require.NoError(t, f.Back())
	assert.Equal(t, StepSelectStadium, f.Step())

	require.NoError(t, f.Next())
	f.SetDetails("Somsak", "2026-09-02", "10:00", "12:00")
	require.NoError(t, f.Next())
	f.AttachSlip()
	require.NoError(t, f.Next())
	assert.Error(t, f.Back(), "confirmation is terminal")
	assert.Error(t, f.Next())
}

func TestStepNames(t *testing.T) {
	assert.Equal(t, "select_stadium", StepSelectStadium.String())
	assert.Equal(t, "confirmation", StepConfirmation.String())
	assert.Equal(t, "unknown", Step(99).String())
}
