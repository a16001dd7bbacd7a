// Package wizard models the four-step booking flow as an explicit
// state machine: a step enum, a transition table, and a validation
// gate per step.  It carries no rendering concerns, so the gates can
// be tested directly and any frontend can drive it.
package wizard

import (
	"strings"
	"time"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/model"
)

// Step identifies a position in the booking flow.
type Step int

const (
	StepSelectStadium Step = iota
	StepDetails
	StepPayment
	StepConfirmation
)

var stepNames = map[Step]string{
	StepSelectStadium: "select_stadium",
	StepDetails:       "details",
	StepPayment:       "payment",
	StepConfirmation:  "confirmation",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "unknown"
}

// transitions is the forward edge of each step.  Confirmation is
// terminal and has no entry.
var transitions = map[Step]Step{
	StepSelectStadium: StepDetails,
	StepDetails:       StepPayment,
	StepPayment:       StepConfirmation,
}

// State accumulates the user's choices across steps.
type State struct {
	Stadium      string
	BookerName   string
	Date         string
	StartTime    string
	EndTime      string
	SlipAttached bool
}

// Flow is one in-progress pass through the wizard.
type Flow struct {
	step  Step
	state State
	now   func() time.Time
}

func New() *Flow {
	return &Flow{step: StepSelectStadium, now: time.Now}
}

func (f *Flow) Step() Step   { return f.step }
func (f *Flow) State() State { return f.state }

// Done reports whether the flow reached confirmation.
func (f *Flow) Done() bool { return f.step == StepConfirmation }

// SelectStadium records the chosen stadium.
func (f *Flow) SelectStadium(name string) {
	f.state.Stadium = strings.TrimSpace(name)
}

// SetDetails records the booker and slot fields of the details step.
func (f *Flow) SetDetails(bookerName, date, startTime, endTime string) {
	f.state.BookerName = strings.TrimSpace(bookerName)
	f.state.Date = strings.TrimSpace(date)
	f.state.StartTime = strings.TrimSpace(startTime)
	f.state.EndTime = strings.TrimSpace(endTime)
}

// AttachSlip marks the payment evidence as provided.  The upload
// itself happens outside the wizard.
func (f *Flow) AttachSlip() { f.state.SlipAttached = true }

// Next validates the current step's gate and advances.  The state is
// untouched when the gate fails, so the caller re-prompts and retries.
func (f *Flow) Next() error {
	if err := f.gate(); err != nil {
		return err
	}
	next, ok := transitions[f.step]
	if !ok {
		return booking.Validationf("the booking flow is already complete")
	}
	f.step = next
	return nil
}

// Back returns to the previous step.  Confirmation is terminal: the
// booking exists by then, so there is nothing to step back into.
func (f *Flow) Back() error {
	switch f.step {
	case StepSelectStadium:
		return booking.Validationf("already at the first step")
	case StepConfirmation:
		return booking.Validationf("the booking flow is already complete")
	}
	for from, to := range transitions {
		if to == f.step {
			f.step = from
			return nil
		}
	}
	return booking.Validationf("unknown step")
}

// gate checks the exit condition of the current step.
func (f *Flow) gate() error {
	switch f.step {
	case StepSelectStadium:
		if f.state.Stadium == "" {
			return booking.Validationf("choose a stadium to continue")
		}
	case StepDetails:
		return f.validateDetails()
	case StepPayment:
		if !f.state.SlipAttached {
			return booking.Validationf("attach a payment slip to continue")
		}
	}
	return nil
}

func (f *Flow) validateDetails() error {
	if f.state.BookerName == "" {
		return booking.Validationf("booker name is required")
	}
	date, err := time.Parse(model.DateLayout, f.state.Date)
	if err != nil {
		return booking.Validationf("invalid booking date %q, expected YYYY-MM-DD", f.state.Date)
	}
	now := f.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return booking.Validationf("the booking date has already passed")
	}
	start, err := booking.ParseTimeOfDay(f.state.StartTime)
	if err != nil {
		return booking.Validationf("invalid start time %q, expected HH:MM", f.state.StartTime)
	}
	end, err := booking.ParseTimeOfDay(f.state.EndTime)
	if err != nil {
		return booking.Validationf("invalid end time %q, expected HH:MM", f.state.EndTime)
	}
	if start >= end {
		return booking.Validationf("start time must be before end time")
	}
	return nil
}
