package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

var (
	// ErrDropOffInPast is returned for a drop-off date before today.
	ErrDropOffInPast = errors.New("drop-off date cannot be in the past")
	// ErrPickUpInPast is returned for a pick-up date before today.
	ErrPickUpInPast = errors.New("pick-up date cannot be in the past")
	// ErrPickUpBeforeDropOff is returned when pick-up precedes drop-off.
	ErrPickUpBeforeDropOff = errors.New("pick-up date cannot be before drop-off date")
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// DurationDays is the number of billable days between dropOff and pickUp:
// the elapsed time rounded up to whole days, with a minimum of one. A missing
// date counts as one day. It never returns less than 1.
func DurationDays(dropOff, pickUp *time.Time) (int, error) {
	if dropOff == nil || pickUp == nil {
		return 1, nil
	}
	if pickUp.Before(*dropOff) {
		return 0, ErrPickUpBeforeDropOff
	}
	ms := pickUp.Sub(*dropOff).Milliseconds()
	days := int(math.Ceil(float64(ms) / dayMillis))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// Validator checks booking dates against a clock.
type Validator struct {
	now func() time.Time
}

// NewValidator creates a Validator reading the wall clock.
func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorAt creates a Validator with a fixed clock.
func NewValidatorAt(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Today returns midnight of the current day.
func (v *Validator) Today() time.Time {
	return StartOfDay(v.now())
}

// DropOffAllowed reports whether d may be chosen as a drop-off date. Today is allowed.
func (v *Validator) DropOffAllowed(d time.Time) bool {
	return !dayOf(d).Before(dayOf(v.Today()))
}

// PickUpAllowed reports whether d may be chosen as a pick-up date given the
// drop-off date, which may be nil.
func (v *Validator) PickUpAllowed(d time.Time, dropOff *time.Time) bool {
	if !v.DropOffAllowed(d) {
		return false
	}
	if dropOff != nil && dayOf(d).Before(dayOf(*dropOff)) {
		return false
	}
	return true
}

// Validate checks a complete drop-off and pick-up pair.
func (v *Validator) Validate(dropOff, pickUp time.Time) error {
	if !v.DropOffAllowed(dropOff) {
		return ErrDropOffInPast
	}
	if !v.DropOffAllowed(pickUp) {
		return ErrPickUpInPast
	}
	if dayOf(pickUp).Before(dayOf(dropOff)) {
		return ErrPickUpBeforeDropOff
	}
	return nil
}

// dayOf is the calendar day of t as UTC midnight, so days compare across locations.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
