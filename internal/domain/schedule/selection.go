package schedule

import "time"

// Selection is the date and slot choice of a booking in progress. It keeps
// the pick-up date on or after the drop-off date by clearing pick-up
// whenever the pair would be inverted.
type Selection struct {
	validator   *Validator
	dropOff     *time.Time
	pickUp      *time.Time
	dropOffTime string
	pickupTime  string
}

// NewSelection starts a selection preloaded with DefaultsAt for the validator's clock.
func NewSelection(v *Validator) *Selection {
	d := DefaultsAt(v.now())
	return &Selection{
		validator:   v,
		dropOffTime: d.DropOffTime,
		pickupTime:  d.PickupTime,
	}
}

// DropOff returns the chosen drop-off date, or nil.
func (s *Selection) DropOff() *time.Time { return s.dropOff }

// PickUp returns the chosen pick-up date, or nil.
func (s *Selection) PickUp() *time.Time { return s.pickUp }

// DropOffTime returns the chosen drop-off slot.
func (s *Selection) DropOffTime() string { return s.dropOffTime }

// PickupTime returns the chosen pick-up slot.
func (s *Selection) PickupTime() string { return s.pickupTime }

// SelectDropOff sets the drop-off date. A pick-up date that would now fall
// before it is cleared.
func (s *Selection) SelectDropOff(d time.Time) error {
	if !s.validator.DropOffAllowed(d) {
		return ErrDropOffInPast
	}
	s.dropOff = &d
	if s.pickUp != nil && dayOf(*s.pickUp).Before(dayOf(d)) {
		s.pickUp = nil
	}
	return nil
}

// SelectPickUp sets the pick-up date. A date before the drop-off date
// clears pick-up and returns ErrPickUpBeforeDropOff; repeating it is harmless.
func (s *Selection) SelectPickUp(d time.Time) error {
	if !s.validator.DropOffAllowed(d) {
		return ErrPickUpInPast
	}
	if !s.validator.PickUpAllowed(d, s.dropOff) {
		s.pickUp = nil
		return ErrPickUpBeforeDropOff
	}
	s.pickUp = &d
	return nil
}

// SelectDropOffTime sets the drop-off slot and moves the pick-up slot to one hour later.
func (s *Selection) SelectDropOffTime(label string) error {
	pickup, err := DefaultPickupTime(label)
	if err != nil {
		return err
	}
	s.dropOffTime = label
	s.pickupTime = pickup
	return nil
}

// SelectPickupTime sets the pick-up slot.
func (s *Selection) SelectPickupTime(label string) error {
	if _, err := ParseSlot(label); err != nil {
		return err
	}
	s.pickupTime = label
	return nil
}

// Complete reports whether both dates and both slots are chosen.
func (s *Selection) Complete() bool {
	return s.dropOff != nil && s.pickUp != nil && s.dropOffTime != "" && s.pickupTime != ""
}

// Days is the billable duration of the current selection.
func (s *Selection) Days() int {
	days, err := DurationDays(s.dropOff, s.pickUp)
	if err != nil {
		return 1
	}
	return days
}
