package schedule

import (
	"fmt"
	"time"
)

// SlotsPerDay is the number of hourly booking slots.
const SlotsPerDay = 24

// Slots lists the hourly slot labels from "12:00 AM" to "11:00 PM".
var Slots = buildSlots()

func buildSlots() []string {
	slots := make([]string, SlotsPerDay)
	for h := 0; h < SlotsPerDay; h++ {
		slots[h] = SlotLabel(h)
	}
	return slots
}

// SlotLabel formats an hour of day (0-23) as a slot label.
func SlotLabel(hour int) string {
	hour = ((hour % SlotsPerDay) + SlotsPerDay) % SlotsPerDay
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, 0, period)
}

// slotHours maps each label in Slots to its hour of day.
var slotHours = buildSlotHours()

func buildSlotHours() map[string]int {
	hours := make(map[string]int, len(Slots))
	for h, label := range Slots {
		hours[label] = h
	}
	return hours
}

// ParseSlot returns the hour of day (0-23) for a slot label. Only the exact
// labels in Slots are accepted.
func ParseSlot(label string) (int, error) {
	hour, ok := slotHours[label]
	if !ok {
		return 0, fmt.Errorf("invalid time slot %q", label)
	}
	return hour, nil
}

// IsValidSlot reports whether label is one of Slots.
func IsValidSlot(label string) bool {
	_, ok := slotHours[label]
	return ok
}

// NextAvailable returns the first slot that starts strictly after now, in
// now's location. ok is false when no slot is left today.
func NextAvailable(now time.Time) (label string, ok bool) {
	midnight := StartOfDay(now)
	for h := 0; h < SlotsPerDay; h++ {
		if midnight.Add(time.Duration(h) * time.Hour).After(now) {
			return SlotLabel(h), true
		}
	}
	return "", false
}

// DefaultPickupTime returns the slot one hour after dropOff, wrapping
// "11:00 PM" to "12:00 AM".
func DefaultPickupTime(dropOff string) (string, error) {
	hour, err := ParseSlot(dropOff)
	if err != nil {
		return "", err
	}
	return SlotLabel(hour + 1), nil
}

// Defaults are the preselected drop-off date and slots for a new booking.
type Defaults struct {
	DropOffDate time.Time
	DropOffTime string
	PickupTime  string
	RolledOver  bool
}

// DefaultsAt computes the preselection for a booking started at now. When
// every slot today has passed, the drop-off rolls to tomorrow's first slot.
func DefaultsAt(now time.Time) Defaults {
	d := Defaults{DropOffDate: StartOfDay(now)}
	next, ok := NextAvailable(now)
	if !ok {
		d.DropOffDate = d.DropOffDate.AddDate(0, 0, 1)
		d.RolledOver = true
		next = Slots[0]
	}
	d.DropOffTime = next
	d.PickupTime, _ = DefaultPickupTime(next)
	return d
}
