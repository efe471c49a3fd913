package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSlots(t *testing.T) {
	require.Len(t, Slots, 24)
	assert.Equal(t, "12:00 AM", Slots[0])
	assert.Equal(t, "1:00 AM", Slots[1])
	assert.Equal(t, "12:00 PM", Slots[12])
	assert.Equal(t, "11:00 PM", Slots[23])

	for h, label := range Slots {
		got, err := ParseSlot(label)
		require.NoError(t, err)
		assert.Equal(t, h, got)
	}
}

func TestParseSlot_Invalid(t *testing.T) {
	for _, label := range []string{
		"", "13:00 PM", "0:00 AM", "9:30 AM", "9:00 XM", "noon",
		"01:00 PM", "+1:00 PM", "1:0 PM", "1:00 PM and some trailing text", " 1:00 PM", "1:00 pm",
	} {
		_, err := ParseSlot(label)
		assert.Error(t, err, label)
	}
}

func TestNextAvailable(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
		ok   bool
	}{
		{"mid hour", time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC), "10:00 AM", true},
		{"exactly on the hour", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), "10:00 AM", true},
		{"just before midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second).AddDate(0, 0, 1), "", false},
		{"before noon", time.Date(2024, 1, 1, 11, 59, 0, 0, time.UTC), "12:00 PM", true},
		{"late evening", time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC), "11:00 PM", true},
		{"after last slot", time.Date(2024, 1, 1, 23, 5, 0, 0, time.UTC), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextAvailable(tt.now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPickupTime(t *testing.T) {
	cases := map[string]string{
		"9:00 AM":  "10:00 AM",
		"11:00 AM": "12:00 PM",
		"12:00 PM": "1:00 PM",
		"11:00 PM": "12:00 AM",
		"12:00 AM": "1:00 AM",
	}
	for in, want := range cases {
		got, err := DefaultPickupTime(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestDefaultsAt_RollsToTomorrow(t *testing.T) {
	d := DefaultsAt(time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC))
	assert.True(t, d.RolledOver)
	assert.Equal(t, date(2024, 1, 2), d.DropOffDate)
	assert.Equal(t, "12:00 AM", d.DropOffTime)
	assert.Equal(t, "1:00 AM", d.PickupTime)

	d = DefaultsAt(time.Date(2024, 1, 1, 8, 10, 0, 0, time.UTC))
	assert.False(t, d.RolledOver)
	assert.Equal(t, date(2024, 1, 1), d.DropOffDate)
	assert.Equal(t, "9:00 AM", d.DropOffTime)
	assert.Equal(t, "10:00 AM", d.PickupTime)
}

func TestDurationDays(t *testing.T) {
	d1 := date(2024, 1, 1)
	d3 := date(2024, 1, 3)
	partial := d1.Add(30 * time.Hour)

	days, err := DurationDays(&d1, &d3)
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	days, err = DurationDays(&d1, &partial)
	require.NoError(t, err)
	assert.Equal(t, 2, days)

	days, err = DurationDays(&d1, &d1)
	require.NoError(t, err)
	assert.Equal(t, 1, days, "same day bills one day")

	days, err = DurationDays(nil, &d3)
	require.NoError(t, err)
	assert.Equal(t, 1, days)

	_, err = DurationDays(&d3, &d1)
	assert.ErrorIs(t, err, ErrPickUpBeforeDropOff)
}

func TestValidator(t *testing.T) {
	v := NewValidatorAt(func() time.Time { return time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC) })

	assert.True(t, v.DropOffAllowed(date(2024, 1, 10)), "today is allowed")
	assert.False(t, v.DropOffAllowed(date(2024, 1, 9)))
	assert.True(t, v.PickUpAllowed(date(2024, 1, 12), nil))
	dropOff := date(2024, 1, 12)
	assert.False(t, v.PickUpAllowed(date(2024, 1, 11), &dropOff))

	assert.NoError(t, v.Validate(date(2024, 1, 10), date(2024, 1, 10)))
	assert.ErrorIs(t, v.Validate(date(2024, 1, 9), date(2024, 1, 12)), ErrDropOffInPast)
	assert.ErrorIs(t, v.Validate(date(2024, 1, 12), date(2024, 1, 11)), ErrPickUpBeforeDropOff)
}

func TestSelection_PickUpBeforeDropOffClearsIdempotently(t *testing.T) {
	v := NewValidatorAt(func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) })
	s := NewSelection(v)
	assert.Equal(t, "10:00 AM", s.DropOffTime())
	assert.Equal(t, "11:00 AM", s.PickupTime())

	require.NoError(t, s.SelectDropOff(date(2024, 1, 5)))
	require.NoError(t, s.SelectPickUp(date(2024, 1, 7)))
	require.NotNil(t, s.PickUp())

	for i := 0; i < 2; i++ {
		err := s.SelectPickUp(date(2024, 1, 3))
		assert.ErrorIs(t, err, ErrPickUpBeforeDropOff)
		assert.Nil(t, s.PickUp())
		assert.Equal(t, date(2024, 1, 5), *s.DropOff())
	}
}

func TestSelection_LaterDropOffClearsPickUp(t *testing.T) {
	v := NewValidatorAt(func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) })
	s := NewSelection(v)

	require.NoError(t, s.SelectDropOff(date(2024, 1, 2)))
	require.NoError(t, s.SelectPickUp(date(2024, 1, 4)))
	assert.Equal(t, 2, s.Days())

	require.NoError(t, s.SelectDropOff(date(2024, 1, 6)))
	assert.Nil(t, s.PickUp())
	assert.False(t, s.Complete())
	assert.Equal(t, 1, s.Days())
}

func TestSelection_RejectsPast(t *testing.T) {
	v := NewValidatorAt(func() time.Time { return time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC) })
	s := NewSelection(v)
	assert.ErrorIs(t, s.SelectDropOff(date(2024, 1, 9)), ErrDropOffInPast)
	assert.ErrorIs(t, s.SelectPickUp(date(2024, 1, 9)), ErrPickUpInPast)
	assert.Nil(t, s.DropOff())
}
