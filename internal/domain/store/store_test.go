package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details() Details {
	return Details{Name: "MG Road Lockers", Address: "12 MG Road", City: "Bengaluru", IsOpen: true, PricePerDay: 100}
}

func TestNewStore(t *testing.T) {
	owner := uuid.New()
	s, err := NewStore(owner, details(), 10)
	require.NoError(t, err)
	assert.True(t, s.IsOwnedBy(owner))
	assert.True(t, s.CanAccommodate(10))
	assert.False(t, s.CanAccommodate(11))

	_, err = NewStore(owner, details(), -1)
	assert.Error(t, err)

	bad := details()
	bad.Name = ""
	_, err = NewStore(owner, bad, 1)
	assert.Error(t, err)

	bad = details()
	bad.Location = &Location{Latitude: 91}
	_, err = NewStore(owner, bad, 1)
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	s, err := NewStore(uuid.New(), details(), 10)
	require.NoError(t, err)

	d := details()
	d.IsOpen = false
	require.NoError(t, s.Update(d, nil))
	assert.False(t, s.Details().IsOpen)
	assert.Equal(t, 10, s.Capacity())

	negative := -5
	assert.Error(t, s.Update(d, &negative))
	assert.Equal(t, 10, s.Capacity())
}
