package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatID(t *testing.T) {
	assert.Equal(t, "1-F-Q-1", SeatID("1/F", ZoneQuiet, 1))
	assert.Equal(t, "G-F-G-17", SeatID("G/F", ZoneGroup, 17))
	assert.Equal(t, "LG5-C-216", SeatID("LG5", ZoneComputer, 216))
}

func TestParse(t *testing.T) {
	s, err := ParseStatus(" Hogging ")
	require.NoError(t, err)
	assert.Equal(t, StatusHogging, s)
	_, err = ParseStatus("napping")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	z, err := ParseZone("COMPUTER")
	require.NoError(t, err)
	assert.Equal(t, ZoneComputer, z)
	_, err = ParseZone("cafe")
	assert.ErrorIs(t, err, ErrInvalidZone)

	for in, want := range map[string]string{"1/F": "1/F", "1-f": "1/F", "g-f": "G/F", "lg3": "LG3"} {
		f, err := ParseFloor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f, in)
	}
	_, err = ParseFloor("LG2")
	assert.ErrorIs(t, err, ErrInvalidFloor)
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusOccupied.Timed())
	assert.True(t, StatusHogging.Timed())
	assert.False(t, StatusAvailable.Timed())
	assert.False(t, StatusReserved.Timed())
	assert.Equal(t, "Hogging", StatusHogging.Label())

	var st SeatStats
	for _, s := range []Status{StatusAvailable, StatusAvailable, StatusReserved, StatusHogging} {
		st.Add(s)
	}
	assert.Equal(t, SeatStats{Total: 4, Available: 2, Hogging: 1, Reserved: 1}, st)
}
