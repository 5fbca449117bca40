package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundtrip(t *testing.T) {
	in := StringList{"Indian", "Vegetarian"}

	v, err := in.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var empty StringList
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestOpeningHoursRoundtrip(t *testing.T) {
	in := OpeningHours{
		"monday": {Open: "11:00", Close: "22:00"},
		"sunday": {Open: "12:00", Close: "21:00"},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out OpeningHours
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	assert.Error(t, out.Scan(42))
}
