package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStopsChainsStarts(t *testing.T) {
	loc := zagreb(t)

	entries := []Entry{
		{Start: time.Date(2024, 3, 5, 20, 0, 0, 0, loc), Title: "News"},
		{Start: time.Date(2024, 3, 5, 20, 30, 0, 0, loc), Title: "Movie"},
		{Start: time.Date(2024, 3, 5, 22, 0, 0, 0, loc), Title: "Late show"},
	}

	derived := DeriveStops(entries, loc)
	require.Len(t, derived, 3)
	assert.True(t, derived[0].Stop.Equal(derived[1].Start))
	assert.True(t, derived[1].Stop.Equal(derived[2].Start))
	assert.True(t, derived[2].Stop.Equal(time.Date(2024, 3, 6, 7, 0, 0, 0, loc)))

	// The input slice is untouched.
	assert.True(t, entries[0].Stop.IsZero())
}

func TestDeriveStopsIdempotent(t *testing.T) {
	loc := zagreb(t)

	entries := []Entry{
		{Start: time.Date(2024, 3, 5, 20, 0, 0, 0, loc)},
		{Start: time.Date(2024, 3, 5, 23, 45, 0, 0, loc)},
	}

	once := DeriveStops(entries, loc)
	twice := DeriveStops(once, loc)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Stop.Format(instantLayout), twice[i].Stop.Format(instantLayout))
	}
}

func TestDeriveStopsLastEntryAlwaysSevenNextDay(t *testing.T) {
	loc := zagreb(t)

	// Regardless of the last start's wall-clock time, including times after
	// midnight and before 07:00.
	for _, hhmm := range [][2]int{{0, 0}, {3, 30}, {6, 59}, {7, 0}, {12, 0}, {23, 59}} {
		t.Run(fmt.Sprintf("%02d:%02d", hhmm[0], hhmm[1]), func(t *testing.T) {
			entries := []Entry{
				{Start: time.Date(2024, 3, 5, hhmm[0], hhmm[1], 0, 0, loc)},
			}
			derived := DeriveStops(entries, loc)
			assert.True(t, derived[0].Stop.Equal(time.Date(2024, 3, 6, 7, 0, 0, 0, loc)))
		})
	}
}

func TestDeriveStopsAcrossMonthEnd(t *testing.T) {
	loc := zagreb(t)

	entries := []Entry{
		{Start: time.Date(2024, 2, 29, 23, 0, 0, 0, loc)},
	}
	derived := DeriveStops(entries, loc)
	assert.True(t, derived[0].Stop.Equal(time.Date(2024, 3, 1, 7, 0, 0, 0, loc)))
}

func TestDeriveStopsEmpty(t *testing.T) {
	assert.Empty(t, DeriveStops(nil, zagreb(t)))
}
