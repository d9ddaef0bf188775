package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseTimeOfDay_Valid covers the accepted input forms.
func TestParseTimeOfDay_Valid(t *testing.T) {
	t.Parallel()

	cases := map[string]TimeOfDay{
		"07:30":   {Hour: 7, Minute: 30},
		"7:05":    {Hour: 7, Minute: 5},
		"00:00":   {},
		"23:59":   {Hour: 23, Minute: 59},
		" 09:00 ": {Hour: 9},
	}

	for input, want := range cases {
		got, err := ParseTimeOfDay(input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}
}

// TestParseTimeOfDay_Invalid checks that bad inputs map to ErrInvalidAlarmTime.
func TestParseTimeOfDay_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"", "   ", "abc", "0730", "25:00", "24:00", "12:60", "-1:00", "+7:00",
		"12:", ":30", "12:3a", "123:00", "12:30:00", "１２:３０",
	} {
		_, err := ParseTimeOfDay(input)
		require.ErrorIs(t, err, ErrInvalidAlarmTime, input)
	}
}

// TestTimeOfDayString checks zero padding.
func TestTimeOfDayString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "07:05", TimeOfDay{Hour: 7, Minute: 5}.String())
	require.Equal(t, "23:59", TimeOfDay{Hour: 23, Minute: 59}.String())
}

// TestTimeOfDayNext covers same-day and next-day scheduling.
func TestTimeOfDayNext(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	require.Equal(t,
		time.Date(2024, 1, 2, 7, 30, 0, 0, time.UTC),
		TimeOfDay{Hour: 7, Minute: 30}.Next(now))

	require.Equal(t,
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		TimeOfDay{Hour: 9}.Next(now))

	// Exactly now is not in the future.
	require.Equal(t,
		time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		TimeOfDay{Hour: 8}.Next(now))

	// Seconds past the minute roll forward too.
	require.Equal(t,
		time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
		TimeOfDay{Hour: 8}.Next(now.Add(30*time.Second)))

	// Month and year boundaries.
	require.Equal(t,
		time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC),
		TimeOfDay{Hour: 6}.Next(time.Date(2024, 12, 31, 22, 0, 0, 0, time.UTC)))
}

// TestTimeOfDayNext_AlwaysInFuture sweeps every valid time of day against several instants.
func TestTimeOfDayNext_AlwaysInFuture(t *testing.T) {
	t.Parallel()

	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 12, 30, 15, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 59, 59, 999, time.UTC),
	}

	for _, now := range instants {
		for h := 0; h < 24; h++ {
			for m := 0; m < 60; m++ {
				next := TimeOfDay{Hour: h, Minute: m}.Next(now)
				require.True(t, next.After(now))
				require.LessOrEqual(t, next.Sub(now), 24*time.Hour)
				require.Equal(t, h, next.Hour())
				require.Equal(t, m, next.Minute())
			}
		}
	}
}
