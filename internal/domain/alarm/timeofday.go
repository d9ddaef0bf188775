package alarm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidAlarmTime is returned when the input cannot be parsed into a valid hour and minute.
var ErrInvalidAlarmTime = errors.New("invalid alarm time")

// TimeOfDay is a wall-clock hour and minute an alarm is armed for.
type TimeOfDay struct {
	// Hour is in the range 0-23.
	Hour int
	// Minute is in the range 0-59.
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (one or two digits per field) into a TimeOfDay.
func ParseTimeOfDay(input string) (TimeOfDay, error) {
	raw := strings.TrimSpace(input)

	hourPart, minutePart, found := strings.Cut(raw, ":")
	if !found {
		return TimeOfDay{}, fmt.Errorf("%w: %q: expected HH:MM", ErrInvalidAlarmTime, input)
	}

	hour, ok := parseField(hourPart)
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q: bad hour", ErrInvalidAlarmTime, input)
	}

	minute, ok := parseField(minutePart)
	if !ok {
		return TimeOfDay{}, fmt.Errorf("%w: %q: bad minute", ErrInvalidAlarmTime, input)
	}

	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("%w: %q: out of range", ErrInvalidAlarmTime, input)
	}

	return t, nil
}

// parseField accepts one or two ASCII digits and nothing else.
func parseField(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}

	value := 0

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}

		value = value*10 + int(r-'0')
	}

	return value, true
}

// Valid reports whether the hour and minute are within range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// String formats the time of day as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Next returns the first instant strictly after now at this time of day,
// in now's location: today when still ahead, otherwise tomorrow.
func (t TimeOfDay) Next(now time.Time) time.Time {
	year, month, day := now.Date()

	candidate := time.Date(year, month, day, t.Hour, t.Minute, 0, 0, now.Location())
	if candidate.After(now) {
		return candidate
	}

	return time.Date(year, month, day+1, t.Hour, t.Minute, 0, 0, now.Location())
}
