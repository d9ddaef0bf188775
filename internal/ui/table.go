package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// never is shown for unset instants.
const never = "-"

// StatusName summarizes the state in one word.
func StatusName(state *domain.State) string {
	switch {
	case state == nil || !state.Armed:
		return "idle"
	case state.Ringing:
		return "ringing"
	case state.Triggered:
		return "triggered"
	default:
		return "armed"
	}
}

// WriteStatusTable renders the state as a two-column table.
func WriteStatusTable(out io.Writer, state *domain.State, location *time.Location) error {
	if state == nil {
		state = new(domain.State)
	}

	if location == nil {
		location = time.Local
	}

	alarmTime := never
	if state.Armed {
		alarmTime = state.AlarmTime.String()
	}

	cycle := state.Cycle
	if cycle == "" {
		cycle = never
	}

	rows := [][]string{
		{"Status", StatusName(state)},
		{"Alarm time", alarmTime},
		{"Next alarm", formatInstant(state.NextAlarm, location)},
		{"Armed at", formatInstant(state.ArmedAt, location)},
		{"Triggered at", formatInstant(state.TriggeredAt, location)},
		{"Cycle", cycle},
		{"Last actor", state.LastActor.String()},
		{"Updated", formatInstant(state.Timestamp, location)},
	}

	table := tablewriter.NewWriter(out)
	table.Header("Field", "Value")

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append status row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render status table: %w", err)
	}

	return nil
}

func formatInstant(t time.Time, location *time.Location) string {
	if t.IsZero() {
		return never
	}

	return t.In(location).Format("2006-01-02 15:04:05 MST")
}
