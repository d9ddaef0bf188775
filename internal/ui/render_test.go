package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// TestPlainRenderer writes only when the minute-level view changes.
func TestPlainRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := NewPlainRenderer(&buf)
	f := NewFormatter("es-ES", time.UTC)

	require.NoError(t, r.Render(f.View(nil, testNow, "")))
	require.NoError(t, r.Render(f.View(nil, testNow.Add(time.Second), "")))
	require.NoError(t, r.Render(f.View(nil, testNow.Add(time.Minute), "")))
	require.NoError(t, r.Render(f.View(nil, testNow.Add(time.Minute), f.InvalidTime("x"))))
	require.NoError(t, r.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "08:00 | lunes, 1 de enero de 2024 | Sin alarma", lines[0])
	require.Equal(t, "08:01 | lunes, 1 de enero de 2024 | Sin alarma", lines[1])
	require.Contains(t, lines[2], "Hora de alarma inválida")
}

// TestWriteStatusTable renders every field.
func TestWriteStatusTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	state := &domain.State{
		Armed:     true,
		AlarmTime: domain.TimeOfDay{Hour: 7, Minute: 30},
		NextAlarm: time.Date(2024, 1, 2, 7, 30, 0, 0, time.UTC),
		ArmedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Cycle:     "cycle-1",
		LastActor: &domain.Actor{Hostname: "kitchen", Username: "lucia"},
		Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, WriteStatusTable(&buf, state, time.UTC))

	out := buf.String()
	require.Contains(t, out, "armed")
	require.Contains(t, out, "07:30")
	require.Contains(t, out, "2024-01-02 07:30:00 UTC")
	require.Contains(t, out, "cycle-1")
	require.Contains(t, out, "lucia@kitchen")

	buf.Reset()
	require.NoError(t, WriteStatusTable(&buf, nil, nil))
	require.Contains(t, buf.String(), "idle")
}

// TestStatusName summarizes states.
func TestStatusName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", StatusName(nil))
	require.Equal(t, "armed", StatusName(&domain.State{Armed: true}))
	require.Equal(t, "triggered", StatusName(&domain.State{Armed: true, Triggered: true}))
	require.Equal(t, "ringing", StatusName(&domain.State{Armed: true, Triggered: true, Ringing: true}))
}
