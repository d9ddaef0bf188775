package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

var testNow = time.Date(2024, 1, 1, 8, 0, 5, 0, time.UTC)

// TestFormatter_Spanish covers the default locale strings.
func TestFormatter_Spanish(t *testing.T) {
	t.Parallel()

	f := NewFormatter("es-ES", time.UTC)

	require.Equal(t, "08:00:05", f.Time(testNow))
	require.Equal(t, "lunes, 1 de enero de 2024", f.Date(testNow))
	require.Equal(t, "Sin alarma", f.Alarm(nil, testNow))
	require.Equal(t, "Sin alarma", f.Alarm(&domain.State{}, testNow))

	today := &domain.State{
		Armed:     true,
		AlarmTime: domain.TimeOfDay{Hour: 9},
		NextAlarm: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	require.Equal(t, "Alarma: 09:00 (hoy)", f.Alarm(today, testNow))

	tomorrow := &domain.State{
		Armed:     true,
		AlarmTime: domain.TimeOfDay{Hour: 7, Minute: 30},
		NextAlarm: time.Date(2024, 1, 2, 7, 30, 0, 0, time.UTC),
	}
	require.Equal(t, "Alarma: 07:30 (mañana)", f.Alarm(tomorrow, testNow))

	require.Equal(t, `Hora de alarma inválida: "25:00" (usa HH:MM)`, f.InvalidTime("25:00"))
}

// TestFormatter_Banner covers ringing, silenced and idle banners.
func TestFormatter_Banner(t *testing.T) {
	t.Parallel()

	f := NewFormatter("es", time.UTC)
	state := &domain.State{Armed: true, AlarmTime: domain.TimeOfDay{Hour: 7, Minute: 30}}

	require.Empty(t, f.Banner(nil))
	require.Empty(t, f.Banner(state))

	state.Triggered = true
	state.Ringing = true
	require.Equal(t, "¡ALARMA! Son las 07:30", f.Banner(state))

	state.Ringing = false
	require.Equal(t, "Alarma de las 07:30 silenciada", f.Banner(state))
}

// TestFormatter_English uses the English catalog for English locales.
func TestFormatter_English(t *testing.T) {
	t.Parallel()

	f := NewFormatter("en-GB", time.UTC)

	require.Equal(t, "Monday, January 1, 2024", f.Date(testNow))
	require.Equal(t, "No alarm", f.Alarm(nil, testNow))
}

// TestFormatter_Fallback uses Spanish for unparsable locales and local time for nil zones.
func TestFormatter_Fallback(t *testing.T) {
	t.Parallel()

	f := NewFormatter("!!", nil)
	require.Equal(t, "Sin alarma", f.Alarm(nil, testNow))
	require.Equal(t, time.Local, f.location)
}

// TestFormatter_View assembles the widget view.
func TestFormatter_View(t *testing.T) {
	t.Parallel()

	f := NewFormatter("es-ES", time.UTC)
	state := &domain.State{
		Armed:     true,
		Triggered: true,
		Ringing:   true,
		AlarmTime: domain.TimeOfDay{Hour: 8},
		NextAlarm: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}

	v := f.View(state, testNow, "oops")
	require.Equal(t, "08:00:05", v.Time)
	require.Equal(t, "Alarma: 08:00 (hoy)", v.Alarm)
	require.Equal(t, "¡ALARMA! Son las 08:00", v.Banner)
	require.Equal(t, "oops", v.Error)
	require.True(t, v.Ringing)
}

// TestFormatter_Help lists the console commands per language.
func TestFormatter_Help(t *testing.T) {
	t.Parallel()

	require.Contains(t, NewFormatter("es", time.UTC).Help(), "Comandos")
	require.Contains(t, NewFormatter("en-US", time.UTC).Help(), "Commands")
}
