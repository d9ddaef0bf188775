package ui

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// messages holds the user-visible strings of one language.
type messages struct {
	noAlarm      string
	alarm        string
	today        string
	tomorrow     string
	invalidTime  string
	ringing      string
	silenced     string
	help         string
	weekdays     [7]string
	months       [12]string
	dateTemplate func(weekday string, day int, month string, year int) string
}

//nolint:gochecknoglobals // Static message tables.
var (
	supported = []language.Tag{language.Spanish, language.English}

	catalog = []messages{
		{
			noAlarm:     "Sin alarma",
			alarm:       "Alarma: %s (%s)",
			today:       "hoy",
			tomorrow:    "mañana",
			invalidTime: "Hora de alarma inválida: %q (usa HH:MM)",
			ringing:     "¡ALARMA! Son las %s",
			silenced:    "Alarma de las %s silenciada",
			help:        "Comandos: set HH:MM | HH:MM | clear | stop | help | quit",
			weekdays:    [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
			months: [12]string{
				"enero", "febrero", "marzo", "abril", "mayo", "junio",
				"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
			},
			dateTemplate: func(weekday string, day int, month string, year int) string {
				return fmt.Sprintf("%s, %d de %s de %d", weekday, day, month, year)
			},
		},
		{
			noAlarm:     "No alarm",
			alarm:       "Alarm: %s (%s)",
			today:       "today",
			tomorrow:    "tomorrow",
			invalidTime: "Invalid alarm time: %q (use HH:MM)",
			ringing:     "ALARM! It's %s",
			silenced:    "Alarm for %s silenced",
			help:        "Commands: set HH:MM | HH:MM | clear | stop | help | quit",
			weekdays:    [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
			months: [12]string{
				"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December",
			},
			dateTemplate: func(weekday string, day int, month string, year int) string {
				return fmt.Sprintf("%s, %s %d, %d", weekday, month, day, year)
			},
		},
	}

	matcher = language.NewMatcher(supported)
)

// Formatter renders clock and alarm values for one locale and time zone.
type Formatter struct {
	msg      messages
	location *time.Location
}

// NewFormatter picks the closest supported language for locale.
// Unknown locales fall back to Spanish.
func NewFormatter(locale string, location *time.Location) *Formatter {
	if location == nil {
		location = time.Local
	}

	index := 0

	if tag, err := language.Parse(locale); err == nil {
		_, index, _ = matcher.Match(tag)
	}

	return &Formatter{
		msg:      catalog[index],
		location: location,
	}
}

// Time formats the clock face time as HH:MM:SS.
func (f *Formatter) Time(now time.Time) string {
	return now.In(f.location).Format("15:04:05")
}

// Date formats the calendar date with localized names.
func (f *Formatter) Date(now time.Time) string {
	local := now.In(f.location)

	return f.msg.dateTemplate(
		f.msg.weekdays[local.Weekday()],
		local.Day(),
		f.msg.months[local.Month()-1],
		local.Year(),
	)
}

// Alarm describes the armed alarm, or the no-alarm text when idle.
func (f *Formatter) Alarm(state *domain.State, now time.Time) string {
	if state == nil || !state.Armed {
		return f.msg.noAlarm
	}

	day := f.msg.today

	ny, nm, nd := state.NextAlarm.In(f.location).Date()
	cy, cm, cd := now.In(f.location).Date()

	if ny != cy || nm != cm || nd != cd {
		day = f.msg.tomorrow
	}

	return fmt.Sprintf(f.msg.alarm, state.AlarmTime.String(), day)
}

// InvalidTime is the validation error text for a rejected input.
func (f *Formatter) InvalidTime(input string) string {
	return fmt.Sprintf(f.msg.invalidTime, input)
}

// Help lists the console commands.
func (f *Formatter) Help() string {
	return f.msg.help
}

// Banner is the triggered banner text, empty when the alarm has not triggered.
func (f *Formatter) Banner(state *domain.State) string {
	if state == nil || !state.Triggered {
		return ""
	}

	if !state.Ringing {
		return fmt.Sprintf(f.msg.silenced, state.AlarmTime.String())
	}

	return fmt.Sprintf(f.msg.ringing, state.AlarmTime.String())
}

// View builds the full widget view.
func (f *Formatter) View(state *domain.State, now time.Time, errorText string) View {
	return View{
		Time:    f.Time(now),
		Date:    f.Date(now),
		Alarm:   f.Alarm(state, now),
		Error:   errorText,
		Banner:  f.Banner(state),
		Ringing: state != nil && state.Ringing,
	}
}
