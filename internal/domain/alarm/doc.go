// Package alarm contains the core domain types of the alarm clock.
//
// TimeOfDay parses and schedules "HH:MM" alarm times, State describes the
// arming cycle (armed, triggered, ringing) and Actor records who changed it.
package alarm
