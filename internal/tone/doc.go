// Package tone drives the audible alert: a square-wave pulse repeated on a
// fixed period while the alarm rings.
//
// Emitters decide where a pulse goes (audio device, terminal bell or
// nowhere). A missing audio device never surfaces as an error to the alarm.
package tone
