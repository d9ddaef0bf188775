// Package widget runs the alarm clock: a clock face redrawn every tick,
// an alarm armed from the console or the control API, and a tone that
// repeats while the alarm rings.
//
// Run wires the pieces together. The clock source drives the alarm
// evaluator, console lines and control API calls change its state, and
// every change is drawn through a ui.Renderer. Logs never go to stdout
// while the widget draws there.
package widget
