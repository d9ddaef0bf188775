// Package clock provides the clock source of the widget: the current instant
// published at a fixed cadence on top of an injectable clockwork clock.
package clock
