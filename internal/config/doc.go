// Package config defines the settings used by the alarm-clock binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Validate fills in defaults: a 1s clock tick and an 880Hz, 250ms beep
// repeated every 700ms.
package config
