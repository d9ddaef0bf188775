// Package metrics exposes Prometheus metrics for the alarm clock: state
// gauges, transition counters, tone pulses and clock ticks, served over
// HTTP together with a health endpoint.
package metrics
