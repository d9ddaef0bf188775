// Package evaluator implements the alarm evaluator: it arms the alarm for a
// time of day, compares every clock tick against the next alarm instant and
// switches the tone driver on trigger and off on clear, re-arm or stop-sound.
package evaluator
