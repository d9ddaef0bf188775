// Package common holds helpers shared by the alarm-clock binaries.
//
// It provides the control API client wrapper with timeouts and actor
// propagation, detection of the current system actor (hostname/username),
// and a process scan that keeps a single alarm-clock running per machine.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
