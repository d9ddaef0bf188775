// Package integration holds end-to-end tests that run the alarm clock with
// its real control API, console and metrics endpoint.
package integration
