// Package version exposes build metadata for the alarm-clock binaries.
//
// Version, Commit and BuildTime are injected via -ldflags; Short and Full
// render them for CLI output and startup logs.
package version
