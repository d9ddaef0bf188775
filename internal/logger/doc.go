// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level configuration and parsing utilities.
//
// Services accept a context and extract the logger from it, so the clock
// loop, the tone driver and the control server log with their own names.
package logger
