// Package alarmclock implements the gRPC control API of the alarm clock.
//
// The service is described by hand with protobuf well-known types as
// messages, so no generated code is needed: SetAlarm takes a StringValue,
// the other calls take Empty, and every call answers with the alarm state
// encoded as a Struct. The calling actor travels in request metadata.
package alarmclock
