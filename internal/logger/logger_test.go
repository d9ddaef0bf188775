package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"":        zapcore.InfoLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that named loggers travel with the context.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithOutput(&buf, zapcore.DebugLevel)

	ctx := ToContext(context.Background(), l)
	ctx = WithName(ctx, "alarm-clock")
	ctx = WithKV(ctx, "cycle", "abc")
	ctx = WithFields(ctx, map[string]any{"armed": true})

	InfoKV(ctx, "Alarm armed", "alarm_time", "07:30")

	out := buf.String()
	require.Contains(t, out, "alarm-clock")
	require.Contains(t, out, "Alarm armed")
	require.Contains(t, out, "abc")
	require.Contains(t, out, "07:30")

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithLevel raises the effective level and keeps it on derived loggers.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithOutput(&buf, zapcore.DebugLevel, WithLevel(zapcore.WarnLevel))
	l.Info("hidden")
	l.With("k", "v").Debug("hidden too")
	l.Named("child").Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")

	buf.Reset()

	// The floor never lowers the base level.
	l = NewWithOutput(&buf, zapcore.ErrorLevel, WithLevel(zapcore.DebugLevel))
	l.Warn("filtered")
	l.Error("kept")

	require.NotContains(t, buf.String(), "filtered")
	require.Contains(t, buf.String(), "kept")
}
