package widget

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseCommand covers every console command form.
func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want command
	}{
		{line: "", want: command{kind: commandNone}},
		{line: "   ", want: command{kind: commandNone}},
		{line: "set 07:30", want: command{kind: commandSet, arg: "07:30"}},
		{line: "SET  7:05", want: command{kind: commandSet, arg: "7:05"}},
		{line: "set", want: command{kind: commandSet, arg: ""}},
		{line: " 07:30 ", want: command{kind: commandSet, arg: "07:30"}},
		{line: "tomorrow", want: command{kind: commandSet, arg: "tomorrow"}},
		{line: "clear", want: command{kind: commandClear}},
		{line: "stop", want: command{kind: commandStop}},
		{line: "help", want: command{kind: commandHelp}},
		{line: "?", want: command{kind: commandHelp}},
		{line: "quit", want: command{kind: commandQuit}},
		{line: "exit", want: command{kind: commandQuit}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, parseCommand(tt.line))
		})
	}
}

// TestReadConsole_Quit applies commands in order and stops at quit.
func TestReadConsole_Quit(t *testing.T) {
	t.Parallel()

	w, renderer, _, _ := newTestWidget(t)

	err := readConsole(context.Background(), strings.NewReader("set 07:30\nhelp\nquit\nclear\n"), w, nil)
	require.ErrorIs(t, err, errQuit)

	require.True(t, w.State().Armed)
	require.Contains(t, renderer.last(t).Help, "Comandos")
}

// TestReadConsole_EOF keeps the widget alive when input ends.
func TestReadConsole_EOF(t *testing.T) {
	t.Parallel()

	w, renderer, _, _ := newTestWidget(t)

	err := readConsole(context.Background(), strings.NewReader("9:00\nbogus\n"), w, nil)
	require.NoError(t, err)

	view := renderer.last(t)
	require.Equal(t, "Alarma: 09:00 (hoy)", view.Alarm)
	require.Contains(t, view.Error, "bogus")
}

// TestReadConsole_Cancel returns once the context is canceled, even with input pending.
func TestReadConsole_Cancel(t *testing.T) {
	t.Parallel()

	w, _, _, _ := newTestWidget(t)

	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- readConsole(ctx, reader, w, nil)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("readConsole did not return after cancel")
	}
}
