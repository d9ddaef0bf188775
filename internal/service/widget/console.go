package widget

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// errQuit ends the widget after a quit command.
var errQuit = errors.New("quit requested")

// commandKind enumerates console commands.
type commandKind int

const (
	commandNone commandKind = iota
	commandSet
	commandClear
	commandStop
	commandHelp
	commandQuit
)

// command is one parsed console line.
type command struct {
	// kind is what to do.
	kind commandKind
	// arg is the alarm time input for commandSet.
	arg string
}

// parseCommand reads one console line.
// A line that is not a known command is taken as an alarm time, so "07:30" arms the alarm.
func parseCommand(line string) command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{kind: commandNone}
	}

	switch strings.ToLower(fields[0]) {
	case "set":
		return command{kind: commandSet, arg: strings.Join(fields[1:], " ")}
	case "clear":
		return command{kind: commandClear}
	case "stop":
		return command{kind: commandStop}
	case "help", "?":
		return command{kind: commandHelp}
	case "quit", "exit":
		return command{kind: commandQuit}
	default:
		return command{kind: commandSet, arg: strings.TrimSpace(line)}
	}
}

// apply runs cmd against the widget and reports whether the widget should exit.
func (w *Widget) apply(ctx context.Context, actor *domain.Actor, cmd command) bool {
	switch cmd.kind {
	case commandSet:
		// Rejected input is already on screen.
		_, _ = w.SetAlarm(ctx, actor, cmd.arg)
	case commandClear:
		w.ClearAlarm(ctx, actor)
	case commandStop:
		w.StopSound(ctx, actor)
	case commandHelp:
		w.ShowHelp(ctx)
	case commandQuit:
		return true
	case commandNone:
	}

	return false
}

// readConsole applies commands read from in until EOF, quit or cancellation.
// EOF leaves the widget running: it is normal when stdin is not a terminal.
func readConsole(ctx context.Context, in io.Reader, w *Widget, actor *domain.Actor) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read console: %w", err)
					}
				default:
				}

				logger.Debugf(ctx, "Console input closed")

				return nil
			}

			if w.apply(ctx, actor, parseCommand(line)) {
				return errQuit
			}
		}
	}
}
