package control

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// DefaultPollInterval is the delay between state checks in Watch.
const DefaultPollInterval = time.Second

// WatchOptions controls alarm-ctl watch.
type WatchOptions struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Address overrides the control address from config when specified.
	Address string
	// PollInterval is the delay between state checks.
	PollInterval time.Duration
	// ExitOnTrigger returns as soon as the alarm has triggered.
	ExitOnTrigger bool
	// Out receives one line per state change; os.Stdout when nil.
	Out io.Writer
}

// Watch polls the alarm state and prints a line whenever it changes.
// Failed polls are logged and retried on the next interval.
func Watch(ctx context.Context, opts *WatchOptions) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-ctl")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	address := cfg.ControlAddress
	if opts.Address != "" {
		address = opts.Address
	}

	location, err := cfg.TimeLocation()
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("dial alarm clock: %w", err)
	}

	// Ensure connection cleanup on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.InfoKV(ctx, "Watching alarm state", "control_address", address, "interval", interval.String())

	w := &watcher{out: out, location: location}

	// Check immediately before starting the polling loop.
	if w.check(ctx, client) && opts.ExitOnTrigger {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			if w.check(ctx, client) && opts.ExitOnTrigger {
				return nil
			}
		}
	}
}

// watcher remembers the last printed line.
type watcher struct {
	out      io.Writer
	location *time.Location
	last     string
}

// check polls once, prints on change and reports whether the alarm has triggered.
func (w *watcher) check(ctx context.Context, client *common.Client) bool {
	state, err := client.GetState(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Check state failed", "error", err)
		return false
	}

	line := w.describe(state)
	if line != w.last {
		w.last = line

		if _, err := fmt.Fprintln(w.out, line); err != nil {
			logger.DebugKV(ctx, "Failed to print state", "error", err)
		}
	}

	return state.Triggered
}

// describe formats the state as one line, ignoring fields that change without a transition.
func (w *watcher) describe(state *domain.State) string {
	line := ui.StatusName(state)
	if state.Armed {
		line += fmt.Sprintf(" %s (next %s)", state.AlarmTime, state.NextAlarm.In(w.location).Format(time.DateTime))
	}

	return line + " by " + state.LastActor.String()
}
