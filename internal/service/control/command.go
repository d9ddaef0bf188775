package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Action is a remote operation on a running alarm clock.
type Action string

// Supported actions.
const (
	// ActionSet arms the alarm.
	ActionSet Action = "set"
	// ActionClear disarms the alarm.
	ActionClear Action = "clear"
	// ActionStop silences a ringing alarm.
	ActionStop Action = "stop"
	// ActionStatus prints the alarm state.
	ActionStatus Action = "status"
)

// Output formats.
const (
	// OutputTable prints a status table.
	OutputTable = "table"
	// OutputJSON prints the state message as JSON.
	OutputJSON = "json"
)

var (
	// errUnknownAction is returned for actions outside the supported set.
	errUnknownAction = errors.New("unknown action")
	// errUnknownOutput is returned for unsupported output formats.
	errUnknownOutput = errors.New("unknown output format")
)

// Options configures a single alarm-ctl invocation.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// Address overrides the control address from config when specified.
	Address string
	// Action is the operation to perform.
	Action Action
	// Alarm is the "HH:MM" input for ActionSet.
	Alarm string
	// Output is the result format, OutputTable or OutputJSON.
	Output string
	// Out receives the result; os.Stdout when nil.
	Out io.Writer
}

// Run performs one action against the alarm clock and prints the resulting state.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "alarm-ctl")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Output == "" {
		opts.Output = OutputTable
	}

	if opts.Output != OutputTable && opts.Output != OutputJSON {
		return fmt.Errorf("%w: %q", errUnknownOutput, opts.Output)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// Use control address from options if provided, otherwise use config.
	address := cfg.ControlAddress
	if opts.Address != "" {
		address = opts.Address
	}

	location, err := cfg.TimeLocation()
	if err != nil {
		return err
	}

	// Identify current user and hostname for the state's audit trail.
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect local actor", "error", err)
	}

	client, err := common.Dial(ctx, address,
		common.WithCallTimeout(cfg.Timeout),
		common.WithActor(actor),
	)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	logger.DebugKV(ctx, "Sending control request", "control_address", address, "action", opts.Action)

	if err := perform(ctx, client, opts); err != nil {
		return err
	}

	return printState(ctx, client, opts.Output, out, location)
}

// perform runs the state-changing part of the action; status changes nothing.
func perform(ctx context.Context, client *common.Client, opts *Options) error {
	var err error

	switch opts.Action {
	case ActionSet:
		_, err = client.SetAlarm(ctx, opts.Alarm)
	case ActionClear:
		_, err = client.ClearAlarm(ctx)
	case ActionStop:
		_, err = client.StopSound(ctx)
	case ActionStatus:
	default:
		return fmt.Errorf("%w: %q", errUnknownAction, opts.Action)
	}

	return err
}

func printState(ctx context.Context, client *common.Client, output string, out io.Writer, location *time.Location) error {
	if output == OutputJSON {
		message, err := client.GetStateMessage(ctx)
		if err != nil {
			return err
		}

		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(message)
		if err != nil {
			return fmt.Errorf("marshal state: %w", err)
		}

		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return fmt.Errorf("write state: %w", err)
		}

		return nil
	}

	state, err := client.GetState(ctx)
	if err != nil {
		return err
	}

	return ui.WriteStatusTable(out, state, location)
}
