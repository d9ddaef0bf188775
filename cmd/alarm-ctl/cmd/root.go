package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/control"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// address overrides the control address from config.
	address string
	// output selects the result format.
	output string
	// pollInterval is the delay between checks for watch.
	pollInterval time.Duration
	// exitOnTrigger makes watch return once the alarm fires.
	exitOnTrigger bool

	// rootCmd represents the base command for controlling a running alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-ctl",
		Short: "Control a running alarm-clock.",
		Long: `Arms, clears or silences the alarm of a running alarm-clock through its control API
and prints the resulting alarm state.`,
		SilenceUsage: true,
	}

	// watchCmd prints the alarm state whenever it changes.
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Print the alarm state whenever it changes.",
		Long: `Polls the alarm state and prints one line per change until interrupted.
With --exit-on-trigger it returns as soon as the alarm has triggered, which
makes it usable as a blocking wait in scripts.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &control.WatchOptions{
				ConfigPath:    configPath,
				Address:       address,
				PollInterval:  pollInterval,
				ExitOnTrigger: exitOnTrigger,
			}

			return control.Watch(ctx, options)
		},
	}
)

// newActionCommand builds a subcommand that performs action.
func newActionCommand(action control.Action, use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &control.Options{
				ConfigPath: configPath,
				Address:    address,
				Action:     action,
				Output:     output,
			}

			if len(args) > 0 {
				options.Alarm = args[0]
			}

			return control.Run(ctx, options)
		},
	}
}

// Execute runs the alarm-ctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&address, "address", "a", "", "control API address (overrides config)")
	rootCmd.PersistentFlags().
		StringVarP(&output, "output", "o", control.OutputTable, "output format: table or json")

	rootCmd.AddCommand(
		newActionCommand(control.ActionSet, "set HH:MM", "Arm the alarm for a time of day.", cobra.ExactArgs(1)),
		newActionCommand(control.ActionClear, "clear", "Disarm the alarm.", cobra.NoArgs),
		newActionCommand(control.ActionStop, "stop", "Silence a ringing alarm.", cobra.NoArgs),
		newActionCommand(control.ActionStatus, "status", "Print the alarm state.", cobra.NoArgs),
		watchCmd,
	)

	watchCmd.Flags().
		DurationVarP(&pollInterval, "interval", "i", control.DefaultPollInterval, "delay between state checks")
	watchCmd.Flags().
		BoolVar(&exitOnTrigger, "exit-on-trigger", false, "exit once the alarm has triggered")
}
