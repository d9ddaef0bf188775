package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/widget"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// controlAddress overrides the control API listen address.
	controlAddress string
	// metricsAddress overrides the metrics listen address.
	metricsAddress string
	// logLevel overrides the configured log level.
	logLevel string
	// plain disables the live clock face.
	plain bool
	// force skips the single-instance check.
	force bool

	// rootCmd represents the base command for running the alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock [HH:MM]",
		Short: "Show a live clock and ring an alarm at a chosen time of day.",
		Long: `Draws the current time in the terminal and rings a repeating tone when the alarm time is reached.

The alarm can be given as an argument, in the configuration file or typed at the prompt:
  set HH:MM   arm the alarm (a bare HH:MM works too)
  clear       disarm the alarm
  stop        silence a ringing alarm
  help        list commands
  quit        exit

A time that has already passed today arms the alarm for tomorrow.
Other terminals can control the alarm through alarm-ctl.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use alarm argument if provided, otherwise rely on config.
			var alarm string
			if len(args) > 0 {
				alarm = args[0]
			}

			options := &widget.Options{
				ConfigPath:     configPath,
				ControlAddress: controlAddress,
				MetricsAddress: metricsAddress,
				Alarm:          alarm,
				LogLevel:       logLevel,
				Plain:          plain,
				Force:          force,
			}

			return widget.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&controlAddress, "listen", "l", "", "control API listen address (overrides config)")
	rootCmd.Flags().StringVarP(&metricsAddress, "metrics", "m", "", "metrics listen address (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVarP(&plain, "plain", "p", false, "print one line per change instead of a live clock face")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "start even if another alarm-clock is running")
}
