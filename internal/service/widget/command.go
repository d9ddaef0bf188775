package widget

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/alarm-clock/internal/clock"
	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/metrics"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/evaluator"
	"github.com/oshokin/alarm-clock/internal/tone"
	"github.com/oshokin/alarm-clock/internal/ui"
)

// Options controls the alarm-clock process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ControlAddress overrides the control API listen address.
	ControlAddress string
	// MetricsAddress overrides the metrics listen address.
	MetricsAddress string
	// Alarm overrides the alarm armed at startup ("HH:MM").
	Alarm string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Plain prints one line per change instead of a live clock face.
	Plain bool
	// Force skips the single-instance check.
	Force bool

	// Clock is the platform clock; the real clock when nil.
	Clock clockwork.Clock
	// Stdin provides console commands; os.Stdin when nil.
	Stdin io.Reader
	// Stdout receives the widget; os.Stdout when nil.
	Stdout io.Writer
	// Stderr receives logs when no log file is configured; os.Stderr when nil.
	Stderr io.Writer
}

// Run starts the widget and blocks until ctx is canceled, a quit command
// is read or one of its servers fails. Timers are released on every exit path.
//
//nolint:funlen // Linear startup sequence.
func Run(ctx context.Context, opts *Options) error {
	opts = withDefaults(opts)

	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	restoreLogger, err := setupLogging(settings, opts)
	if err != nil {
		return err
	}

	defer restoreLogger()

	// Set context with logger name for tracking, after the logger moved off stdout.
	ctx = logger.WithName(ctx, "alarm-clock")

	if !opts.Force {
		if err := common.EnsureSingleInstance(); err != nil {
			return fmt.Errorf("single instance check: %w", err)
		}
	}

	location, err := settings.TimeLocation()
	if err != nil {
		return err
	}

	collector := metrics.New()

	emitter, err := tone.NewEmitter(ctx, settings.Tone, opts.Stdout)
	if err != nil {
		return fmt.Errorf("create tone emitter: %w", err)
	}

	driver := tone.NewDriver(
		emitter,
		tone.PulseFromConfig(settings.Tone),
		settings.Tone.Period,
		tone.WithClock(opts.Clock),
		tone.WithPulseHook(collector.TonePulse),
	)

	defer func() {
		if err := driver.Close(); err != nil {
			logger.DebugKV(ctx, "Failed to close tone driver", "error", err)
		}
	}()

	eval := evaluator.New(
		opts.Clock,
		driver,
		evaluator.WithLocation(location),
		evaluator.WithObserver(collector),
	)
	defer eval.Close()

	renderer, err := newRenderer(opts)
	if err != nil {
		return err
	}

	defer func() {
		if err := renderer.Close(); err != nil {
			logger.DebugKV(ctx, "Failed to close renderer", "error", err)
		}
	}()

	w := newWidget(eval, ui.NewFormatter(settings.Locale, location), renderer, opts.Clock)
	actor := detectActor(ctx)

	if settings.Alarm != "" {
		next, err := w.SetAlarm(ctx, actor, settings.Alarm)
		if err != nil {
			return fmt.Errorf("arm initial alarm: %w", err)
		}

		logger.InfoKV(ctx, "Initial alarm armed", "alarm", settings.Alarm, "next_alarm", next)
	}

	// Setup TCP listener before anything is drawn, so a busy port fails fast.
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", settings.ControlAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", settings.ControlAddress, err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return serveControl(groupCtx, lis, w)
	})

	group.Go(func() error {
		source := clock.NewSource(opts.Clock, settings.TickInterval)
		for now := range source.Subscribe(groupCtx) {
			collector.ClockTick()
			w.Tick(groupCtx, now)
		}

		return nil
	})

	if settings.MetricsAddress != "" {
		group.Go(func() error {
			return collector.Serve(groupCtx, settings.MetricsAddress, settings.Timeout)
		})
	}

	group.Go(func() error {
		return readConsole(groupCtx, opts.Stdin, w, actor)
	})

	err = group.Wait()
	if err != nil && !errors.Is(err, errQuit) {
		return err
	}

	logger.Info(ctx, "Alarm clock stopped")

	return nil
}

func withDefaults(opts *Options) *Options {
	result := Options{}
	if opts != nil {
		result = *opts
	}

	if result.Clock == nil {
		result.Clock = clockwork.NewRealClock()
	}

	if result.Stdin == nil {
		result.Stdin = os.Stdin
	}

	if result.Stdout == nil {
		result.Stdout = os.Stdout
	}

	if result.Stderr == nil {
		result.Stderr = os.Stderr
	}

	return &result
}

// loadSettings reads the settings file and applies command line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if opts.ControlAddress != "" {
		settings.ControlAddress = opts.ControlAddress
	}

	if opts.MetricsAddress != "" {
		settings.MetricsAddress = opts.MetricsAddress
	}

	if opts.Alarm != "" {
		settings.Alarm = opts.Alarm
	}

	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}

	if err := config.Validate(settings); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	return settings, nil
}

// setupLogging moves logs off stdout, which belongs to the widget.
// The live clock face shares the terminal with stderr, so only warnings reach it.
// It returns a func restoring the previous global logger.
func setupLogging(settings *config.Config, opts *Options) (func(), error) {
	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	output := opts.Stderr
	closeOutput := func() {}

	var zapOptions []zap.Option

	if settings.LogFile != "" {
		file, err := os.OpenFile(
			filepath.Clean(settings.LogFile),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY,
			config.DefaultFilePermissions,
		)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		output = file
		closeOutput = func() { _ = file.Close() }
	} else if !opts.Plain {
		zapOptions = append(zapOptions, logger.WithLevel(zapcore.WarnLevel))
	}

	previous := logger.Logger()
	logger.SetLogger(logger.NewWithOutput(output, logger.AtomicLevel(), zapOptions...))

	return func() {
		_ = logger.Logger().Sync()

		logger.SetLogger(previous)
		closeOutput()
	}, nil
}

//nolint:ireturn // The renderer is chosen at runtime.
func newRenderer(opts *Options) (ui.Renderer, error) {
	if opts.Plain {
		return ui.NewPlainRenderer(opts.Stdout), nil
	}

	renderer, err := ui.NewTerminalRenderer()
	if err != nil {
		return nil, err
	}

	return renderer, nil
}

// detectActor identifies the local user for console changes; failures leave the actor unknown.
func detectActor(ctx context.Context) *domain.Actor {
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect local actor", "error", err)

		return nil
	}

	return actor
}
