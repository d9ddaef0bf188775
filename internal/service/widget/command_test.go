package widget

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// writeTestConfig saves a silent UTC configuration and returns its path.
func writeTestConfig(t *testing.T, mutate func(cfg *config.Config)) string {
	t.Helper()

	cfg := config.Default()
	cfg.Location = "UTC"
	cfg.Tone.Backend = config.ToneBackendNone

	if mutate != nil {
		mutate(cfg)
	}

	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(path, cfg))

	return path
}

func runPlain(t *testing.T, opts *Options) string {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts.Plain = true
	opts.Force = true
	opts.ControlAddress = "127.0.0.1:0"
	opts.Clock = clockwork.NewFakeClockAt(testStart)
	opts.Stdout = &stdout
	opts.Stderr = &stderr

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, Run(ctx, opts))

	return stdout.String()
}

// TestRun_ConsoleSession arms from the console and exits on quit.
// Run swaps the global logger, so these tests do not run in parallel.
func TestRun_ConsoleSession(t *testing.T) {
	out := runPlain(t, &Options{
		ConfigPath: writeTestConfig(t, nil),
		Stdin:      strings.NewReader("set 07:30\nquit\n"),
	})

	require.Contains(t, out, "Alarma: 07:30 (mañana)")
}

// TestRun_InitialAlarm arms the alarm given on the command line.
func TestRun_InitialAlarm(t *testing.T) {
	out := runPlain(t, &Options{
		ConfigPath: writeTestConfig(t, func(cfg *config.Config) { cfg.Alarm = "06:00" }),
		Alarm:      "09:00",
		Stdin:      strings.NewReader("25:99\nquit\n"),
	})

	require.Contains(t, out, "Alarma: 09:00 (hoy)")
	require.Contains(t, out, `Hora de alarma inválida: "25:99"`)
	require.NotContains(t, out, "06:00")
}

// TestRun_RestoresLogger puts the previous global logger back.
func TestRun_RestoresLogger(t *testing.T) {
	previous := logger.Logger()

	runPlain(t, &Options{
		ConfigPath: writeTestConfig(t, nil),
		Stdin:      strings.NewReader("quit\n"),
	})

	require.Same(t, previous, logger.Logger())
}

// TestRun_LogFile writes logs to the configured file.
func TestRun_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "alarm-clock.log")

	runPlain(t, &Options{
		ConfigPath: writeTestConfig(t, func(cfg *config.Config) { cfg.LogFile = logPath }),
		Stdin:      strings.NewReader("07:45\nquit\n"),
	})

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Alarm armed")
}

// TestRun_Errors fails before drawing on bad settings.
func TestRun_Errors(t *testing.T) {
	err := Run(context.Background(), &Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		Force:      true,
	})
	require.ErrorContains(t, err, "load settings")

	err = Run(context.Background(), &Options{
		ConfigPath: writeTestConfig(t, nil),
		Alarm:      "7h30",
		Force:      true,
	})
	require.ErrorContains(t, err, "validate settings")
}

// TestLoadSettings applies command line overrides over the file.
func TestLoadSettings(t *testing.T) {
	t.Parallel()

	settings, err := loadSettings(&Options{
		ConfigPath:     writeTestConfig(t, nil),
		ControlAddress: "127.0.0.1:7000",
		MetricsAddress: "127.0.0.1:7001",
		Alarm:          "10:15",
		LogLevel:       "debug",
	})
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7000", settings.ControlAddress)
	require.Equal(t, "127.0.0.1:7001", settings.MetricsAddress)
	require.Equal(t, "10:15", settings.Alarm)
	require.Equal(t, "debug", settings.LogLevel)
	require.Equal(t, "UTC", settings.Location)
}
