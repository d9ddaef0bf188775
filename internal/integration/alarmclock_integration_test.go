package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/common"
	"github.com/oshokin/alarm-clock/internal/service/control"
	"github.com/oshokin/alarm-clock/internal/service/widget"
)

// syncBuffer is a bytes.Buffer safe for the widget goroutines and the test to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// reservePort returns a free local TCP address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// alarmClock is a running widget under test.
type alarmClock struct {
	configPath     string
	controlAddress string
	metricsAddress string
	console        *io.PipeWriter
	stdout         *syncBuffer
	stop           func() error
}

// startAlarmClock runs the real widget in plain mode with fast ticks.
func startAlarmClock(t *testing.T) *alarmClock {
	t.Helper()

	clock := &alarmClock{
		controlAddress: reservePort(t),
		metricsAddress: reservePort(t),
		stdout:         new(syncBuffer),
	}

	clock.configPath = filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(clock.configPath, &config.Config{
		ControlAddress: clock.controlAddress,
		MetricsAddress: clock.metricsAddress,
		Timeout:        3 * time.Second,
		TickInterval:   20 * time.Millisecond,
		Locale:         "es-ES",
		Location:       "UTC",
		Tone:           config.Tone{Backend: config.ToneBackendNone},
	}))

	stdin, console := io.Pipe()
	clock.console = console

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)

	go func() {
		result <- widget.Run(ctx, &widget.Options{
			ConfigPath: clock.configPath,
			Plain:      true,
			Force:      true,
			Stdin:      stdin,
			Stdout:     clock.stdout,
			Stderr:     io.Discard,
		})
	}()

	clock.stop = func() error {
		cancel()
		_ = console.Close()

		select {
		case err := <-result:
			return err
		case <-time.After(10 * time.Second):
			t.Fatal("alarm clock did not stop")

			return nil
		}
	}

	return clock
}

// TestAlarmClock_RemoteAndConsole drives one running widget from the control API,
// alarm-ctl and the console, and checks the metrics endpoint.
// The widget swaps the global logger, so this test does not run in parallel.
func TestAlarmClock_RemoteAndConsole(t *testing.T) {
	clock := startAlarmClock(t)

	// The test logs through its own logger; the global one belongs to the widget.
	ctx := logger.ToContext(context.Background(), zap.NewNop().Sugar())

	actor := &domain.Actor{Hostname: "kitchen", Username: "ana"}

	// Connect to the running widget with timeout.
	c, err := common.Dial(ctx, clock.controlAddress,
		common.WithCallTimeout(3*time.Second),
		common.WithActor(actor),
	)
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	require.Eventually(t, func() bool {
		_, err := c.GetState(ctx)

		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	// Arm remotely: a time that already passed today goes to tomorrow.
	now := time.Now().UTC()
	passed := now.Add(-2 * time.Minute)
	input := passed.Format("15:04")

	state, err := c.SetAlarm(ctx, input)
	require.NoError(t, err)
	require.True(t, state.Armed)
	require.False(t, state.Triggered)
	require.True(t, state.NextAlarm.After(now))
	require.Equal(t, actor, state.LastActor)
	require.NotEmpty(t, state.Cycle)

	// Rejected input keeps the armed alarm.
	_, err = c.SetAlarm(ctx, "24:00")
	require.ErrorIs(t, err, domain.ErrInvalidAlarmTime)

	state, err = c.GetState(ctx)
	require.NoError(t, err)
	require.True(t, state.Armed)
	require.Equal(t, input, state.AlarmTime.String())

	require.Eventually(t, func() bool {
		return strings.Contains(clock.stdout.String(), "Alarma: "+input)
	}, 5*time.Second, 20*time.Millisecond)

	// alarm-ctl prints the same state as JSON.
	var out bytes.Buffer

	require.NoError(t, control.Run(ctx, &control.Options{
		ConfigPath: clock.configPath,
		Action:     control.ActionStatus,
		Output:     control.OutputJSON,
		Out:        &out,
	}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, input, decoded["alarm_time"])

	// The console clears what the control API armed.
	_, err = io.WriteString(clock.console, "clear\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		state, err := c.GetState(ctx)

		return err == nil && !state.Armed
	}, 5*time.Second, 20*time.Millisecond)

	require.Eventually(t, func() bool {
		return strings.Contains(clock.stdout.String(), "Sin alarma")
	}, 5*time.Second, 20*time.Millisecond)

	// Metrics reflect ticks and transitions.
	body := scrape(t, "http://"+clock.metricsAddress+"/metrics")
	require.Contains(t, body, "alarm_clock_clock_ticks_total")
	require.Contains(t, body, `alarm_clock_transitions_total{kind="armed"} 1`)
	require.Contains(t, body, `alarm_clock_transitions_total{kind="cleared"} 1`)
	require.Contains(t, body, "alarm_clock_invalid_alarm_time_total 1")
	require.Contains(t, body, "alarm_clock_armed 0")

	require.Contains(t, scrape(t, "http://"+clock.metricsAddress+"/health"), "healthy")

	require.NoError(t, clock.stop())
}

// TestAlarmClock_QuitFromConsole exits cleanly on quit.
func TestAlarmClock_QuitFromConsole(t *testing.T) {
	clock := startAlarmClock(t)

	_, err := io.WriteString(clock.console, "quit\n")
	require.NoError(t, err)

	require.NoError(t, clock.stop())
}

func scrape(t *testing.T, url string) string {
	t.Helper()

	var body string

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
		if err != nil {
			return false
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}

		defer func() {
			_ = resp.Body.Close()
		}()

		data, err := io.ReadAll(resp.Body)
		if err != nil || resp.StatusCode != http.StatusOK {
			return false
		}

		body = string(data)

		return true
	}, 5*time.Second, 50*time.Millisecond)

	return body
}
