package tone

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultPeriod is the interval between pulse starts.
const DefaultPeriod = 700 * time.Millisecond

// Driver repeats a pulse on a fixed period while active.
// At most one tone loop runs at a time.
type Driver struct {
	// emitter plays each pulse.
	emitter Emitter
	// pulse is the beep being repeated.
	pulse Pulse
	// period is the interval between pulse starts.
	period time.Duration
	// clock drives the repeat ticker.
	clock clockwork.Clock
	// onPulse is notified after every emitted pulse.
	onPulse func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithClock sets the clock used for the repeat ticker.
func WithClock(c clockwork.Clock) DriverOption {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithPulseHook registers fn to run after every pulse.
func WithPulseHook(fn func()) DriverOption {
	return func(d *Driver) {
		d.onPulse = fn
	}
}

// NewDriver creates an idle driver.
func NewDriver(emitter Emitter, pulse Pulse, period time.Duration, opts ...DriverOption) *Driver {
	if emitter == nil {
		emitter = NopEmitter{}
	}

	if period <= 0 {
		period = DefaultPeriod
	}

	d := &Driver{
		emitter: emitter,
		pulse:   pulse,
		period:  period,
		clock:   clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start begins the tone loop: one pulse now and one every period.
// Calling Start while active does nothing.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})

	d.cancel = cancel
	d.done = done

	// The ticker exists before Start returns so a fake clock can be advanced immediately.
	ticker := d.clock.NewTicker(d.period)

	go d.loop(loopCtx, ticker, done)
}

// Stop ends the tone loop and waits for it to exit. Stopping an idle driver does nothing.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
}

// Active reports whether the tone loop is running.
func (d *Driver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.cancel != nil
}

// Close stops the loop and releases the emitter.
func (d *Driver) Close() error {
	d.Stop()

	return d.emitter.Close()
}

func (d *Driver) loop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	d.emit(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			d.emit(ctx)
		}
	}
}

// emit plays one pulse; failures are logged and otherwise ignored.
func (d *Driver) emit(ctx context.Context) {
	if err := d.emitter.Emit(ctx, d.pulse); err != nil {
		logger.DebugKV(ctx, "Tone pulse dropped", "error", err)
		return
	}

	if d.onPulse != nil {
		d.onPulse()
	}
}
