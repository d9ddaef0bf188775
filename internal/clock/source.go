package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// PlatformClock is the injected time capability: wall time and tickers.
type PlatformClock = clockwork.Clock

// DefaultInterval is the refresh cadence of the clock face.
const DefaultInterval = time.Second

// Source publishes the current instant on a fixed cadence.
type Source struct {
	// clock supplies the instants and the ticker.
	clock PlatformClock
	// interval is the tick cadence.
	interval time.Duration
}

// NewSource creates a source ticking every interval on the provided clock.
// A nil clock means the real clock; a non-positive interval means DefaultInterval.
func NewSource(clock PlatformClock, interval time.Duration) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Source{
		clock:    clock,
		interval: interval,
	}
}

// Interval returns the tick cadence.
func (s *Source) Interval() time.Duration {
	return s.interval
}

// Now returns the current instant of the underlying clock.
func (s *Source) Now() time.Time {
	return s.clock.Now()
}

// Subscribe emits the current instant immediately and then once per interval
// until ctx is canceled, at which point the ticker is stopped and the channel closed.
// A slow reader only ever sees the latest pending instant.
func (s *Source) Subscribe(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)
	out <- s.clock.Now()

	// The ticker is created before returning so callers can advance a fake clock right away.
	ticker := s.clock.NewTicker(s.interval)

	go func() {
		defer close(out)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				publishLatest(out, s.clock.Now())
			}
		}
	}()

	return out
}

// publishLatest replaces a stale pending instant with now.
func publishLatest(out chan time.Time, now time.Time) {
	for {
		select {
		case out <- now:
			return
		default:
		}

		select {
		case <-out:
		default:
		}
	}
}
