package evaluator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// ToneDriver is the alert sound capability the evaluator switches on and off.
type ToneDriver interface {
	Start(ctx context.Context)
	Stop()
	Active() bool
}

// Observer is notified of alarm transitions; metrics implement it.
type Observer interface {
	AlarmArmed()
	AlarmTriggered()
	AlarmCleared()
	SoundStopped()
	InvalidAlarmTime()
	StateChanged(state *domain.State)
}

// Evaluator owns the alarm state and decides when it triggers.
type Evaluator struct {
	// clock supplies "now" for arming.
	clock clockwork.Clock
	// tone is started on trigger and stopped on clear, re-arm and stop-sound.
	tone ToneDriver
	// location is the time zone alarm times are interpreted in.
	location *time.Location
	// observer receives transition notifications.
	observer Observer
	// newCycleID generates arming cycle identifiers.
	newCycleID func() string

	// mu serializes transitions coming from ticks, console input and control calls.
	mu    sync.Mutex
	state *domain.State
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLocation interprets alarm times in loc.
func WithLocation(loc *time.Location) Option {
	return func(e *Evaluator) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithObserver registers an observer for transitions.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithCycleIDs overrides the cycle id generator.
func WithCycleIDs(fn func() string) Option {
	return func(e *Evaluator) {
		if fn != nil {
			e.newCycleID = fn
		}
	}
}

// New creates an idle evaluator.
func New(clock clockwork.Clock, tone ToneDriver, opts ...Option) *Evaluator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	e := &Evaluator{
		clock:      clock,
		tone:       tone,
		location:   time.Local,
		observer:   nopObserver{},
		newCycleID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.state = domain.Idle(e.now(), nil)

	return e
}

// SetAlarm arms the alarm for input ("HH:MM") and returns the instant it fires at.
// Invalid input returns domain.ErrInvalidAlarmTime and leaves the current state untouched.
// Re-arming stops a ringing tone before the new instant is computed.
func (e *Evaluator) SetAlarm(ctx context.Context, actor *domain.Actor, input string) (time.Time, error) {
	timeOfDay, err := domain.ParseTimeOfDay(input)
	if err != nil {
		e.observer.InvalidAlarmTime()
		logger.WarnKV(ctx, "Rejected alarm time", "input", input, "error", err)

		return time.Time{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTone()

	now := e.now()
	e.state = &domain.State{
		Armed:     true,
		AlarmTime: timeOfDay,
		NextAlarm: timeOfDay.Next(now),
		ArmedAt:   now,
		Cycle:     e.newCycleID(),
		LastActor: actor.Clone(),
		Timestamp: now,
	}

	e.observer.AlarmArmed()
	e.observer.StateChanged(e.state)

	logger.InfoKV(ctx, "Alarm armed",
		"alarm_time", timeOfDay.String(),
		"next_alarm", e.state.NextAlarm.Format(time.RFC3339),
		"cycle", e.state.Cycle,
		"actor", actor.String(),
	)

	return e.state.NextAlarm, nil
}

// ClearAlarm disarms the alarm and stops any active tone.
func (e *Evaluator) ClearAlarm(ctx context.Context, actor *domain.Actor) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTone()

	wasArmed := e.state.Armed
	e.state = domain.Idle(e.now(), actor)

	e.observer.AlarmCleared()
	e.observer.StateChanged(e.state)

	logger.InfoKV(ctx, "Alarm cleared", "was_armed", wasArmed, "actor", actor.String())
}

// StopSound silences the tone. The alarm stays armed and triggered until cleared or re-armed.
func (e *Evaluator) StopSound(ctx context.Context, actor *domain.Actor) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Ringing {
		return
	}

	e.stopTone()

	e.state.LastActor = actor.Clone()
	e.state.Timestamp = e.now()

	e.observer.SoundStopped()
	e.observer.StateChanged(e.state)

	logger.InfoKV(ctx, "Alarm sound stopped", "cycle", e.state.Cycle, "actor", actor.String())
}

// Tick evaluates the alarm against now and reports whether it triggered on this call.
// An arming cycle triggers at most once.
func (e *Evaluator) Tick(ctx context.Context, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Armed || e.state.Triggered || now.Before(e.state.NextAlarm) {
		return false
	}

	now = now.In(e.location)

	e.state.Triggered = true
	e.state.TriggeredAt = now
	e.state.Timestamp = now

	if e.tone != nil {
		e.tone.Start(ctx)
		e.state.Ringing = true
	}

	e.observer.AlarmTriggered()
	e.observer.StateChanged(e.state)

	logger.InfoKV(ctx, "Alarm triggered",
		"alarm_time", e.state.AlarmTime.String(),
		"cycle", e.state.Cycle,
		"late_by", now.Sub(e.state.NextAlarm).String(),
	)

	return true
}

// State returns a copy of the current alarm state.
func (e *Evaluator) State() *domain.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Clone()
}

// Location returns the time zone alarm times are interpreted in.
func (e *Evaluator) Location() *time.Location {
	return e.location
}

// Close stops the tone. The state is kept so a final render can still show it.
func (e *Evaluator) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTone()
}

// stopTone must be called with mu held.
func (e *Evaluator) stopTone() {
	if e.tone != nil {
		e.tone.Stop()
	}

	e.state.Ringing = false
}

func (e *Evaluator) now() time.Time {
	return e.clock.Now().In(e.location)
}

type nopObserver struct{}

func (nopObserver) AlarmArmed()                {}
func (nopObserver) AlarmTriggered()            {}
func (nopObserver) AlarmCleared()              {}
func (nopObserver) SoundStopped()              {}
func (nopObserver) InvalidAlarmTime()          {}
func (nopObserver) StateChanged(*domain.State) {}
