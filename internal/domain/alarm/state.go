package alarm

import "time"

// Actor identifies who performed an action on the alarm.
type Actor struct {
	// Hostname is the machine name where the action was performed.
	Hostname string
	// Username is the system user who triggered the action.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as user@host.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return a.Username + "@" + a.Hostname
}

// State is the alarm status at a point in time.
//
// Transitions: idle -> armed (set) -> triggered (now >= NextAlarm) -> idle (clear).
// Stopping the sound clears Ringing only; Armed and Triggered stay set until
// the alarm is cleared or re-armed.
type State struct {
	// Armed is true while an alarm time is set.
	Armed bool
	// Triggered is true once NextAlarm has been reached in the current cycle.
	Triggered bool
	// Ringing is true while the tone driver is active.
	Ringing bool
	// AlarmTime is the armed time of day; meaningful only when Armed.
	AlarmTime TimeOfDay
	// NextAlarm is the absolute instant the alarm fires at.
	NextAlarm time.Time
	// ArmedAt is when the current cycle was armed.
	ArmedAt time.Time
	// TriggeredAt is when the current cycle triggered.
	TriggeredAt time.Time
	// Cycle identifies the current arming cycle.
	Cycle string
	// LastActor is who last changed the state.
	LastActor *Actor
	// Timestamp is when the state was last changed.
	Timestamp time.Time
}

// Idle returns an unarmed state stamped with ts.
func Idle(ts time.Time, actor *Actor) *State {
	return &State{
		Timestamp: ts,
		LastActor: actor.Clone(),
	}
}

// Clone returns a copy of the state to avoid leaking internal references.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}

	cloned := *s
	cloned.LastActor = s.LastActor.Clone()

	return &cloned
}
