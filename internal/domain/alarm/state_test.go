package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestActorClone verifies that Clone returns a deep copy and handles nil safely.
func TestActorClone(t *testing.T) {
	t.Parallel()
	require.Nil(t, (*Actor)(nil).Clone())

	a := &Actor{
		Hostname: "kitchen",
		Username: "lucia",
	}

	b := a.Clone()

	require.Equal(t, a, b)
	require.NotSame(t, a, b)
	require.Equal(t, "lucia@kitchen", a.String())
	require.Equal(t, "<unknown>", (*Actor)(nil).String())
}

// TestStateClone verifies that State.Clone copies fields and deep-copies LastActor.
func TestStateClone(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s := State{
		Armed:     true,
		AlarmTime: TimeOfDay{Hour: 9},
		NextAlarm: ts.Add(time.Hour),
		Cycle:     "cycle-1",
		Timestamp: ts,
		LastActor: &Actor{
			Hostname: "kitchen",
			Username: "lucia",
		},
	}

	c := s.Clone()
	require.Equal(t, &s, c)
	require.NotSame(t, s.LastActor, c.LastActor)
	require.Nil(t, (*State)(nil).Clone())
}

// TestIdle checks the idle constructor.
func TestIdle(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	actor := &Actor{Hostname: "h", Username: "u"}

	s := Idle(ts, actor)
	require.False(t, s.Armed)
	require.False(t, s.Triggered)
	require.Equal(t, ts, s.Timestamp)
	require.NotSame(t, actor, s.LastActor)
}
