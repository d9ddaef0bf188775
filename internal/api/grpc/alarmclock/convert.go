package alarmclock

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Metadata keys carrying the calling actor.
const (
	actorHostnameKey = "x-alarm-actor-hostname"
	actorUsernameKey = "x-alarm-actor-username"
)

// State struct field names.
const (
	fieldArmed          = "armed"
	fieldTriggered      = "triggered"
	fieldRinging        = "ringing"
	fieldAlarmTime      = "alarm_time"
	fieldNextAlarm      = "next_alarm"
	fieldArmedAt        = "armed_at"
	fieldTriggeredAt    = "triggered_at"
	fieldCycle          = "cycle"
	fieldActorHostname  = "actor_hostname"
	fieldActorUsername  = "actor_username"
	fieldTimestamp      = "timestamp"
	timestampLayout     = time.RFC3339Nano
	emptyAlarmTimeValue = ""
)

// WithActor attaches the actor to outgoing call metadata.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		actorHostnameKey, actor.Hostname,
		actorUsernameKey, actor.Username,
	)
}

// ActorFromContext reads the actor from incoming call metadata.
func ActorFromContext(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	hostname := first(md.Get(actorHostnameKey))
	username := first(md.Get(actorUsernameKey))

	if hostname == "" && username == "" {
		return nil
	}

	return &domain.Actor{
		Hostname: hostname,
		Username: username,
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// StateToProto encodes the state as a Struct.
func StateToProto(state *domain.State) (*structpb.Struct, error) {
	if state == nil {
		state = new(domain.State)
	}

	alarmTime := emptyAlarmTimeValue
	if state.Armed {
		alarmTime = state.AlarmTime.String()
	}

	fields := map[string]any{
		fieldArmed:       state.Armed,
		fieldTriggered:   state.Triggered,
		fieldRinging:     state.Ringing,
		fieldAlarmTime:   alarmTime,
		fieldNextAlarm:   formatTimestamp(state.NextAlarm),
		fieldArmedAt:     formatTimestamp(state.ArmedAt),
		fieldTriggeredAt: formatTimestamp(state.TriggeredAt),
		fieldCycle:       state.Cycle,
		fieldTimestamp:   formatTimestamp(state.Timestamp),
	}

	if state.LastActor != nil {
		fields[fieldActorHostname] = state.LastActor.Hostname
		fields[fieldActorUsername] = state.LastActor.Username
	}

	result, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}

	return result, nil
}

// StateFromProto decodes a Struct produced by StateToProto.
func StateFromProto(message *structpb.Struct) (*domain.State, error) {
	fields := message.GetFields()
	state := &domain.State{
		Armed:     fields[fieldArmed].GetBoolValue(),
		Triggered: fields[fieldTriggered].GetBoolValue(),
		Ringing:   fields[fieldRinging].GetBoolValue(),
		Cycle:     fields[fieldCycle].GetStringValue(),
	}

	if raw := fields[fieldAlarmTime].GetStringValue(); raw != emptyAlarmTimeValue {
		alarmTime, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			return nil, fmt.Errorf("decode alarm time: %w", err)
		}

		state.AlarmTime = alarmTime
	}

	instants := map[string]*time.Time{
		fieldNextAlarm:   &state.NextAlarm,
		fieldArmedAt:     &state.ArmedAt,
		fieldTriggeredAt: &state.TriggeredAt,
		fieldTimestamp:   &state.Timestamp,
	}

	for name, target := range instants {
		parsed, err := parseTimestamp(fields[name].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}

		*target = parsed
	}

	hostname := fields[fieldActorHostname].GetStringValue()
	username := fields[fieldActorUsername].GetStringValue()

	if hostname != "" || username != "" {
		state.LastActor = &domain.Actor{
			Hostname: hostname,
			Username: username,
		}
	}

	return state, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(timestampLayout)
}

func parseTimestamp(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	return time.Parse(timestampLayout, raw)
}
