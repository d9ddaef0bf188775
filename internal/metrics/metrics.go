package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// namespace prefixes every metric.
const namespace = "alarm_clock"

// Metrics holds the alarm-clock collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// State gauges.
	armed     prometheus.Gauge
	triggered prometheus.Gauge
	ringing   prometheus.Gauge
	nextAlarm prometheus.Gauge

	// Transition counters.
	transitions *prometheus.CounterVec
	invalid     prometheus.Counter
	pulses      prometheus.Counter
	ticks       prometheus.Counter
}

// New creates the collectors and registers them, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		armed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "armed",
			Help:      "Whether an alarm is armed (1) or not (0).",
		}),
		triggered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triggered",
			Help:      "Whether the current arming cycle has triggered.",
		}),
		ringing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ringing",
			Help:      "Whether the alert tone is active.",
		}),
		nextAlarm: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "next_alarm_timestamp_seconds",
			Help:      "Unix time of the next alarm instant, 0 when idle.",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Alarm state transitions by kind.",
		}, []string{"kind"}),
		invalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_alarm_time_total",
			Help:      "Rejected alarm time inputs.",
		}),
		pulses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tone_pulses_total",
			Help:      "Tone pulses emitted.",
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_ticks_total",
			Help:      "Clock ticks evaluated.",
		}),
	}

	m.registry.MustRegister(
		m.armed,
		m.triggered,
		m.ringing,
		m.nextAlarm,
		m.transitions,
		m.invalid,
		m.pulses,
		m.ticks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AlarmArmed counts an arm transition.
func (m *Metrics) AlarmArmed() { m.transitions.WithLabelValues("armed").Inc() }

// AlarmTriggered counts a trigger transition.
func (m *Metrics) AlarmTriggered() { m.transitions.WithLabelValues("triggered").Inc() }

// AlarmCleared counts a clear transition.
func (m *Metrics) AlarmCleared() { m.transitions.WithLabelValues("cleared").Inc() }

// SoundStopped counts a stop-sound transition.
func (m *Metrics) SoundStopped() { m.transitions.WithLabelValues("sound_stopped").Inc() }

// InvalidAlarmTime counts a rejected input.
func (m *Metrics) InvalidAlarmTime() { m.invalid.Inc() }

// TonePulse counts an emitted pulse.
func (m *Metrics) TonePulse() { m.pulses.Inc() }

// ClockTick counts an evaluated tick.
func (m *Metrics) ClockTick() { m.ticks.Inc() }

// StateChanged mirrors the state into the gauges.
func (m *Metrics) StateChanged(state *domain.State) {
	if state == nil {
		return
	}

	m.armed.Set(boolToFloat(state.Armed))
	m.triggered.Set(boolToFloat(state.Triggered))
	m.ringing.Set(boolToFloat(state.Ringing))

	if state.Armed {
		m.nextAlarm.Set(float64(state.NextAlarm.Unix()))
	} else {
		m.nextAlarm.Set(0)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
