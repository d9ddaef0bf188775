package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// Config holds the settings shared by the alarm-clock binaries.
type Config struct {
	// ControlAddress is the gRPC address of the control API.
	ControlAddress string `yaml:"control_addr"`
	// MetricsAddress is the HTTP address for /metrics; empty disables it.
	MetricsAddress string `yaml:"metrics_addr"`
	// Timeout is the duration for control RPC calls and server shutdown.
	Timeout time.Duration `yaml:"timeout"`
	// TickInterval is the clock refresh cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// Locale selects the clock face language (BCP 47, e.g. "es-ES").
	Locale string `yaml:"locale"`
	// Location is the IANA time zone alarms are scheduled in.
	Location string `yaml:"location"`
	// Alarm is an optional "HH:MM" armed at startup.
	Alarm string `yaml:"alarm"`
	// LogLevel is the minimum log level.
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the widget owns the terminal; empty means stderr.
	LogFile string `yaml:"log_file"`
	// Tone configures the tone driver.
	Tone Tone `yaml:"tone"`
}

// Tone configures the alert sound.
type Tone struct {
	// Backend is one of auto, audio, bell, none.
	Backend string `yaml:"backend"`
	// Frequency of the square wave in Hz.
	Frequency float64 `yaml:"frequency"`
	// Pulse is the length of one beep.
	Pulse time.Duration `yaml:"pulse"`
	// Period is the interval between beep starts.
	Period time.Duration `yaml:"period"`
	// SampleRate of the generated PCM.
	SampleRate int `yaml:"sample_rate"`
	// Volume is the amplitude in the range (0, 1].
	Volume float64 `yaml:"volume"`
}

// Tone backends.
const (
	ToneBackendAuto  = "auto"
	ToneBackendAudio = "audio"
	ToneBackendBell  = "bell"
	ToneBackendNone  = "none"
)

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultControlAddress is where the control API listens by default.
	DefaultControlAddress = "127.0.0.1:50061"

	// DefaultTimeout is the default duration for control calls.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval is the clock refresh cadence.
	DefaultTickInterval = time.Second

	// DefaultLocale is the clock face language.
	DefaultLocale = "es-ES"

	// DefaultToneFrequency is the beep pitch in Hz.
	DefaultToneFrequency = 880.0

	// DefaultTonePulse is the beep length.
	DefaultTonePulse = 250 * time.Millisecond

	// DefaultTonePeriod is the interval between beep starts.
	DefaultTonePeriod = 700 * time.Millisecond

	// DefaultToneSampleRate is the PCM sample rate.
	DefaultToneSampleRate = 44100

	// DefaultToneVolume is the square wave amplitude.
	DefaultToneVolume = 0.3

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errControlAddressRequired is returned when the control address is missing.
	errControlAddressRequired = errors.New("control address must be provided")
	// errInvalidTone is returned for inconsistent tone settings.
	errInvalidTone = errors.New("invalid tone settings")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{ControlAddress: DefaultControlAddress}

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default path yields Default().
func Load(path string) (*Config, error) {
	usingDefault := path == "" || path == DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if usingDefault && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Config{ControlAddress: DefaultControlAddress}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for unset optional fields.
//
//nolint:cyclop // Flat list of field checks.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ControlAddress == "" {
		return errControlAddressRequired
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ControlAddress); err != nil {
		return fmt.Errorf("invalid control address: %w", err)
	}

	if settings.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", settings.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}

	if settings.Locale == "" {
		settings.Locale = DefaultLocale
	}

	if _, err := language.Parse(settings.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", settings.Locale, err)
	}

	if _, err := settings.TimeLocation(); err != nil {
		return err
	}

	if settings.Alarm != "" {
		if _, err := alarm.ParseTimeOfDay(settings.Alarm); err != nil {
			return fmt.Errorf("initial alarm: %w", err)
		}
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q", settings.LogLevel)
	}

	return validateTone(&settings.Tone)
}

// TimeLocation resolves Location; empty or "Local" is the system zone.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || strings.EqualFold(c.Location, "local") {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Location, err)
	}

	return loc, nil
}

func validateTone(tone *Tone) error {
	if tone.Backend == "" {
		tone.Backend = ToneBackendAuto
	}

	switch tone.Backend {
	case ToneBackendAuto, ToneBackendAudio, ToneBackendBell, ToneBackendNone:
	default:
		return fmt.Errorf("%w: unknown backend %q", errInvalidTone, tone.Backend)
	}

	if tone.Frequency <= 0 {
		tone.Frequency = DefaultToneFrequency
	}

	if tone.Pulse <= 0 {
		tone.Pulse = DefaultTonePulse
	}

	if tone.Period <= 0 {
		tone.Period = DefaultTonePeriod
	}

	if tone.SampleRate <= 0 {
		tone.SampleRate = DefaultToneSampleRate
	}

	if tone.Volume <= 0 {
		tone.Volume = DefaultToneVolume
	}

	if tone.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f above 1", errInvalidTone, tone.Volume)
	}

	if tone.Frequency*2 > float64(tone.SampleRate) {
		return fmt.Errorf("%w: frequency %.0fHz above Nyquist for %dHz", errInvalidTone, tone.Frequency, tone.SampleRate)
	}

	if tone.Pulse >= tone.Period {
		return fmt.Errorf("%w: pulse %s must be shorter than period %s", errInvalidTone, tone.Pulse, tone.Period)
	}

	return nil
}
