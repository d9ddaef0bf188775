package tone

import (
	"context"
	"fmt"
	"io"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// NewEmitter builds the emitter for the configured backend.
// "auto" falls back to a silent emitter when the audio device cannot be opened;
// "audio" reports the failure instead.
//
//nolint:ireturn // The backend is chosen at runtime.
func NewEmitter(ctx context.Context, settings config.Tone, bell io.Writer) (Emitter, error) {
	switch settings.Backend {
	case config.ToneBackendNone:
		return NopEmitter{}, nil
	case config.ToneBackendBell:
		return NewBellEmitter(bell), nil
	case config.ToneBackendAudio:
		emitter, err := NewAudioEmitter(settings.SampleRate)
		if err != nil {
			return nil, err
		}

		return emitter, nil
	case config.ToneBackendAuto, "":
		emitter, err := NewAudioEmitter(settings.SampleRate)
		if err != nil {
			logger.DebugKV(ctx, "Audio backend unavailable, tone is silent", "error", err)
			return NopEmitter{}, nil
		}

		return emitter, nil
	default:
		return nil, fmt.Errorf("unknown tone backend %q", settings.Backend)
	}
}

// PulseFromConfig converts the tone settings into a pulse.
func PulseFromConfig(settings config.Tone) Pulse {
	return Pulse{
		Frequency: settings.Frequency,
		Duration:  settings.Pulse,
		Volume:    settings.Volume,
	}
}
