//go:build cgo

package tone

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// drainPollInterval is how often a finished player is checked for release.
const drainPollInterval = 20 * time.Millisecond

var (
	//nolint:gochecknoglobals // oto allows a single context per process.
	otoOnce sync.Once
	//nolint:gochecknoglobals // oto allows a single context per process.
	otoContext *oto.Context
	//nolint:gochecknoglobals // oto allows a single context per process.
	otoErr error
)

// AudioEmitter plays square-wave pulses through the system audio device.
type AudioEmitter struct {
	ctx        *oto.Context
	sampleRate int

	mu    sync.Mutex
	cache map[Pulse][]byte
}

// NewAudioEmitter opens the audio device at sampleRate.
// Only the first sample rate requested in a process is honored by the device.
func NewAudioEmitter(sampleRate int) (*AudioEmitter, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
			return
		}

		<-ready

		otoContext = ctx
	})

	if otoErr != nil {
		return nil, otoErr
	}

	return &AudioEmitter{
		ctx:        otoContext,
		sampleRate: sampleRate,
		cache:      make(map[Pulse][]byte, 1),
	}, nil
}

// Emit starts playing the pulse and returns; the player is released once drained.
func (a *AudioEmitter) Emit(ctx context.Context, p Pulse) error {
	if err := a.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	player := a.ctx.NewPlayer(bytes.NewReader(a.pcm(p)))
	player.Play()

	go func() {
		ticker := time.NewTicker(drainPollInterval)
		defer ticker.Stop()

		for player.IsPlaying() {
			select {
			case <-ctx.Done():
				player.Pause()
			case <-ticker.C:
			}
		}

		_ = player.Close()
	}()

	return nil
}

// Close is a no-op: the shared device stays open for the process lifetime.
func (a *AudioEmitter) Close() error { return nil }

func (a *AudioEmitter) pcm(p Pulse) []byte {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, ok := a.cache[p]
	if !ok {
		data = SquareWave(p, a.sampleRate)
		a.cache[p] = data
	}

	return data
}
