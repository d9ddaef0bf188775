package tone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrBackendUnavailable is returned when no audio device can be opened.
var ErrBackendUnavailable = errors.New("audio backend unavailable")

// Emitter plays a single pulse. Implementations must not block for the
// full pulse duration longer than necessary and must be safe for
// sequential use from one goroutine.
type Emitter interface {
	Emit(ctx context.Context, p Pulse) error
	Close() error
}

// NopEmitter drops every pulse.
type NopEmitter struct{}

// Emit does nothing.
func (NopEmitter) Emit(context.Context, Pulse) error { return nil }

// Close does nothing.
func (NopEmitter) Close() error { return nil }

// BellEmitter rings the terminal bell once per pulse.
type BellEmitter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBellEmitter writes BEL characters to out.
func NewBellEmitter(out io.Writer) *BellEmitter {
	return &BellEmitter{out: out}
}

// Emit writes a BEL character.
func (b *BellEmitter) Emit(context.Context, Pulse) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := io.WriteString(b.out, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}

	return nil
}

// Close does nothing; the writer is owned by the caller.
func (b *BellEmitter) Close() error { return nil }
