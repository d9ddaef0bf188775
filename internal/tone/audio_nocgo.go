//go:build !cgo

package tone

import (
	"context"
	"fmt"
)

// AudioEmitter is unavailable in builds without cgo.
type AudioEmitter struct{}

// NewAudioEmitter always fails without cgo.
func NewAudioEmitter(int) (*AudioEmitter, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrBackendUnavailable)
}

// Emit always fails without cgo.
func (*AudioEmitter) Emit(context.Context, Pulse) error { return ErrBackendUnavailable }

// Close does nothing.
func (*AudioEmitter) Close() error { return nil }
