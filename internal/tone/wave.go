package tone

import (
	"encoding/binary"
	"math"
	"time"
)

// bytesPerSample is the size of one mono signed 16-bit little-endian sample.
const bytesPerSample = 2

// Pulse describes a single beep.
type Pulse struct {
	// Frequency of the square wave in Hz.
	Frequency float64
	// Duration of the beep.
	Duration time.Duration
	// Volume is the amplitude in the range (0, 1].
	Volume float64
}

// SampleCount returns how many samples the pulse spans at sampleRate.
func (p Pulse) SampleCount(sampleRate int) int {
	return int(p.Duration.Seconds() * float64(sampleRate))
}

// SquareWave renders the pulse as mono signed 16-bit little-endian PCM.
func SquareWave(p Pulse, sampleRate int) []byte {
	n := p.SampleCount(sampleRate)
	if n <= 0 || p.Frequency <= 0 {
		return nil
	}

	volume := math.Min(math.Max(p.Volume, 0), 1)
	amplitude := int16(volume * math.MaxInt16)
	samplesPerCycle := float64(sampleRate) / p.Frequency

	pcm := make([]byte, n*bytesPerSample)

	for i := 0; i < n; i++ {
		phase := math.Mod(float64(i), samplesPerCycle) / samplesPerCycle

		sample := amplitude
		if phase >= 0.5 {
			sample = -amplitude
		}

		binary.LittleEndian.PutUint16(pcm[i*bytesPerSample:], uint16(sample))
	}

	return pcm
}
