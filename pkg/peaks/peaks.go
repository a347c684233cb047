// ABOUTME: Peak buffer type definitions
// ABOUTME: Holds per-channel amplitude sequences and their scale
package peaks

import (
	"fmt"
	"math"
)

// Buffer holds an ordered sequence of signed amplitude samples, optionally
// split into independent channels. All channels have equal length and the
// length is immutable for the lifetime of one loaded buffer.
type Buffer struct {
	channels [][]float64
	peakMax  float64
}

// New creates a single-channel buffer. peakMax is the caller-supplied sample
// scale (e.g. 1.0 for normalized floats, 32767 for 16-bit PCM); 0 means the
// samples are already in [-1, 1].
func New(samples []float64, peakMax float64) *Buffer {
	return &Buffer{
		channels: [][]float64{samples},
		peakMax:  peakMax,
	}
}

// NewMultiChannel creates a buffer with one amplitude sequence per channel.
// All channels must have the same length.
func NewMultiChannel(channels [][]float64, peakMax float64) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrEmpty)
	}
	want := len(channels[0])
	for i, ch := range channels {
		if len(ch) != want {
			return nil, fmt.Errorf("%w: channel 0 has %d samples, channel %d has %d",
				ErrChannelLength, want, i, len(ch))
		}
	}
	return &Buffer{channels: channels, peakMax: peakMax}, nil
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return len(b.channels)
}

// Len returns the per-channel sample count.
func (b *Buffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}
	return len(b.channels[0])
}

// Channel returns the sample sequence for channel i. The returned slice must
// be treated as read-only.
func (b *Buffer) Channel(i int) []float64 {
	return b.channels[i]
}

// PeakMax returns the caller-supplied sample scale.
func (b *Buffer) PeakMax() float64 {
	return b.peakMax
}

// Scale returns the divisor that maps raw samples into [-1, 1]: PeakMax when
// positive, otherwise 1 (samples assumed already normalized).
func (b *Buffer) Scale() float64 {
	if b.peakMax > 0 {
		return b.peakMax
	}
	return 1
}

// AbsMax returns the largest absolute sample across every channel.
// Non-finite samples are ignored.
func (b *Buffer) AbsMax() float64 {
	maxAbs := 0.0
	for i := range b.channels {
		if m := b.ChannelAbsMax(i); m > maxAbs {
			maxAbs = m
		}
	}
	return maxAbs
}

// ChannelAbsMax returns the largest absolute sample within channel i.
// Non-finite samples are ignored.
func (b *Buffer) ChannelAbsMax(i int) float64 {
	maxAbs := 0.0
	for _, s := range b.channels[i] {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		if a := math.Abs(s); a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs
}
