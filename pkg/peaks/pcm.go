// ABOUTME: Peak extraction from decoded PCM buffers
// ABOUTME: Produces alternating max/min pair streams from go-audio buffers
package peaks

import (
	"fmt"

	"github.com/go-audio/audio"
)

// FromPCMBuffer decimates an interleaved integer PCM buffer into a peak
// buffer with one channel per source channel. Every window of framesPerPair
// frames yields two consecutive entries per channel: the signed maximum
// followed by the signed minimum, the pre-decimated pair stream the renderer
// consumes without further windowing. PeakMax is derived from the source bit
// depth (32767 for 16-bit and so on).
func FromPCMBuffer(buf *audio.IntBuffer, framesPerPair int) (*Buffer, error) {
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: nil or empty PCM buffer", ErrEmpty)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("peaks: PCM buffer has no format")
	}
	if framesPerPair < 1 {
		framesPerPair = 1
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	pairs := (frames + framesPerPair - 1) / framesPerPair

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, 2*pairs)
	}

	for p := 0; p < pairs; p++ {
		lo := p * framesPerPair
		hi := lo + framesPerPair
		if hi > frames {
			hi = frames
		}
		for ch := 0; ch < channels; ch++ {
			maxS, minS := windowExtent(buf.Data, lo, hi, ch, channels)
			out[ch][2*p] = maxS
			out[ch][2*p+1] = minS
		}
	}

	bits := buf.SourceBitDepth
	if bits == 0 {
		bits = 16
	}
	peakMax := float64(int64(1)<<(bits-1)) - 1

	return NewMultiChannel(out, peakMax)
}

// FromFloatBuffer is FromPCMBuffer for float PCM in [-1, 1].
func FromFloatBuffer(buf *audio.FloatBuffer, framesPerPair int) (*Buffer, error) {
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: nil or empty PCM buffer", ErrEmpty)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("peaks: PCM buffer has no format")
	}
	if framesPerPair < 1 {
		framesPerPair = 1
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	pairs := (frames + framesPerPair - 1) / framesPerPair

	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, 2*pairs)
	}

	for p := 0; p < pairs; p++ {
		lo := p * framesPerPair
		hi := lo + framesPerPair
		if hi > frames {
			hi = frames
		}
		for ch := 0; ch < channels; ch++ {
			maxS, minS := windowExtentFloat(buf.Data, lo, hi, ch, channels)
			out[ch][2*p] = maxS
			out[ch][2*p+1] = minS
		}
	}

	// Float PCM is already unit-normalized.
	return NewMultiChannel(out, 0)
}

// windowExtent scans frames [lo, hi) of one channel in interleaved int data.
func windowExtent(data []int, lo, hi, ch, channels int) (maxS, minS float64) {
	for f := lo; f < hi; f++ {
		s := float64(data[f*channels+ch])
		if f == lo || s > maxS {
			maxS = s
		}
		if f == lo || s < minS {
			minS = s
		}
	}
	return maxS, minS
}

// windowExtentFloat scans frames [lo, hi) of one channel in interleaved float data.
func windowExtentFloat(data []float64, lo, hi, ch, channels int) (maxS, minS float64) {
	for f := lo; f < hi; f++ {
		s := data[f*channels+ch]
		if f == lo || s > maxS {
			maxS = s
		}
		if f == lo || s < minS {
			minS = s
		}
	}
	return maxS, minS
}
