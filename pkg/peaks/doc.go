// ABOUTME: Package documentation for peaks
// ABOUTME: Describes the peak buffer data model and PCM extraction
// Package peaks holds pre-computed amplitude samples for waveform rendering.
//
// A Buffer is one or more equal-length channels of signed float64 samples
// plus the scale (PeakMax) that maps them into [-1, 1]:
//   - Buffer: immutable per-channel amplitude sequences
//   - FromPCMBuffer / FromFloatBuffer: windowed min/max extraction from
//     decoded PCM, producing the alternating max/min pair stream that the
//     renderer can consume one pair per pixel column
//
// Example:
//
//	buf := peaks.New([]float64{0, 100, 45, 11, 202, 68, 240}, 255)
//	scale := buf.Scale() // 255
package peaks
