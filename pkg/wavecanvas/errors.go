// ABOUTME: Configuration error sentinels for the facade
// ABOUTME: Raised synchronously at call time, fatal to that call
package wavecanvas

import "errors"

var (
	// ErrInvalidMaxCanvasWidth is returned by New when MaxCanvasWidth is not
	// an even integer greater than 1. Checked before any tile is created.
	ErrInvalidMaxCanvasWidth = errors.New("wavecanvas: maxCanvasWidth must be an even integer greater than 1")

	// ErrBadColor is returned by New when a color option fails to parse.
	ErrBadColor = errors.New("wavecanvas: invalid color")

	// ErrNoPeaks is returned by Load for an empty peak sequence, and by draw
	// operations before any buffer is loaded.
	ErrNoPeaks = errors.New("wavecanvas: no peaks")

	// ErrInvalidDuration is returned by Load for a non-positive duration.
	ErrInvalidDuration = errors.New("wavecanvas: duration must be positive")
)
