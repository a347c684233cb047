// ABOUTME: Package documentation for wavecanvas
// ABOUTME: Describes the facade API over the rendering engine
// Package wavecanvas renders navigable waveform visualizations from
// pre-computed amplitude peaks. No audio is decoded or played; the input is
// a peak sequence plus a duration, the output is a painted tiled surface.
//
// The Canvas facade owns the configuration and the loaded peak buffer and
// drives the render engine:
//
//	canvas, err := wavecanvas.New(wavecanvas.Options{
//	    Height:      128,
//	    MinPxPerSec: 20,
//	    WaveColor:   "#999999",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	canvas.Load([]float64{0, 100, 45, 11, 202, 68, 240}, 1.0, 255)
//	canvas.DrawBuffer()
//	canvas.WritePNG(out)
//
// Redraw and scroll notifications are published on the bus returned by
// Events, and mirrored through the OnRedraw/OnScroll option callbacks.
package wavecanvas
