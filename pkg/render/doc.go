// ABOUTME: Package documentation for render
// ABOUTME: Describes the tiled waveform rendering engine
// Package render is the waveform rendering engine: it turns a peak buffer
// plus a requested pixel window into painted drawing tiles.
//
// The engine is built from four pieces, leaves first:
//   - RangeCache: interval bookkeeping so redraws repaint only pixel ranges
//     not already painted for the current width
//   - Layout / TileSpec: splits a total pixel width into fixed-capacity tile
//     spans with a shared seam overlap
//   - Renderer: decimates peaks into per-column extents and rasterizes bars
//     or a continuous outline onto a tile's wave and progress layers
//   - TiledSurface: owns the ordered tile set and composes the three above
//     behind the SurfaceManager contract
//
// All operations are synchronous and single-threaded; the peak buffer is
// treated as immutable for the duration of a draw call.
//
// Example:
//
//	cfg := render.Config{Height: 128, PixelRatio: 1, WaveColor: gray, ProgressColor: dark}
//	surface := render.NewTiledSurface(cfg, 4000)
//	surface.DrawPeaks(buf, 800, 0, 800)
//	img := surface.Image()
package render
