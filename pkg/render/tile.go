// ABOUTME: Drawing tile owning per-channel wave and progress layers
// ABOUTME: Maps global pixel columns onto lazily allocated RGBA surfaces
package render

import "image"

// lane is one channel's pair of overlaid drawing layers.
type lane struct {
	wave     *image.RGBA
	progress *image.RGBA
}

// Tile is one fixed-capacity drawing surface covering
// [Spec.Start, Spec.Start+Spec.Width) of the global pixel axis. Its backing
// images are Spec.Overlap columns wider than the span so strokes at the right
// seam land on this tile as well as the neighbor that redraws them.
type Tile struct {
	Spec  TileSpec
	lanes []lane

	// canvasW/canvasH are the per-lane layer dimensions along the waveform
	// axis and across it, before any orientation swap.
	canvasW int
	canvasH int
}

// NewTile allocates a tile for spec. Layer images are created on first
// EnsureLanes call, once the channel count is known.
func NewTile(spec TileSpec, cfg Config) *Tile {
	return &Tile{
		Spec:    spec,
		canvasW: spec.Width + spec.Overlap,
		canvasH: cfg.Height,
	}
}

// EnsureLanes makes sure the tile owns count wave/progress pairs, allocating
// them on demand. Growing or shrinking the lane count drops all pixels, which
// is fine: the surface manager only changes it together with a full redraw.
func (t *Tile) EnsureLanes(count int, cfg Config) {
	if len(t.lanes) == count {
		return
	}
	w, h := t.canvasW, t.canvasH
	if cfg.Vertical {
		w, h = h, w
	}
	t.lanes = make([]lane, count)
	for i := range t.lanes {
		t.lanes[i] = lane{
			wave:     image.NewRGBA(image.Rect(0, 0, w, h)),
			progress: image.NewRGBA(image.Rect(0, 0, w, h)),
		}
	}
}

// Lanes returns the number of allocated channel lanes.
func (t *Tile) Lanes() int {
	return len(t.lanes)
}

// Wave returns the wave layer for lane ch, or nil when unallocated.
func (t *Tile) Wave(ch int) *image.RGBA {
	if ch < 0 || ch >= len(t.lanes) {
		return nil
	}
	return t.lanes[ch].wave
}

// Progress returns the progress layer for lane ch, or nil when unallocated.
func (t *Tile) Progress(ch int) *image.RGBA {
	if ch < 0 || ch >= len(t.lanes) {
		return nil
	}
	return t.lanes[ch].progress
}

// Contains reports whether global pixel column x lands in this tile's span
// (the overlap margin does not claim columns; the right neighbor owns them).
func (t *Tile) Contains(x int) bool {
	return x >= t.Spec.Start && x < t.Spec.Start+t.Spec.Width
}

// LocalX converts a global pixel column to this tile's layer column.
func (t *Tile) LocalX(x int) int {
	return x - t.Spec.Start
}

// CanvasWidth returns the layer width along the waveform axis, including the
// seam overlap.
func (t *Tile) CanvasWidth() int {
	return t.canvasW
}

// CanvasHeight returns the per-lane layer extent across the waveform axis.
func (t *Tile) CanvasHeight() int {
	return t.canvasH
}
