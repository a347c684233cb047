// ABOUTME: Tiled surface manager composing layout, cache and renderer
// ABOUTME: Owns the tile set and exposes draw, progress, recenter and export
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/peaks"
)

// SurfaceManager is the drawing-surface capability the facade draws through.
// TiledSurface is the concrete tiled implementation; alternative managers
// (single large surface, GPU-backed) satisfy the same contract.
type SurfaceManager interface {
	// SetWidth lays the surface out for a new total width, invalidating all
	// painted state when the width actually changes.
	SetWidth(totalWidth int)

	// DrawPeaks paints the pixel columns [start, end) from buf, consulting
	// the partial-render cache when enabled. It returns the sub-ranges that
	// were actually painted, in ascending order.
	DrawPeaks(buf *peaks.Buffer, totalWidth, start, end int) []PixelRange

	// SetProgress moves the playhead to fraction of the total width.
	SetProgress(fraction float64)

	// Recenter scrolls so the playhead is centered in a window of
	// visibleWidth pixels, clamped to the surface, and returns the offset.
	Recenter(fraction float64, visibleWidth int) int

	// Image exports one stitched raster of every tile in sequence.
	Image() *image.RGBA

	// TileImages exports one composited raster per tile.
	TileImages() []*image.RGBA

	// Width returns the current total width.
	Width() int

	// Reset drops all tiles and painted state.
	Reset()
}

// TiledSurface manages an ordered set of fixed-capacity tiles covering the
// total waveform width. All operations are synchronous and single-threaded,
// cooperative with the host's event loop.
type TiledSurface struct {
	cfg          Config
	maxTileWidth int

	cache    *RangeCache
	renderer *Renderer

	tiles      []*Tile
	width      int
	playheadPx int
	scrollPx   int
}

// NewTiledSurface creates an empty surface. maxTileWidth must already be
// validated by the caller as an even integer greater than 1.
func NewTiledSurface(cfg Config, maxTileWidth int) *TiledSurface {
	return &TiledSurface{
		cfg:          cfg,
		maxTileWidth: maxTileWidth,
		cache:        NewRangeCache(),
		renderer:     NewRenderer(),
	}
}

// SetWidth recomputes the tile layout for totalWidth. Tiles whose span is
// unchanged are reused so their already-painted pixels survive; everything
// else is recreated. Idempotent when the width is unchanged.
func (s *TiledSurface) SetWidth(totalWidth int) {
	if totalWidth == s.width {
		return
	}

	specs := Layout(totalWidth, s.maxTileWidth, s.cfg.PixelRatio)
	tiles := make([]*Tile, len(specs))
	for i, spec := range specs {
		if i < len(s.tiles) && s.tiles[i].Spec == spec {
			tiles[i] = s.tiles[i]
			continue
		}
		tiles[i] = NewTile(spec, s.cfg)
	}

	s.tiles = tiles
	s.width = totalWidth
	s.cache.Reset()
}

// SetChannelColors replaces the per-lane palette used by subsequent draws.
// The facade calls this after deriving colors for a freshly loaded buffer,
// always together with a surface reset.
func (s *TiledSurface) SetChannelColors(colors []color.RGBA) {
	s.cfg.ChannelColors = colors
}

// DrawPeaks paints [start, end) from buf. With partial render enabled only
// the sub-ranges the cache reports as new are painted; otherwise the whole
// request repaints unconditionally. Sub-ranges are visited left to right and
// tiles in ascending index order.
func (s *TiledSurface) DrawPeaks(buf *peaks.Buffer, totalWidth, start, end int) []PixelRange {
	s.SetWidth(totalWidth)

	if start < 0 {
		start = 0
	}
	if end > s.width {
		end = s.width
	}
	if start >= end {
		return nil
	}

	var missing []PixelRange
	if s.cfg.PartialRender {
		missing = s.cache.Add(s.width, start, end)
	} else {
		missing = []PixelRange{{Start: start, End: end}}
	}

	for _, rng := range missing {
		s.paintRange(buf, rng)
	}
	return missing
}

// paintRange maps one data sub-range onto the tiles its device span crosses
// and paints the tile-clipped portions.
func (s *TiledSurface) paintRange(buf *peaks.Buffer, rng PixelRange) {
	device := rng
	if s.cfg.RTL {
		device = PixelRange{Start: s.width - rng.End, End: s.width - rng.Start}
	}

	for _, tile := range s.tiles {
		drawable := PixelRange{
			Start: tile.Spec.Start,
			End:   tile.Spec.Start + tile.Spec.Width + tile.Spec.Overlap,
		}
		clipped, ok := device.Intersect(drawable)
		if !ok {
			continue
		}
		s.renderer.Paint(tile, buf, clipped, s.width, s.cfg)
	}
}

// SetProgress updates the playhead pixel for every tile. The wave layers are
// untouched; the progress overlay is applied at composite time, so moving the
// playhead costs nothing until the next export.
func (s *TiledSurface) SetProgress(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	s.playheadPx = int(math.Round(fraction * float64(s.width)))
}

// Recenter adjusts the scroll offset so the playhead sits mid-window,
// clamped so the visible window never leaves [0, totalWidth].
func (s *TiledSurface) Recenter(fraction float64, visibleWidth int) int {
	s.SetProgress(fraction)
	return s.SetScroll(s.playheadPx-visibleWidth/2, visibleWidth)
}

// SetScroll stores an explicit scroll offset, clamped so a window of
// visibleWidth pixels never leaves the surface. Returns the clamped offset.
func (s *TiledSurface) SetScroll(offset, visibleWidth int) int {
	maxOffset := s.width - visibleWidth
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	s.scrollPx = offset
	return offset
}

// ScrollOffset returns the current scroll offset in device pixels.
func (s *TiledSurface) ScrollOffset() int {
	return s.scrollPx
}

// Width returns the current total width.
func (s *TiledSurface) Width() int {
	return s.width
}

// Tiles returns the current tile set in ascending order.
func (s *TiledSurface) Tiles() []*Tile {
	return s.tiles
}

// Playhead returns the playhead position in device pixels along the data
// axis.
func (s *TiledSurface) Playhead() int {
	return s.playheadPx
}

// Reset drops all tiles, painted state and the playhead.
func (s *TiledSurface) Reset() {
	s.tiles = nil
	s.width = 0
	s.playheadPx = 0
	s.scrollPx = 0
	s.cache.Reset()
}

// Image stitches every tile into a single raster: channel lanes stacked
// across the waveform axis (or sharing it in overlay mode), wave layers
// below, progress layers composited over the played region.
func (s *TiledSurface) Image() *image.RGBA {
	along := s.width
	across := s.acrossExtent()
	if along <= 0 || across <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	w, h := along, across
	if s.cfg.Vertical {
		w, h = h, w
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	progress := s.progressRegion()
	for _, tile := range s.tiles {
		own := PixelRange{Start: tile.Spec.Start, End: tile.Spec.Start + tile.Spec.Width}
		for ch := 0; ch < tile.Lanes(); ch++ {
			off := s.laneOffset(ch)
			s.blit(out, tile.Wave(ch), own, tile, off)
			if played, ok := own.Intersect(progress); ok {
				s.blit(out, tile.Progress(ch), played, tile, off)
			}
		}
	}
	return out
}

// TileImages exports one composited raster per tile, lanes stacked the same
// way as in Image.
func (s *TiledSurface) TileImages() []*image.RGBA {
	across := s.acrossExtent()
	progress := s.progressRegion()

	out := make([]*image.RGBA, len(s.tiles))
	for i, tile := range s.tiles {
		w, h := tile.Spec.Width, across
		if s.cfg.Vertical {
			w, h = h, w
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		own := PixelRange{Start: tile.Spec.Start, End: tile.Spec.Start + tile.Spec.Width}
		for ch := 0; ch < tile.Lanes(); ch++ {
			off := s.laneOffset(ch)
			s.blitLocal(img, tile.Wave(ch), own, tile, off)
			if played, ok := own.Intersect(progress); ok {
				s.blitLocal(img, tile.Progress(ch), played, tile, off)
			}
		}
		out[i] = img
	}
	return out
}

// acrossExtent is the exported raster's extent across the waveform axis.
// In split mode the lane count comes from the channel palette, so exports
// before the first draw already reserve the stacked height.
func (s *TiledSurface) acrossExtent() int {
	lanes := 1
	if s.cfg.SplitChannels && !s.cfg.Overlay {
		if len(s.tiles) > 0 && s.tiles[0].Lanes() > 0 {
			lanes = s.tiles[0].Lanes()
		} else if n := len(s.cfg.ChannelColors); n > 0 {
			lanes = n
		}
	}
	return lanes * s.cfg.Height
}

// laneOffset is lane ch's offset across the waveform axis.
func (s *TiledSurface) laneOffset(ch int) int {
	if s.cfg.Overlay {
		return 0
	}
	return ch * s.cfg.Height
}

// progressRegion is the device span covered by the played fraction: left of
// the playhead, or right of it when the draw direction is mirrored.
func (s *TiledSurface) progressRegion() PixelRange {
	if s.cfg.RTL {
		return PixelRange{Start: s.width - s.playheadPx, End: s.width}
	}
	return PixelRange{Start: 0, End: s.playheadPx}
}

// blit copies the device span rng of one tile layer into the stitched image
// at lane offset off.
func (s *TiledSurface) blit(dst *image.RGBA, layer *image.RGBA, rng PixelRange, tile *Tile, off int) {
	if layer == nil || rng.Start >= rng.End {
		return
	}
	local := tile.LocalX(rng.Start)
	if s.cfg.Vertical {
		r := image.Rect(off, rng.Start, off+s.cfg.Height, rng.End)
		draw.Draw(dst, r, layer, image.Pt(0, local), draw.Over)
		return
	}
	r := image.Rect(rng.Start, off, rng.End, off+s.cfg.Height)
	draw.Draw(dst, r, layer, image.Pt(local, 0), draw.Over)
}

// blitLocal copies the device span rng of one tile layer into that tile's
// own export raster.
func (s *TiledSurface) blitLocal(dst *image.RGBA, layer *image.RGBA, rng PixelRange, tile *Tile, off int) {
	if layer == nil || rng.Start >= rng.End {
		return
	}
	local := tile.LocalX(rng.Start)
	if s.cfg.Vertical {
		r := image.Rect(off, local, off+s.cfg.Height, local+rng.Len())
		draw.Draw(dst, r, layer, image.Pt(0, local), draw.Over)
		return
	}
	r := image.Rect(local, off, local+rng.Len(), off+s.cfg.Height)
	draw.Draw(dst, r, layer, image.Pt(local, 0), draw.Over)
}
