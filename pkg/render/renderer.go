// ABOUTME: Peak renderer rasterizing amplitude columns onto tile layers
// ABOUTME: Implements decimation, normalization, bar and outline geometry
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/peaks"
)

// ColumnExtent is the normalized signed extent of one pixel column: Max is
// the upper (or right, in vertical orientation) excursion, Min the lower.
// Both are in [-1, 1]. A silent column is {0, 0}.
type ColumnExtent struct {
	Max float64
	Min float64
}

// Extents decimates samples into per-column extents for the device columns
// [rng.Start, rng.End) of a waveform totalWidth columns wide, dividing by
// divisor. When len(samples) == 2*totalWidth the stream is treated as
// pre-decimated alternating max/min pairs and each column consumes exactly
// two consecutive entries. Otherwise each column x spans the sample window
// [round(x*spp), round((x+1)*spp)) with spp = len(samples)/totalWidth and
// edges rounded half away from zero. Empty windows and non-finite samples
// yield silent columns rather than errors.
func Extents(samples []float64, totalWidth int, rng PixelRange, divisor float64) []ColumnExtent {
	if divisor <= 0 {
		divisor = 1
	}
	if rng.Start >= rng.End || totalWidth <= 0 {
		return nil
	}

	out := make([]ColumnExtent, rng.Len())
	n := len(samples)
	if n == 0 {
		return out
	}

	paired := n == 2*totalWidth
	spp := float64(n) / float64(totalWidth)

	for i := range out {
		x := rng.Start + i
		var maxS, minS float64
		var seen bool

		if paired {
			if 2*x+1 < n {
				maxS, minS = samples[2*x], samples[2*x+1]
				seen = finite(maxS) && finite(minS)
			}
		} else {
			lo := int(math.Round(float64(x) * spp))
			hi := int(math.Round(float64(x+1) * spp))
			if lo < 0 {
				lo = 0
			}
			if hi > n {
				hi = n
			}
			for s := lo; s < hi; s++ {
				v := samples[s]
				if !finite(v) {
					continue
				}
				if !seen || v > maxS {
					maxS = v
				}
				if !seen || v < minS {
					minS = v
				}
				seen = true
			}
		}

		if !seen {
			continue
		}
		out[i] = ColumnExtent{
			Max: clampUnit(maxS / divisor),
			Min: clampUnit(minS / divisor),
		}
	}
	return out
}

// Renderer rasterizes peak columns onto tile layers. It is stateless; one
// renderer can serve any number of tiles.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Paint rasterizes the device-pixel columns [rng.Start, rng.End) onto every
// channel lane of tile, leaving columns outside rng untouched. rng must
// already be clipped to the tile's drawable span (its width plus the seam
// overlap). totalWidth is the full waveform width used for decimation and
// for RTL mirroring of the data axis.
func (r *Renderer) Paint(tile *Tile, buf *peaks.Buffer, rng PixelRange, totalWidth int, cfg Config) {
	if tile == nil || buf == nil || rng.Start >= rng.End {
		return
	}

	laneCount := 1
	if cfg.SplitChannels {
		laneCount = buf.Channels()
	}
	tile.EnsureLanes(laneCount, cfg)

	extRng := r.extentRange(rng, totalWidth, cfg)

	for ch := 0; ch < laneCount; ch++ {
		samples := buf.Channel(ch)
		divisor := r.divisor(buf, ch, cfg)

		extents := r.deviceExtents(samples, totalWidth, extRng, divisor, cfg)
		waveColor, progressColor := cfg.laneColors(ch)

		r.paintLane(tile.Wave(ch), tile, rng, extRng, extents, waveColor, cfg)
		if !cfg.progressSkipped(ch) {
			r.paintLane(tile.Progress(ch), tile, rng, extRng, extents, progressColor, cfg)
		}
	}
}

// extentRange widens rng to whole bar-grid cells, so a bar straddling the
// requested range aggregates its full column window rather than only the
// in-range part. Columns outside rng are still never written.
func (r *Renderer) extentRange(rng PixelRange, totalWidth int, cfg Config) PixelRange {
	if cfg.BarWidth <= 0 || cfg.BarGap <= 0 {
		return rng
	}
	step := cfg.BarWidth + cfg.BarGap
	start := (rng.Start / step) * step
	end := ((rng.End-1)/step)*step + cfg.BarWidth
	if end < rng.End {
		end = rng.End
	}
	if end > totalWidth {
		end = totalWidth
	}
	return PixelRange{Start: start, End: end}
}

// divisor picks the normalization divisor for one channel.
func (r *Renderer) divisor(buf *peaks.Buffer, ch int, cfg Config) float64 {
	return LaneDivisor(buf, ch, cfg)
}

// LaneDivisor returns the normalization divisor for channel ch under cfg:
// the fixed PeakMax scale, or the observed absolute maximum when Normalize
// is on (per channel when RelativeNormalization applies to split lanes).
// With normalize enabled the loudest observed peak maps to full visual
// amplitude.
func LaneDivisor(buf *peaks.Buffer, ch int, cfg Config) float64 {
	divisor := buf.Scale()
	if cfg.Normalize {
		var observed float64
		if cfg.RelativeNormalization && cfg.SplitChannels {
			observed = buf.ChannelAbsMax(ch)
		} else {
			observed = buf.AbsMax()
		}
		if observed > 0 {
			divisor = observed
		}
	}
	return divisor
}

// deviceExtents returns extents indexed by device column for [rng.Start,
// rng.End). With RTL the data axis runs mirrored against the device axis, so
// device column dx shows data column totalWidth-1-dx.
func (r *Renderer) deviceExtents(samples []float64, totalWidth int, rng PixelRange, divisor float64, cfg Config) []ColumnExtent {
	if !cfg.RTL {
		return Extents(samples, totalWidth, rng, divisor)
	}
	mirrored := Extents(samples, totalWidth, PixelRange{
		Start: totalWidth - rng.End,
		End:   totalWidth - rng.Start,
	}, divisor)
	for i, j := 0, len(mirrored)-1; i < j; i, j = i+1, j-1 {
		mirrored[i], mirrored[j] = mirrored[j], mirrored[i]
	}
	return mirrored
}

// paintLane rasterizes extents onto one layer in a single color, in bar or
// outline geometry. extents are indexed by extRng, which covers rng.
func (r *Renderer) paintLane(layer *image.RGBA, tile *Tile, rng, extRng PixelRange, extents []ColumnExtent, col color.RGBA, cfg Config) {
	if layer == nil {
		return
	}
	if cfg.BarWidth > 0 {
		r.paintBars(layer, tile, rng, extRng, extents, col, cfg)
		return
	}
	r.paintOutline(layer, tile, rng, extents, col, cfg)
}

// paintBars draws filled (optionally rounded) bars on the global bar grid.
// A bar straddling the requested range is sized from its full column window
// but only its in-range pixels are written, so successive partial draws of
// the same bar meet at the same height and corner shape.
func (r *Renderer) paintBars(layer *image.RGBA, tile *Tile, rng, extRng PixelRange, extents []ColumnExtent, col color.RGBA, cfg Config) {
	barWidth := cfg.BarWidth
	step := barWidth + cfg.BarGap
	if cfg.BarGap == 0 {
		// Legacy dense mode: edge-to-edge, one bar per pixel column.
		barWidth, step = 1, 1
	}

	firstBar := (rng.Start / step) * step
	for barX := firstBar; barX < rng.End; barX += step {
		top, height := r.barExtent(extents, extRng, barX, barX+barWidth, cfg)
		if height <= 0 {
			continue
		}

		clip := PixelRange{
			Start: tile.LocalX(max(barX, rng.Start)),
			End:   tile.LocalX(min(barX+barWidth, rng.End)),
		}
		if clip.Start >= clip.End {
			continue
		}
		r.fillRoundedRect(layer, tile.LocalX(barX), top, barWidth, height, cfg.BarRadius, clip, col, cfg)
	}
}

// barExtent aggregates the column extents covered by one bar and converts
// them to a pixel span across the waveform axis.
func (r *Renderer) barExtent(extents []ColumnExtent, extRng PixelRange, barStart, barEnd int, cfg Config) (top, height int) {
	var maxV, minV float64
	var seen bool
	for x := max(barStart, extRng.Start); x < min(barEnd, extRng.End); x++ {
		e := extents[x-extRng.Start]
		if !seen || e.Max > maxV {
			maxV = e.Max
		}
		if !seen || e.Min < minV {
			minV = e.Min
		}
		seen = true
	}
	if !seen {
		return 0, 0
	}
	return r.verticalSpan(maxV, minV, cfg)
}

// paintOutline draws the continuous silhouette: a filled span per column
// between the column's maximum and minimum extents. Outline mode never
// widens the extent range, so extents align with rng.
func (r *Renderer) paintOutline(layer *image.RGBA, tile *Tile, rng PixelRange, extents []ColumnExtent, col color.RGBA, cfg Config) {
	for i, e := range extents {
		top, height := r.verticalSpan(e.Max, e.Min, cfg)
		if height <= 0 {
			continue
		}
		lx := tile.LocalX(rng.Start + i)
		r.fillRoundedRect(layer, lx, top, 1, height, 0, PixelRange{Start: lx, End: lx + 1}, col, cfg)
	}
}

// verticalSpan converts normalized extents into a pixel span across the
// waveform axis, symmetric about the center line. The max and min excursions
// are placed independently so asymmetric waveforms keep their shape. The
// span is floored to BarMinHeight when the column carries signal.
func (r *Renderer) verticalSpan(maxV, minV float64, cfg Config) (top, height int) {
	half := float64(cfg.Height) / 2
	scale := cfg.barScale()

	center := cfg.Height / 2
	top = center - int(math.Round(maxV*half*scale))
	bottom := center - int(math.Round(minV*half*scale))
	height = bottom - top

	silent := maxV == 0 && minV == 0
	if silent {
		return 0, 0
	}
	if cfg.BarMinHeight > 0 && height < cfg.BarMinHeight {
		deficit := cfg.BarMinHeight - height
		top -= deficit / 2
		height = cfg.BarMinHeight
	}
	if height <= 0 {
		return 0, 0
	}
	if top < 0 {
		height += top
		top = 0
	}
	if top+height > cfg.Height {
		height = cfg.Height - top
	}
	return top, height
}

// fillRoundedRect fills a rectangle on the layer whose first axis runs along
// the waveform and whose second runs across it; vertical orientation swaps
// the two before touching pixels. Only layer columns inside clip (along the
// waveform axis) are written, which keeps partial draws of one shape
// composable. radius rounds the corners, clipped to half the smaller
// rectangle dimension.
func (r *Renderer) fillRoundedRect(layer *image.RGBA, x, y, w, h, radius int, clip PixelRange, col color.RGBA, cfg Config) {
	if w <= 0 || h <= 0 {
		return
	}
	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}

	for dx := 0; dx < w; dx++ {
		if x+dx < clip.Start || x+dx >= clip.End {
			continue
		}
		for dy := 0; dy < h; dy++ {
			if radius > 0 && outsideCorner(dx, dy, w, h, radius) {
				continue
			}
			px, py := x+dx, y+dy
			if cfg.Vertical {
				px, py = py, px
			}
			if image.Pt(px, py).In(layer.Rect) {
				layer.SetRGBA(px, py, col)
			}
		}
	}
}

// outsideCorner reports whether the pixel falls outside a rounded corner of
// radius radius in a w by h rectangle.
func outsideCorner(dx, dy, w, h, radius int) bool {
	cx, cy := dx, dy
	if cx >= w-radius {
		cx = dx - (w - radius - 1)
	} else if cx >= radius {
		return false
	} else {
		cx = radius - 1 - dx
	}
	if cy >= h-radius {
		cy = dy - (h - radius - 1)
	} else if cy >= radius {
		return false
	} else {
		cy = radius - 1 - dy
	}
	return cx*cx+cy*cy > radius*radius
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
