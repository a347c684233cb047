// ABOUTME: Facade configuration options and defaulting
// ABOUTME: Parses colors and builds the immutable render config
package wavecanvas

import (
	"fmt"
	"image/color"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/peaks"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/render"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Options holds the visualization configuration. It is read once by New;
// later mutation has no effect on a constructed Canvas.
type Options struct {
	// Height is the lane height in device-independent pixels (default: 128).
	Height int

	// MinPxPerSec sets the zoom level: pixel columns per second of audio
	// (default: 50).
	MinPxPerSec float64

	// PixelRatio scales device-independent to device pixels (default: 1).
	PixelRatio float64

	// MaxCanvasWidth caps a single drawing tile's width in device pixels.
	// Must be an even integer greater than 1 (default: 4000).
	MaxCanvasWidth int

	// ContainerWidth is the host's visible width in device-independent
	// pixels, used by FillParent and autoscroll.
	ContainerWidth int

	// FillParent collapses the waveform to the container width instead of
	// scrolling; it takes effect once ContainerWidth is set. ScrollParent
	// enables scrolling with overflow and centered autoscroll on progress.
	FillParent   bool
	ScrollParent bool

	// PartialRender repaints only pixel ranges not already painted for the
	// current width.
	PartialRender bool

	// Bar geometry in device-independent pixels. BarWidth 0 selects the
	// continuous outline mode.
	BarWidth     int
	BarGap       int
	BarRadius    int
	BarHeight    float64
	BarMinHeight int

	Normalize bool
	Vertical  bool
	RTL       bool

	WaveColor     string // default: "#999999"
	ProgressColor string // default: "#555555"

	SplitChannels        bool
	SplitChannelsOptions SplitChannelsOptions

	// OnRedraw fires after a draw with the peak buffer and resulting width.
	OnRedraw func(buf *peaks.Buffer, width int)

	// OnScroll fires when the visible window is panned, with the new offset
	// in device pixels.
	OnScroll func(offset int)

	// OnError fires when a host-driven operation (zoom, resize) fails, in
	// addition to the returned error.
	OnError func(err error)
}

// SplitChannelsOptions tunes per-channel rendering when SplitChannels is on.
type SplitChannelsOptions struct {
	// Overlay draws channel lanes on top of each other instead of stacking.
	Overlay bool

	// ChannelColors assigns a wave color per channel index. Missing entries
	// are derived from WaveColor with rotated hues.
	ChannelColors []string

	// FilterChannels lists channel indices to hide.
	FilterChannels []int

	// RelativeNormalization normalizes each channel against its own maximum
	// instead of the shared one.
	RelativeNormalization bool
}

// withDefaults fills unset option fields.
func (o Options) withDefaults() Options {
	if o.Height == 0 {
		o.Height = 128
	}
	if o.MinPxPerSec == 0 {
		o.MinPxPerSec = 50
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = 1
	}
	if o.MaxCanvasWidth == 0 {
		o.MaxCanvasWidth = 4000
	}
	if o.WaveColor == "" {
		o.WaveColor = "#999999"
	}
	if o.ProgressColor == "" {
		o.ProgressColor = "#555555"
	}
	return o
}

// renderConfig validates the options and builds the immutable render config:
// colors parsed, device-independent lengths scaled by the pixel ratio.
func (o Options) renderConfig() (render.Config, error) {
	if o.MaxCanvasWidth <= 1 || o.MaxCanvasWidth%2 != 0 {
		return render.Config{}, fmt.Errorf("%w: got %d", ErrInvalidMaxCanvasWidth, o.MaxCanvasWidth)
	}

	waveColor, err := parseColor(o.WaveColor)
	if err != nil {
		return render.Config{}, err
	}
	progressColor, err := parseColor(o.ProgressColor)
	if err != nil {
		return render.Config{}, err
	}

	cfg := render.Config{
		Height:                scalePx(o.Height, o.PixelRatio),
		PixelRatio:            o.PixelRatio,
		BarWidth:              scalePx(o.BarWidth, o.PixelRatio),
		BarGap:                scalePx(o.BarGap, o.PixelRatio),
		BarRadius:             scalePx(o.BarRadius, o.PixelRatio),
		BarHeight:             o.BarHeight,
		BarMinHeight:          scalePx(o.BarMinHeight, o.PixelRatio),
		Normalize:             o.Normalize,
		RelativeNormalization: o.SplitChannelsOptions.RelativeNormalization,
		Vertical:              o.Vertical,
		RTL:                   o.RTL,
		SplitChannels:         o.SplitChannels,
		Overlay:               o.SplitChannelsOptions.Overlay,
		WaveColor:             waveColor,
		ProgressColor:         progressColor,
		PartialRender:         o.PartialRender,
	}

	for _, c := range o.SplitChannelsOptions.ChannelColors {
		parsed, err := parseColor(c)
		if err != nil {
			return render.Config{}, err
		}
		cfg.ChannelColors = append(cfg.ChannelColors, parsed)
	}
	return cfg, nil
}

// parseColor turns a hex color string into an opaque RGBA.
func parseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// channelColorsFor pads the configured channel palette out to count lanes,
// deriving the extra colors from the wave color with rotated hues so split
// lanes stay visually distinct.
func channelColorsFor(cfg render.Config, waveColor string, count int) []color.RGBA {
	out := make([]color.RGBA, 0, count)
	out = append(out, cfg.ChannelColors...)
	if len(out) >= count {
		return out[:count]
	}

	base, err := colorful.Hex(waveColor)
	if err != nil {
		base = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	}
	h, s, l := base.Hsl()
	for i := len(out); i < count; i++ {
		derived := colorful.Hsl(h+float64(i)*360.0/float64(count), maxf(s, 0.35), l).Clamped()
		r, g, b := derived.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}
	return out
}

// scalePx converts a device-independent length to device pixels.
func scalePx(v int, ratio float64) int {
	if v == 0 || ratio == 1 {
		return v
	}
	return int(float64(v)*ratio + 0.5)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
