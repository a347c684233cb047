// ABOUTME: Immutable render parameter struct
// ABOUTME: Carries geometry, color and normalization settings into draws
package render

import "image/color"

// Config holds the render parameters for one draw. It is constructed once by
// the owning facade and passed by value into every core operation; renderers
// never mutate it.
type Config struct {
	// Height is the lane height in device pixels (each channel lane gets the
	// full Height; overlaid lanes share it).
	Height int

	// PixelRatio scales device-independent to device pixels.
	PixelRatio float64

	// Bar geometry, in device pixels. BarWidth == 0 selects outline mode.
	// BarGap == 0 with bars draws edge-to-edge, one bar per column.
	BarWidth     int
	BarGap       int
	BarRadius    int
	BarHeight    float64 // vertical scale, 1 when unset
	BarMinHeight int

	// Normalize scales to the observed maximum instead of the fixed PeakMax
	// scale. RelativeNormalization applies it per channel when channels are
	// split.
	Normalize             bool
	RelativeNormalization bool

	Vertical bool
	RTL      bool

	SplitChannels bool
	Overlay       bool

	WaveColor     color.RGBA
	ProgressColor color.RGBA
	ChannelColors []color.RGBA

	PartialRender bool
}

// barScale returns the configured vertical bar scale, defaulting to 1.
func (c Config) barScale() float64 {
	if c.BarHeight <= 0 {
		return 1
	}
	return c.BarHeight
}

// laneColors returns the wave and progress colors for channel lane ch.
func (c Config) laneColors(ch int) (wave, progress color.RGBA) {
	wave, progress = c.WaveColor, c.ProgressColor
	if c.SplitChannels && ch < len(c.ChannelColors) {
		wave = c.ChannelColors[ch]
	}
	return wave, progress
}

// progressSkipped reports whether the progress layer is omitted for lane ch.
// Identical wave and progress colors make the overlay invisible.
func (c Config) progressSkipped(ch int) bool {
	wave, progress := c.laneColors(ch)
	return wave == progress
}
