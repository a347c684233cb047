// ABOUTME: Visualization facade over the tiled rendering engine
// ABOUTME: Owns configuration, the peak buffer and draw orchestration
package wavecanvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/event"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/peaks"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/render"
)

// Notification topics published on the canvas bus.
const (
	// TopicRedraw carries a RedrawEvent after every draw.
	TopicRedraw = "redraw"

	// TopicScroll carries a ScrollEvent when the visible window pans.
	TopicScroll = "scroll"
)

// RedrawEvent is the payload of TopicRedraw.
type RedrawEvent struct {
	Peaks *peaks.Buffer
	Width int
}

// ScrollEvent is the payload of TopicScroll.
type ScrollEvent struct {
	Offset int
}

// Canvas is the visualization facade: it owns the configuration, the loaded
// peak buffer and the duration, and forwards draw requests into the surface
// manager. All operations are synchronous and single-threaded.
type Canvas struct {
	opts Options
	cfg  render.Config

	surface *render.TiledSurface
	bus     *event.Bus

	buf            *peaks.Buffer
	duration       float64
	progress       float64
	containerWidth int
}

// New validates the options and creates an empty canvas. Configuration
// errors (odd MaxCanvasWidth, unparseable colors) are raised here, before
// any tile exists.
func New(opts Options) (*Canvas, error) {
	opts = opts.withDefaults()

	cfg, err := opts.renderConfig()
	if err != nil {
		return nil, err
	}

	return &Canvas{
		opts:           opts,
		cfg:            cfg,
		surface:        render.NewTiledSurface(cfg, opts.MaxCanvasWidth),
		bus:            event.NewBus(),
		containerWidth: opts.ContainerWidth,
	}, nil
}

// Load replaces the current buffer with a single-channel peak sequence.
// peakMax is the sample scale (0 for already-normalized floats); duration is
// the audio length in seconds. Loading does not draw.
func (c *Canvas) Load(samples []float64, duration, peakMax float64) error {
	if len(samples) == 0 {
		return ErrNoPeaks
	}
	if duration <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}

	c.buf = peaks.New(samples, peakMax)
	c.duration = duration
	c.progress = 0
	c.surface.Reset()
	return nil
}

// LoadMultiChannel is Load for per-channel peak sequences. Channels listed
// in SplitChannelsOptions.FilterChannels are hidden.
func (c *Canvas) LoadMultiChannel(channels [][]float64, duration, peakMax float64) error {
	if len(channels) == 0 {
		return ErrNoPeaks
	}
	if duration <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}

	kept := c.filterChannels(channels)
	if len(kept) == 0 {
		return fmt.Errorf("%w: every channel filtered out", ErrNoPeaks)
	}
	buf, err := peaks.NewMultiChannel(kept, peakMax)
	if err != nil {
		return err
	}

	c.buf = buf
	c.duration = duration
	c.progress = 0
	c.surface.Reset()

	// Pad the channel palette so every visible lane has a distinct color,
	// and hand it to the surface so draws actually paint with it.
	if c.cfg.SplitChannels {
		c.cfg.ChannelColors = channelColorsFor(c.cfg, c.opts.WaveColor, buf.Channels())
		c.surface.SetChannelColors(c.cfg.ChannelColors)
	}
	return nil
}

// filterChannels drops the channel indices hidden by configuration.
func (c *Canvas) filterChannels(channels [][]float64) [][]float64 {
	hidden := make(map[int]bool, len(c.opts.SplitChannelsOptions.FilterChannels))
	for _, i := range c.opts.SplitChannelsOptions.FilterChannels {
		hidden[i] = true
	}
	if len(hidden) == 0 {
		return channels
	}
	kept := make([][]float64, 0, len(channels))
	for i, ch := range channels {
		if !hidden[i] {
			kept = append(kept, ch)
		}
	}
	return kept
}

// DrawBuffer computes the target total width from the duration and zoom
// level, applies the fill/scroll policy, and draws the whole waveform. It
// fires a redraw notification with the resulting width.
func (c *Canvas) DrawBuffer() error {
	if c.buf == nil {
		return fmt.Errorf("%w: nothing loaded", ErrNoPeaks)
	}

	width := c.targetWidth()
	c.surface.DrawPeaks(c.buf, width, 0, width)
	c.notifyRedraw(width)
	return nil
}

// targetWidth derives the total width in device pixels: duration times zoom
// times pixel ratio, collapsed to the container width when FillParent
// applies and the waveform does not overflow a scrolling container.
func (c *Canvas) targetWidth() int {
	width := int(math.Round(c.duration * c.opts.MinPxPerSec * c.opts.PixelRatio))
	container := int(math.Round(float64(c.containerWidth) * c.opts.PixelRatio))
	if c.opts.FillParent && container > 0 && (!c.opts.ScrollParent || width < container) {
		width = container
	}
	return width
}

// Zoom changes the pixels-per-second rate and redraws. The width change
// invalidates the partial-render cache, so the whole waveform repaints.
func (c *Canvas) Zoom(minPxPerSec float64) error {
	if minPxPerSec <= 0 {
		err := fmt.Errorf("wavecanvas: minPxPerSec must be positive, got %v", minPxPerSec)
		c.notifyError(err)
		return err
	}
	c.opts.MinPxPerSec = minPxPerSec
	return c.DrawBuffer()
}

// SetContainerWidth records a new host width and redraws; the host's
// debounced resize notifier is expected to call this.
func (c *Canvas) SetContainerWidth(width int) error {
	c.containerWidth = width
	if c.buf == nil {
		return nil
	}
	if err := c.DrawBuffer(); err != nil {
		c.notifyError(err)
		return err
	}
	return nil
}

// SetProgress moves the playhead to fraction of the duration. With a
// scrolling container the window recenters on the playhead and a scroll
// notification fires.
func (c *Canvas) SetProgress(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	c.progress = fraction
	c.surface.SetProgress(fraction)

	if c.opts.ScrollParent {
		container := int(math.Round(float64(c.containerWidth) * c.opts.PixelRatio))
		offset := c.surface.Recenter(fraction, container)
		c.notifyScroll(offset)
	}
}

// ScrollTo pans the visible window to offset device pixels, clamped so the
// window stays inside the waveform, and fires a scroll notification. Returns
// the clamped offset.
func (c *Canvas) ScrollTo(offset int) int {
	container := int(math.Round(float64(c.containerWidth) * c.opts.PixelRatio))
	clamped := c.surface.SetScroll(offset, container)
	c.notifyScroll(clamped)
	return clamped
}

// ScrollOffset returns the current scroll offset in device pixels.
func (c *Canvas) ScrollOffset() int {
	return c.surface.ScrollOffset()
}

// Progress returns the current playhead fraction.
func (c *Canvas) Progress() float64 {
	return c.progress
}

// Duration returns the loaded duration in seconds, 0 when nothing is loaded.
func (c *Canvas) Duration() float64 {
	return c.duration
}

// Width returns the current total width in device pixels.
func (c *Canvas) Width() int {
	return c.surface.Width()
}

// Buffer returns the loaded peak buffer, nil before Load.
func (c *Canvas) Buffer() *peaks.Buffer {
	return c.buf
}

// Image exports the composited raster of every tile stitched in sequence.
func (c *Canvas) Image() *image.RGBA {
	return c.surface.Image()
}

// TileImages exports one composited raster per tile.
func (c *Canvas) TileImages() []*image.RGBA {
	return c.surface.TileImages()
}

// WritePNG encodes the stitched raster to w.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.Image()); err != nil {
		return fmt.Errorf("wavecanvas: encoding png: %w", err)
	}
	return nil
}

// ColumnExtents decimates the loaded buffer into per-lane column extents for
// a waveform width columns wide, through the same decimation and
// normalization path the renderer paints with. Useful for previews that draw
// with something other than pixels.
func (c *Canvas) ColumnExtents(width int) [][]render.ColumnExtent {
	if c.buf == nil || width <= 0 {
		return nil
	}
	lanes := 1
	if c.cfg.SplitChannels {
		lanes = c.buf.Channels()
	}
	rng := render.PixelRange{Start: 0, End: width}

	out := make([][]render.ColumnExtent, lanes)
	for ch := range out {
		divisor := render.LaneDivisor(c.buf, ch, c.cfg)
		out[ch] = render.Extents(c.buf.Channel(ch), width, rng, divisor)
	}
	return out
}

// Events returns the notification bus for subscribing to redraw and scroll
// topics.
func (c *Canvas) Events() *event.Bus {
	return c.bus
}

// Close releases the notification bus and drops all drawing state.
func (c *Canvas) Close() {
	c.bus.Close()
	c.surface.Reset()
	c.buf = nil
}

// notifyRedraw publishes the redraw notification and callback.
func (c *Canvas) notifyRedraw(width int) {
	c.bus.Publish(TopicRedraw, RedrawEvent{Peaks: c.buf, Width: width})
	if c.opts.OnRedraw != nil {
		c.opts.OnRedraw(c.buf, width)
	}
}

// notifyScroll publishes the scroll notification and callback.
func (c *Canvas) notifyScroll(offset int) {
	c.bus.Publish(TopicScroll, ScrollEvent{Offset: offset})
	if c.opts.OnScroll != nil {
		c.opts.OnScroll(offset)
	}
}

// notifyError forwards err to the OnError callback if one is set.
func (c *Canvas) notifyError(err error) {
	if c.opts.OnError != nil {
		c.opts.OnError(err)
	}
}
