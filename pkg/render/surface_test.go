// ABOUTME: Tests for the tiled surface manager
// ABOUTME: Covers draw delegation, tile reuse, progress, recenter and export
package render

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/peaks"
)

func surfaceConfig() Config {
	return Config{
		Height:        32,
		PixelRatio:    1,
		WaveColor:     color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF},
		ProgressColor: color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		PartialRender: true,
	}
}

func TestTiledSurface_ScenarioSingleTileFirstDraw(t *testing.T) {
	// peaks=[0,100,45,11,202,68,240], duration=1s, 20 px/s: total width 20,
	// comfortably inside one 4000-wide tile. The first draw over [0,20)
	// comes back in full from an empty cache.
	s := NewTiledSurface(surfaceConfig(), 4000)
	buf := peaks.New([]float64{0, 100, 45, 11, 202, 68, 240}, 255)

	painted := s.DrawPeaks(buf, 20, 0, 20)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 0, End: 20}}) {
		t.Errorf("first draw painted %v, want [[0,20)]", painted)
	}
	if len(s.Tiles()) != 1 {
		t.Errorf("expected a single tile, got %d", len(s.Tiles()))
	}
}

func TestTiledSurface_ScenarioRepeatDrawPaintsNothing(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 4000)
	buf := peaks.New([]float64{0, 100, 45, 11, 202, 68, 240}, 255)

	s.DrawPeaks(buf, 20, 0, 20)
	painted := s.DrawPeaks(buf, 20, 0, 20)
	if len(painted) != 0 {
		t.Errorf("identical second draw painted %v, want nothing", painted)
	}
}

func TestTiledSurface_ScenarioThreeTiles(t *testing.T) {
	// maxCanvasWidth=100, totalWidth=250: tiles of width 100, 100, 50.
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(250)

	tiles := s.Tiles()
	if len(tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(tiles))
	}
	wantWidths := []int{100, 100, 50}
	for i, tile := range tiles {
		if tile.Spec.Width != wantWidths[i] {
			t.Errorf("tile %d width = %d, want %d", i, tile.Spec.Width, wantWidths[i])
		}
	}
}

func TestTiledSurface_FullRepaintModeBypassesCache(t *testing.T) {
	cfg := surfaceConfig()
	cfg.PartialRender = false
	s := NewTiledSurface(cfg, 4000)
	buf := peaks.New([]float64{0, 100, 45}, 255)

	s.DrawPeaks(buf, 20, 0, 20)
	painted := s.DrawPeaks(buf, 20, 0, 20)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 0, End: 20}}) {
		t.Errorf("full-repaint mode painted %v, want the whole range again", painted)
	}
}

func TestTiledSurface_WidthChangeInvalidates(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 4000)
	buf := peaks.New([]float64{0, 100, 45}, 255)

	s.DrawPeaks(buf, 20, 0, 10)
	// Zoom: the same request repaints in full at the new width.
	painted := s.DrawPeaks(buf, 40, 0, 10)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 0, End: 10}}) {
		t.Errorf("draw after width change painted %v, want [[0,10)]", painted)
	}
}

func TestTiledSurface_SetWidthIdempotent(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(250)
	tiles := s.Tiles()

	s.SetWidth(250)
	for i, tile := range s.Tiles() {
		if tile != tiles[i] {
			t.Errorf("tile %d was recreated by an idempotent SetWidth", i)
		}
	}
}

func TestTiledSurface_TileReuseOnGrow(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(250)
	before := s.Tiles()

	// Growing the trailing edge keeps the full leading tiles; only the
	// changed trailing region is recreated.
	s.SetWidth(280)
	after := s.Tiles()
	if len(after) != 3 {
		t.Fatalf("expected 3 tiles at width 280, got %d", len(after))
	}
	if after[0] != before[0] || after[1] != before[1] {
		t.Error("leading tiles with unchanged spans were recreated")
	}
	if after[2] == before[2] {
		t.Error("trailing tile with a changed span was reused")
	}
}

func TestTiledSurface_RangeSpanningTiles(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(250), 1)

	painted := s.DrawPeaks(buf, 250, 50, 220)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 50, End: 220}}) {
		t.Fatalf("painted %v, want [[50,220)]", painted)
	}

	// Each of the three tiles received its clipped portion.
	tiles := s.Tiles()
	checks := []struct {
		tile    int
		local   int
		painted bool
	}{
		{0, 49, false}, // before the range
		{0, 50, true},
		{0, 99, true},
		{1, 0, true},  // global 100
		{1, 99, true}, // global 199
		{2, 0, true},  // global 200
		{2, 19, true}, // global 219
		{2, 20, false},
	}
	for _, c := range checks {
		got := columnSpan(tiles[c.tile].Wave(0), c.local) > 0
		if got != c.painted {
			t.Errorf("tile %d local column %d painted = %v, want %v", c.tile, c.local, got, c.painted)
		}
	}
}

func TestTiledSurface_SeamOverlapPainted(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(250), 1)
	s.DrawPeaks(buf, 250, 0, 250)

	// Columns just right of the first seam are painted into tile 0's
	// overlap margin as well as tile 1.
	first := s.Tiles()[0]
	if first.Spec.Overlap == 0 {
		t.Fatal("first tile has no overlap margin")
	}
	if columnSpan(first.Wave(0), 100) == 0 {
		t.Error("seam overlap column unpainted on the left tile")
	}
}

func TestTiledSurface_DrawClampsToWidth(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(50), 1)

	painted := s.DrawPeaks(buf, 50, -10, 500)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 0, End: 50}}) {
		t.Errorf("painted %v, want clamped [[0,50)]", painted)
	}
}

func TestTiledSurface_ProgressRegion(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(200)

	s.SetProgress(0.25)
	if got := s.Playhead(); got != 50 {
		t.Errorf("playhead = %d, want 50", got)
	}
	if got := s.progressRegion(); got != (PixelRange{Start: 0, End: 50}) {
		t.Errorf("progress region = %v, want [0,50)", got)
	}

	s.SetProgress(2) // clamped
	if got := s.Playhead(); got != 200 {
		t.Errorf("playhead after clamp = %d, want 200", got)
	}
}

func TestTiledSurface_ProgressRegionRTL(t *testing.T) {
	cfg := surfaceConfig()
	cfg.RTL = true
	s := NewTiledSurface(cfg, 100)
	s.SetWidth(200)

	// Mirrored: the played region hangs off the right edge.
	s.SetProgress(0.25)
	if got := s.progressRegion(); got != (PixelRange{Start: 150, End: 200}) {
		t.Errorf("RTL progress region = %v, want [150,200)", got)
	}
}

func TestTiledSurface_Recenter(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(1000)

	tests := []struct {
		name     string
		fraction float64
		visible  int
		want     int
	}{
		{"centered", 0.5, 200, 400},
		{"clamped left", 0.0, 200, 0},
		{"clamped right", 1.0, 200, 800},
		{"window wider than surface", 0.5, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Recenter(tt.fraction, tt.visible); got != tt.want {
				t.Errorf("Recenter(%v, %d) = %d, want %d", tt.fraction, tt.visible, got, tt.want)
			}
		})
	}
}

func TestTiledSurface_SetScrollClamps(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	s.SetWidth(1000)

	tests := []struct {
		name    string
		offset  int
		visible int
		want    int
	}{
		{"in range", 300, 200, 300},
		{"past the right edge", 950, 200, 800},
		{"negative", -40, 200, 0},
		{"window wider than surface", 100, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SetScroll(tt.offset, tt.visible); got != tt.want {
				t.Errorf("SetScroll(%d, %d) = %d, want %d", tt.offset, tt.visible, got, tt.want)
			}
			if got := s.ScrollOffset(); got != tt.want {
				t.Errorf("ScrollOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTiledSurface_ImageStitchesTiles(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(250), 1)
	s.DrawPeaks(buf, 250, 0, 250)
	s.SetProgress(0.4) // playhead at column 100

	img := s.Image()
	if img.Rect.Dx() != 250 || img.Rect.Dy() != 32 {
		t.Fatalf("stitched image is %dx%d, want 250x32", img.Rect.Dx(), img.Rect.Dy())
	}

	waveCol := surfaceConfig().WaveColor
	progressCol := surfaceConfig().ProgressColor
	// Played columns carry the progress color, the rest the wave color.
	if got := img.RGBAAt(50, 16); got != progressCol {
		t.Errorf("played column color = %v, want %v", got, progressCol)
	}
	if got := img.RGBAAt(150, 16); got != waveCol {
		t.Errorf("unplayed column color = %v, want %v", got, waveCol)
	}
}

func TestTiledSurface_TileImages(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(250), 1)
	s.DrawPeaks(buf, 250, 0, 250)

	imgs := s.TileImages()
	if len(imgs) != 3 {
		t.Fatalf("expected 3 tile images, got %d", len(imgs))
	}
	wantWidths := []int{100, 100, 50}
	for i, img := range imgs {
		if img.Rect.Dx() != wantWidths[i] {
			t.Errorf("tile image %d width = %d, want %d", i, img.Rect.Dx(), wantWidths[i])
		}
		if img.Rect.Dy() != 32 {
			t.Errorf("tile image %d height = %d, want 32", i, img.Rect.Dy())
		}
	}
}

func TestTiledSurface_SplitChannelsStackedExport(t *testing.T) {
	cfg := surfaceConfig()
	cfg.SplitChannels = true
	s := NewTiledSurface(cfg, 100)

	buf, err := peaks.NewMultiChannel([][]float64{
		fullScalePairs(50),
		fullScalePairs(50),
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.DrawPeaks(buf, 50, 0, 50)

	img := s.Image()
	// Two stacked lanes of 32 pixels each.
	if img.Rect.Dy() != 64 {
		t.Errorf("stacked export height = %d, want 64", img.Rect.Dy())
	}
}

func TestTiledSurface_PreDrawSplitExportHeight(t *testing.T) {
	cfg := surfaceConfig()
	cfg.SplitChannels = true
	cfg.ChannelColors = []color.RGBA{
		{R: 0xFF, A: 0xFF},
		{G: 0xFF, A: 0xFF},
	}
	s := NewTiledSurface(cfg, 100)
	s.SetWidth(50)

	// No draw yet: the export already reserves one lane per channel.
	img := s.Image()
	if img.Rect.Dy() != 64 {
		t.Errorf("pre-draw export height = %d, want stacked 64", img.Rect.Dy())
	}
}

func TestTiledSurface_SetChannelColorsAppliesToDraws(t *testing.T) {
	cfg := surfaceConfig()
	cfg.SplitChannels = true
	s := NewTiledSurface(cfg, 100)
	palette := []color.RGBA{
		{R: 0xE0, A: 0xFF},
		{B: 0xE0, A: 0xFF},
	}
	s.SetChannelColors(palette)

	buf, err := peaks.NewMultiChannel([][]float64{
		fullScalePairs(20),
		fullScalePairs(20),
	}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.DrawPeaks(buf, 20, 0, 20)

	tile := s.Tiles()[0]
	if got := tile.Wave(0).RGBAAt(5, 16); got != palette[0] {
		t.Errorf("lane 0 painted %v, want %v", got, palette[0])
	}
	if got := tile.Wave(1).RGBAAt(5, 16); got != palette[1] {
		t.Errorf("lane 1 painted %v, want %v", got, palette[1])
	}
}

func TestTiledSurface_Reset(t *testing.T) {
	s := NewTiledSurface(surfaceConfig(), 100)
	buf := peaks.New(fullScalePairs(250), 1)
	s.DrawPeaks(buf, 250, 0, 250)

	s.Reset()
	if s.Width() != 0 || len(s.Tiles()) != 0 {
		t.Error("Reset left tiles or width behind")
	}

	// The cache was discarded along with the tiles.
	painted := s.DrawPeaks(buf, 250, 0, 10)
	if !reflect.DeepEqual(painted, []PixelRange{{Start: 0, End: 10}}) {
		t.Errorf("draw after Reset painted %v, want [[0,10)]", painted)
	}
}
