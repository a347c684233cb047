// ABOUTME: Entry point for the wavecanvas CLI
// ABOUTME: Renders a peaks file to PNG or opens the terminal preview
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	"github.com/WaveCanvas-Project/wavecanvas-go/internal/ui"
	"github.com/WaveCanvas-Project/wavecanvas-go/internal/version"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/wavecanvas"
)

var (
	peaksFile     = flag.String("peaks", "", "JSON peaks file: an array of samples, or an array per channel")
	duration      = flag.Float64("duration", 0, "Audio duration in seconds (required with -peaks)")
	peakMax       = flag.Float64("peak-max", 0, "Sample scale, e.g. 255 or 32767 (0: already normalized)")
	outFile       = flag.String("out", "waveform.png", "Output PNG path")
	perTile       = flag.Bool("per-tile", false, "Write one PNG per drawing tile instead of a stitched image")
	tui           = flag.Bool("tui", false, "Open the terminal preview instead of writing a PNG")
	demo          = flag.Bool("demo", false, "Render a built-in demo signal")
	height        = flag.Int("height", 128, "Lane height in pixels")
	minPxPerSec   = flag.Float64("px-per-sec", 50, "Zoom level: pixel columns per second")
	pixelRatio    = flag.Float64("pixel-ratio", 1, "Device pixel ratio")
	barWidth      = flag.Int("bar-width", 0, "Bar width in pixels (0: continuous outline)")
	barGap        = flag.Int("bar-gap", 0, "Gap between bars in pixels")
	barRadius     = flag.Int("bar-radius", 0, "Bar corner radius in pixels")
	normalize     = flag.Bool("normalize", false, "Scale the loudest peak to full amplitude")
	vertical      = flag.Bool("vertical", false, "Render the waveform top to bottom")
	rtl           = flag.Bool("rtl", false, "Mirror the draw direction")
	split         = flag.Bool("split-channels", false, "Render each channel as its own lane")
	progress      = flag.Float64("progress", 0, "Playhead position as a fraction of the duration")
	waveColor     = flag.String("wave-color", "#999999", "Waveform color")
	progressColor = flag.String("progress-color", "#555555", "Played-region color")
	logFile       = flag.String("log-file", "wavecanvas.log", "Log file used in TUI mode")
	showVersion   = flag.Bool("version", false, "Print the version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	channels, dur, scale, err := loadInput()
	if err != nil {
		log.Fatalf("Loading peaks: %v", err)
	}

	canvas, err := wavecanvas.New(wavecanvas.Options{
		Height:        *height,
		MinPxPerSec:   *minPxPerSec,
		PixelRatio:    *pixelRatio,
		BarWidth:      *barWidth,
		BarGap:        *barGap,
		BarRadius:     *barRadius,
		Normalize:     *normalize,
		Vertical:      *vertical,
		RTL:           *rtl,
		SplitChannels: *split,
		WaveColor:     *waveColor,
		ProgressColor: *progressColor,
	})
	if err != nil {
		log.Fatalf("Configuration: %v", err)
	}
	defer canvas.Close()

	if len(channels) == 1 {
		err = canvas.Load(channels[0], dur, scale)
	} else {
		err = canvas.LoadMultiChannel(channels, dur, scale)
	}
	if err != nil {
		log.Fatalf("Loading peaks: %v", err)
	}

	if err := canvas.DrawBuffer(); err != nil {
		log.Fatalf("Drawing: %v", err)
	}
	canvas.SetProgress(*progress)

	if *tui {
		// TUI mode: log only to file so output does not fight the screen.
		lf, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Opening log file: %v", err)
		}
		defer func() { _ = lf.Close() }()
		log.SetOutput(lf)

		if err := ui.Run(canvas, *waveColor, *progressColor); err != nil {
			log.Fatalf("TUI: %v", err)
		}
		return
	}

	if *perTile {
		if err := writeTiles(canvas, *outFile); err != nil {
			log.Fatalf("Writing tiles: %v", err)
		}
		return
	}

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatalf("Creating %s: %v", *outFile, err)
	}
	defer f.Close()
	if err := canvas.WritePNG(f); err != nil {
		log.Fatalf("Writing %s: %v", *outFile, err)
	}
	log.Printf("Rendered %d px to %s", canvas.Width(), *outFile)
}

// loadInput reads the peaks file, or synthesizes the demo signal.
func loadInput() ([][]float64, float64, float64, error) {
	if *demo {
		return [][]float64{demoSignal(8, 800)}, 8, 0, nil
	}
	if *peaksFile == "" {
		return nil, 0, 0, fmt.Errorf("-peaks or -demo is required")
	}
	if *duration <= 0 {
		return nil, 0, 0, fmt.Errorf("-duration must be positive")
	}

	raw, err := os.ReadFile(*peaksFile)
	if err != nil {
		return nil, 0, 0, err
	}
	channels, err := parsePeaks(raw)
	if err != nil {
		return nil, 0, 0, err
	}
	return channels, *duration, *peakMax, nil
}

// parsePeaks accepts a flat JSON array of samples or an array of per-channel
// arrays.
func parsePeaks(raw []byte) ([][]float64, error) {
	var multi [][]float64
	if err := json.Unmarshal(raw, &multi); err == nil {
		return multi, nil
	}
	var single []float64
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("peaks file is neither a sample array nor a channel array: %w", err)
	}
	return [][]float64{single}, nil
}

// writeTiles writes one PNG per drawing tile, numbering the base path.
func writeTiles(canvas *wavecanvas.Canvas, base string) error {
	for i, img := range canvas.TileImages() {
		name := fmt.Sprintf("%s.%d.png", trimPNG(base), i)
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if err := encodePNG(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("Wrote %s", name)
	}
	return nil
}

func encodePNG(f *os.File, img image.Image) error {
	return png.Encode(f, img)
}

func trimPNG(path string) string {
	return strings.TrimSuffix(path, ".png")
}

// demoSignal synthesizes a decaying amplitude-modulated sine for quick looks.
func demoSignal(seconds float64, perSecond int) []float64 {
	n := int(seconds * float64(perSecond))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(perSecond)
		envelope := math.Exp(-t / (seconds / 2))
		out[i] = envelope * math.Sin(2*math.Pi*3*t) * (0.6 + 0.4*math.Sin(2*math.Pi*0.25*t))
	}
	return out
}
