// ABOUTME: Standalone terminal waveform viewer
// ABOUTME: Loads a peaks JSON file and opens the preview TUI
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/WaveCanvas-Project/wavecanvas-go/internal/ui"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/wavecanvas"
)

var (
	peaksFile     = flag.String("peaks", "", "JSON peaks file: an array of samples, or an array per channel")
	duration      = flag.Float64("duration", 0, "Audio duration in seconds")
	peakMax       = flag.Float64("peak-max", 0, "Sample scale (0: already normalized)")
	split         = flag.Bool("split-channels", false, "Show each channel as its own lane")
	normalize     = flag.Bool("normalize", false, "Scale the loudest peak to full amplitude")
	waveColor     = flag.String("wave-color", "#5FAFFF", "Waveform color")
	progressColor = flag.String("progress-color", "#FF5F87", "Played-region color")
)

func main() {
	flag.Parse()

	if *peaksFile == "" || *duration <= 0 {
		fmt.Fprintln(os.Stderr, "usage: wavecanvas-view -peaks FILE -duration SECONDS")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*peaksFile)
	if err != nil {
		log.Fatalf("Reading %s: %v", *peaksFile, err)
	}

	var channels [][]float64
	if err := json.Unmarshal(raw, &channels); err != nil {
		var single []float64
		if err := json.Unmarshal(raw, &single); err != nil {
			log.Fatalf("Parsing %s: %v", *peaksFile, err)
		}
		channels = [][]float64{single}
	}

	canvas, err := wavecanvas.New(wavecanvas.Options{
		SplitChannels: *split,
		Normalize:     *normalize,
		WaveColor:     *waveColor,
		ProgressColor: *progressColor,
	})
	if err != nil {
		log.Fatalf("Configuration: %v", err)
	}
	defer canvas.Close()

	if len(channels) == 1 {
		err = canvas.Load(channels[0], *duration, *peakMax)
	} else {
		err = canvas.LoadMultiChannel(channels, *duration, *peakMax)
	}
	if err != nil {
		log.Fatalf("Loading peaks: %v", err)
	}
	if err := canvas.DrawBuffer(); err != nil {
		log.Fatalf("Drawing: %v", err)
	}

	if err := ui.Run(canvas, *waveColor, *progressColor); err != nil {
		log.Fatalf("TUI: %v", err)
	}
}
