// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the waveform preview
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/wavecanvas"
)

// Run starts the preview TUI over canvas and blocks until it quits.
func Run(canvas *wavecanvas.Canvas, waveColor, progressColor string) error {
	p := tea.NewProgram(NewModel(canvas, waveColor, progressColor), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
