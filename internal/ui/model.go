// ABOUTME: Bubbletea model for the waveform preview TUI
// ABOUTME: Renders column extents as block runes with progress coloring
package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/render"
	"github.com/WaveCanvas-Project/wavecanvas-go/pkg/wavecanvas"
)

// Block characters for amplitude visualization, empty to full.
const blockChars = " ▁▂▃▄▅▆▇█"

// seekStep is the playhead jump per arrow key, as a fraction of duration.
const seekStep = 0.05

// Model is the TUI state: a canvas to preview plus terminal geometry.
type Model struct {
	canvas *wavecanvas.Canvas

	width  int
	height int

	waveStyle     lipgloss.Style
	progressStyle lipgloss.Style
}

// NewModel creates a preview model over canvas. The styles take the same hex
// colors the canvas paints with.
func NewModel(canvas *wavecanvas.Canvas, waveColor, progressColor string) Model {
	return Model{
		canvas:        canvas,
		waveStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(waveColor)),
		progressStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(progressColor)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey handles seek, zoom and quit keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left":
		m.canvas.SetProgress(m.canvas.Progress() - seekStep)
	case "right":
		m.canvas.SetProgress(m.canvas.Progress() + seekStep)
	case "+", "=":
		_ = m.canvas.Zoom(m.zoomRate() * 1.5)
	case "-":
		if next := m.zoomRate() / 1.5; next >= 1 {
			_ = m.canvas.Zoom(next)
		}
	}
	return m, nil
}

// zoomRate derives the current pixels-per-second rate from the drawn width.
func (m Model) zoomRate() float64 {
	if d := m.canvas.Duration(); d > 0 && m.canvas.Width() > 0 {
		return float64(m.canvas.Width()) / d
	}
	return 50
}

// View renders the waveform lanes plus a status line.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	lanes := m.canvas.ColumnExtents(m.width)
	if len(lanes) == 0 {
		return "No peaks loaded\n"
	}

	laneRows := m.laneRows(len(lanes))
	playhead := int(math.Round(m.canvas.Progress() * float64(m.width)))

	var b strings.Builder
	for _, lane := range lanes {
		b.WriteString(m.renderLane(lane, laneRows, playhead))
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

// laneRows splits the usable terminal height between channel lanes, keeping
// one row for the status line.
func (m Model) laneRows(lanes int) int {
	if lanes < 1 {
		lanes = 1
	}
	rows := (m.height - 1) / lanes
	if rows < 1 {
		rows = 1
	}
	return rows
}

// renderLane draws one channel lane as block-rune rows, styling columns left
// of the playhead with the progress color.
func (m Model) renderLane(lane []render.ColumnExtent, rows, playhead int) string {
	runes := []rune(blockChars)
	maxLevel := rows * (len(runes) - 1)

	levels := make([]int, len(lane))
	for i, e := range lane {
		amp := math.Max(math.Abs(e.Max), math.Abs(e.Min))
		levels[i] = int(math.Round(amp * float64(maxLevel)))
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		var played, rest strings.Builder
		for col, level := range levels {
			r := runes[blockIndexForRow(level, row, rows)]
			if col < playhead {
				played.WriteRune(r)
			} else {
				rest.WriteRune(r)
			}
		}
		b.WriteString(m.progressStyle.Render(played.String()))
		b.WriteString(m.waveStyle.Render(rest.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// blockIndexForRow maps a column level onto the block rune for one row.
// Row 0 is the top of the lane.
func blockIndexForRow(level, row, rows int) int {
	base := (rows - 1 - row) * 8
	fill := level - base
	if fill <= 0 {
		return 0
	}
	if fill >= 8 {
		return 8
	}
	return fill
}

// renderStatus renders the playhead position and zoom rate.
func (m Model) renderStatus() string {
	position := m.canvas.Progress() * m.canvas.Duration()
	return fmt.Sprintf("%5.1fs / %.1fs  %.0f px/s  ←/→:Seek  +/-:Zoom  q:Quit",
		position, m.canvas.Duration(), m.zoomRate())
}
