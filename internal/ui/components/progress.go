package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar draws a label, a filled bar and a trailing caption on one line.
type ProgressBar struct {
	Label      string
	LabelWidth int // pads Label so stacked bars line up; 0 means natural width
	Fraction   float64
	Caption    string
	Fill       lipgloss.Style
	Width      int
}

// NewProgressBar creates a bar filled to fraction (0..1).
func NewProgressBar(label string, fraction float64, caption string, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Fraction: fraction,
		Caption:  caption,
		Fill:     theme.ProgressFilled,
		Width:    width,
	}
}

// StepBar shows how many of total steps are done, as "done/total".
func StepBar(label string, done, total, width int) ProgressBar {
	fraction := 0.0
	if total > 0 {
		fraction = float64(done) / float64(total)
	}
	return NewProgressBar(label, fraction, fmt.Sprintf("%d/%d", done, total), width)
}

// ScoreBar shows a 0..100 score colored by its band.
func ScoreBar(label string, score, width int) ProgressBar {
	p := NewProgressBar(label, float64(score)/100, fmt.Sprintf("%d%%", score), width)
	p.Fill = theme.ScoreFill(score)
	return p
}

// View renders the bar.
func (p ProgressBar) View() string {
	var head string
	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth)
		}
		head = style.Render(p.Label) + "  "
	}

	var tail string
	if p.Caption != "" {
		tail = lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + p.Caption)
	}

	cells := max(minBarCells, p.Width-lipgloss.Width(head)-lipgloss.Width(tail))
	filled := max(0, min(cells, int(float64(cells)*p.Fraction)))

	return head +
		p.Fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		tail
}
