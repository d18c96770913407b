// Package theme holds the palette and shared styles of the terminal UI.
package theme

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary   = lipgloss.Color("#F59E0B") // Amber
	Secondary = lipgloss.Color("#6366F1") // Indigo
	Accent    = lipgloss.Color("#EC4899") // Pink
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
	Muted     = lipgloss.Color("#64748B") // Grey Slate
)

// Text styles
var (
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Notice = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Alert = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Form styles
var (
	FieldLabel = lipgloss.NewStyle().
			Foreground(TextDim).
			Width(16)

	FieldLabelFocused = FieldLabel.
				Foreground(Primary).
				Bold(true)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)

// Bars
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)

// ScoreFill picks the bar fill for a 0..100 intelligence score.
func ScoreFill(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return lipgloss.NewStyle().Background(Primary)
	case score >= 40:
		return ProgressFilled
	default:
		return lipgloss.NewStyle().Background(Muted)
	}
}
