package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for screen sections.
// All cards are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for the card border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
// An empty title renders no heading.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		heading := lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render(title)
		body = heading + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(body)
}

// Center places content in the middle of a width x height box.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
