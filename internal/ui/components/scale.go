package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/ui/theme"
)

// Scale is a vertical agreement-scale selector. Options are numbered from
// one, and digit keys pick an option directly.
type Scale struct {
	Options  []string
	Selected int
	OnChoose func(value int) tea.Cmd
}

// NewScale creates a scale with the middle option highlighted.
func NewScale(options []string, onChoose func(value int) tea.Cmd) Scale {
	return Scale{
		Options:  options,
		Selected: len(options) / 2,
		OnChoose: onChoose,
	}
}

// Update handles keyboard navigation and selection.
func (s Scale) Update(msg tea.Msg) (Scale, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if s.Selected > 0 {
			s.Selected--
		}
		return s, nil
	case "down", "j":
		if s.Selected < len(s.Options)-1 {
			s.Selected++
		}
		return s, nil
	case "enter":
		return s, s.choose(s.Selected + 1)
	}

	if len(key) == 1 && key[0] >= '1' && int(key[0]-'0') <= len(s.Options) {
		value := int(key[0] - '0')
		s.Selected = value - 1
		return s, s.choose(value)
	}
	return s, nil
}

func (s Scale) choose(value int) tea.Cmd {
	if s.OnChoose == nil {
		return nil
	}
	return s.OnChoose(value)
}

// View renders the scale.
func (s Scale) View() string {
	var b strings.Builder
	for i, opt := range s.Options {
		line := fmt.Sprintf("%d  %s", i+1, opt)
		if i == s.Selected {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
