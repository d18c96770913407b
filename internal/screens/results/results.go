package results

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/api"
	agg "github.com/abhisek/luminar/internal/results"
	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	"github.com/abhisek/luminar/internal/ui/components"
	"github.com/abhisek/luminar/internal/ui/layout"
	"github.com/abhisek/luminar/internal/ui/theme"
)

// ResultsScreen lists the per-intelligence cards of a submitted test.
type ResultsScreen struct {
	env    *screen.Env
	cards  []agg.Card
	offset int
	done   bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for r.
func New(env *screen.Env, r *api.TestResult) *ResultsScreen {
	return &ResultsScreen{env: env, cards: agg.Aggregate(r)}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Resultados"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Rolar"},
		{Key: "Enter", Description: "Finalizar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

// Cards returns the rendered cards in display order.
func (s *ResultsScreen) Cards() []agg.Card {
	return s.cards
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "enter":
		return s, s.finish()
	}
	return s, nil
}

func (s *ResultsScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	next := s.env.Nav.Dashboard()
	return func() tea.Msg {
		return router.ResetScreenMsg{Screen: next}
	}
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Parabéns! Seus resultados chegaram."))
	b.WriteString("\n\n")

	for i, c := range s.cards {
		bar := components.ScoreBar("", c.Score, cw-6)
		body := bar.View()
		if c.Description != "" {
			body += "\n\n" + lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Width(cw-6).
				Render(c.Description)
		}
		title := c.Title()
		if i == 0 {
			title = "★ " + title
		}
		b.WriteString(components.Card(title, body, cw))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		components.SubmitButton("Finalizar", components.ButtonReady)))

	lines := strings.Split(b.String(), "\n")
	s.offset = min(s.offset, max(0, len(lines)-height))
	visible := lines[s.offset:min(len(lines), s.offset+height)]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(visible, "\n"))
}
