package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	"github.com/abhisek/luminar/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	glowEnd      = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const bulbArt = `    .-"""-.
   /  \ /  \
  |   (*)   |
   \   |   /
    '.=|=.'
     [___]
     [___]`

var rayFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen shows a short splash and hands over to the first real screen
// on the first keypress.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(bulbArt)

	if w.elapsed >= glowEnd {
		ray := rayFrames[w.tickCount%len(rayFrames)]
		a := lipgloss.NewStyle().Foreground(theme.Accent).Render(ray)
		b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(ray)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 2 {
			lines[0] = a + "  " + lines[0] + "  " + b
			lines[2] = b + "  " + lines[2] + "  " + a
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().
				Foreground(theme.Text).
				Bold(true).
				Render("Descubra suas inteligências."),
		)
	}

	sections = append(sections, "", theme.Hint.Render("pressione qualquer tecla"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
