package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	dash "github.com/abhisek/luminar/internal/dashboard"
	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	"github.com/abhisek/luminar/internal/tokenstore"
	"github.com/abhisek/luminar/internal/ui/components"
	"github.com/abhisek/luminar/internal/ui/layout"
	"github.com/abhisek/luminar/internal/ui/theme"
)

// Screen texts.
const (
	MsgLoading      = "Carregando seu perfil..."
	MsgLogoutFailed = "Não foi possível sair. Tente novamente."
)

// eventMsg carries an aggregator event through the app bus.
type eventMsg struct {
	dash.Event
}

// DashboardScreen shows the profile summary and career suggestions.
type DashboardScreen struct {
	env     *screen.Env
	agg     *dash.Aggregator
	menu    components.Menu
	message string
	offset  int
	done    bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.StatusProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen. The profile is fetched on Init.
func New(env *screen.Env, source dash.ProfileSource, tokens tokenstore.Store) *DashboardScreen {
	s := &DashboardScreen{env: env}
	s.agg = dash.New(env.Ctx, dash.Deps{
		Executor: env.Exec,
		Source:   source,
		Tokens:   tokens,
		Logger:   env.Log,
		Notify: func(e dash.Event) {
			env.Bus.Emit(eventMsg{e})
		},
	})
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Fazer o teste", Action: s.startQuiz},
		{Label: "Atualizar", Action: s.reload},
		{Label: "Sair", Action: s.logout},
	})
	return s
}

// Aggregator exposes the underlying dashboard aggregator.
func (s *DashboardScreen) Aggregator() *dash.Aggregator {
	return s.agg
}

func (s *DashboardScreen) Init() tea.Cmd {
	s.agg.Load()
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Meu Perfil"
}

func (s *DashboardScreen) Status() string {
	if snap := s.agg.Snapshot(); snap != nil && snap.FirstName != "" {
		return snap.FirstName + "  "
	}
	return ""
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Selecionar"},
		{Key: "PgUp/PgDn", Description: "Rolar"},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.handleEvent(msg.Event)
	case tea.KeyPressMsg:
		switch msg.String() {
		case "pgup":
			s.offset = max(0, s.offset-5)
			return s, nil
		case "pgdown":
			s.offset += 5
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DashboardScreen) handleEvent(e dash.Event) tea.Cmd {
	switch e.Kind {
	case dash.Loading, dash.Ready:
		s.message = ""
	case dash.Error:
		s.message = e.Message
	case dash.LoggedOut:
		if s.done {
			return nil
		}
		s.done = true
		next := s.env.Nav.Auth()
		return func() tea.Msg {
			return router.ResetScreenMsg{Screen: next}
		}
	}
	return nil
}

func (s *DashboardScreen) startQuiz() tea.Cmd {
	next := s.env.Nav.Quiz()
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *DashboardScreen) reload() tea.Cmd {
	s.agg.Load()
	return nil
}

func (s *DashboardScreen) logout() tea.Cmd {
	if err := s.agg.Logout(); err != nil {
		s.message = MsgLogoutFailed
	}
	return nil
}

func (s *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	switch s.agg.State() {
	case dash.StateIdle, dash.StateLoading:
		if s.agg.Snapshot() == nil {
			sections = append(sections, theme.Hint.Render(MsgLoading))
		} else {
			sections = append(sections, s.profileSections(cw)...)
		}
	case dash.StateReady:
		sections = append(sections, s.profileSections(cw)...)
	}

	if s.message != "" {
		sections = append(sections, theme.Alert.Width(cw).Render(s.message))
	}
	sections = append(sections, components.Card("", s.menu.View(), cw))

	lines := strings.Split(strings.Join(sections, "\n\n"), "\n")
	s.offset = min(s.offset, max(0, len(lines)-height))
	visible := lines[s.offset:min(len(lines), s.offset+height)]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(visible, "\n"))
}

func (s *DashboardScreen) profileSections(cw int) []string {
	snap := s.agg.Snapshot()
	if snap == nil {
		return nil
	}

	greeting := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(snap.Greeting)

	var test strings.Builder
	test.WriteString(theme.Hint.Render("Realizado em: " + snap.TestDate))
	test.WriteString("\n\n")
	test.WriteString(theme.Notice.Render(fmt.Sprintf("Sua inteligência principal é: %s (%d%%)",
		snap.Top.Label(), snap.TopScore)))
	test.WriteString("\n\n")
	for _, e := range snap.Ranked {
		bar := components.ScoreBar(e.Dimension.Label(), e.Score, cw-6)
		bar.LabelWidth = 26
		test.WriteString(bar.View())
		test.WriteString("\n")
	}

	var sugg strings.Builder
	if len(snap.Suggestions) == 0 {
		sugg.WriteString(theme.Hint.Render("Nenhuma sugestão disponível."))
	}
	for i, a := range snap.Suggestions {
		if i > 0 {
			sugg.WriteString("\n\n")
		}
		sugg.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(a.Area))
		if a.Probability != "" {
			sugg.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  " + string(a.Probability)))
		}
		if len(a.SampleProfessions) > 0 {
			sugg.WriteString("\n")
			sugg.WriteString(theme.Hint.Render("Ex: " + strings.Join(a.SampleProfessions, ", ")))
		}
	}

	return []string{
		greeting,
		components.Card("Seu Teste de Inteligência", test.String(), cw),
		components.Card("Sugestões de Carreira para Você", sugg.String(), cw),
	}
}
