package quiz

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/luminar/internal/api"
	qz "github.com/abhisek/luminar/internal/quiz"
	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	"github.com/abhisek/luminar/internal/ui/components"
	"github.com/abhisek/luminar/internal/ui/layout"
	"github.com/abhisek/luminar/internal/ui/theme"
)

// Screen texts.
const (
	MsgLoading    = "Carregando pergunta..."
	MsgFinished   = "Quiz finalizado!\nPressione Enter para enviar e ver seus resultados."
	MsgSubmitting = "Enviando respostas..."
)

// eventMsg carries an engine event through the app bus.
type eventMsg struct {
	qz.Event
}

// QuizScreen walks the user through the questionnaire.
type QuizScreen struct {
	env    *screen.Env
	engine *qz.Engine
	scale  components.Scale

	message string
	err     error
	done    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. An empty question set leaves the screen in an
// error state.
func New(env *screen.Env, questions qz.QuestionSet, submitter qz.Submitter) *QuizScreen {
	s := &QuizScreen{env: env}
	engine, err := qz.New(env.Ctx, questions, qz.Deps{
		Executor:  env.Exec,
		Submitter: submitter,
		Logger:    env.Log,
		Notify: func(e qz.Event) {
			env.Bus.Emit(eventMsg{e})
		},
	})
	if err != nil {
		s.err = err
		return s
	}
	s.engine = engine
	s.scale = components.NewScale(qz.Scale[:], s.answer)
	return s
}

// Engine exposes the underlying quiz engine.
func (s *QuizScreen) Engine() *qz.Engine {
	return s.engine
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.engine != nil {
		s.engine.Start()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Teste de Inteligências"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.engine != nil && s.engine.Phase() == qz.PhaseFinished {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Enviar Respostas"},
			{Key: "R", Description: "Recomeçar"},
			{Key: "Esc", Description: "Voltar"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-5", Description: "Responder"},
		{Key: "↑↓", Description: "Escolher"},
		{Key: "Enter", Description: "Confirmar"},
		{Key: "Esc", Description: "Voltar"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, nil
	}
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.handleEvent(msg.Event)
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleEvent(e qz.Event) tea.Cmd {
	switch e.Kind {
	case qz.QuestionChanged:
		s.message = ""
		s.scale.Selected = len(s.scale.Options) / 2

	case qz.Submitted:
		if s.done {
			return nil
		}
		s.done = true
		next := s.env.Nav.Results(e.Result)
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: next}
		}

	case qz.SubmissionFailed:
		s.message = e.Message
	}
	return nil
}

func (s *QuizScreen) handleKey(k tea.KeyPressMsg) tea.Cmd {
	switch s.engine.Phase() {
	case qz.PhaseInProgress:
		var cmd tea.Cmd
		s.scale, cmd = s.scale.Update(k)
		return cmd

	case qz.PhaseFinished:
		switch k.String() {
		case "enter":
			s.message = ""
			if err := s.engine.Submit(); err != nil {
				s.message = err.Error()
			}
		case "r":
			s.engine.Start()
		}
	}
	return nil
}

func (s *QuizScreen) answer(value int) tea.Cmd {
	if err := s.engine.Answer(value); err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) {
			s.message = verr.Message
		}
	}
	return nil
}

func (s *QuizScreen) View(width, height int) string {
	if s.err != nil {
		return components.Center(theme.Alert.Render("Nenhuma pergunta disponível."), width, height)
	}

	cw := components.ContentWidth(width)
	answered, total := s.engine.Progress()

	var body string
	switch s.engine.Phase() {
	case qz.PhaseNotStarted:
		body = theme.Hint.Render(MsgLoading)

	case qz.PhaseInProgress:
		q, idx, _ := s.engine.Current()
		body = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Pergunta %d de %d", idx+1, total)) +
			"\n\n" +
			lipgloss.NewStyle().
				Foreground(theme.Text).
				Bold(true).
				Width(cw-6).
				Render(q.Text) +
			"\n\n" + s.scale.View()

	case qz.PhaseFinished:
		body = lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(cw - 6).
			Render(MsgFinished)

	case qz.PhaseSubmitting, qz.PhaseSubmitted:
		body = theme.Hint.Render(MsgSubmitting)
	}

	var b strings.Builder
	bar := components.StepBar("Progresso", answered, total, cw)
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	b.WriteString(components.Card("", body, cw))

	if s.message != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Alert.Width(cw).Render("Erro: " + s.message))
	}

	return components.Center(b.String(), width, height)
}
