package auth

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	authn "github.com/abhisek/luminar/internal/auth"
	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	"github.com/abhisek/luminar/internal/tokenstore"
	"github.com/abhisek/luminar/internal/ui/components"
	"github.com/abhisek/luminar/internal/ui/layout"
	"github.com/abhisek/luminar/internal/ui/theme"
)

// MsgRegistered is shown after a successful sign-up when the server sends
// no message of its own.
const MsgRegistered = "Cadastro realizado! Faça o login."

// eventMsg carries a session event through the app bus.
type eventMsg struct {
	authn.Event
}

// AuthScreen is the sign-in / sign-up form.
type AuthScreen struct {
	env     *screen.Env
	session *authn.Session
	inputs  map[authn.Field]*components.TextInput
	focus   int

	message string
	isError bool
	done    bool
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates an AuthScreen in sign-in mode.
func New(env *screen.Env, backend authn.Backend, tokens tokenstore.Store) *AuthScreen {
	s := &AuthScreen{env: env}
	s.session = authn.New(env.Ctx, authn.Deps{
		Executor: env.Exec,
		Backend:  backend,
		Tokens:   tokens,
		Logger:   env.Log,
		Notify: func(e authn.Event) {
			env.Bus.Emit(eventMsg{e})
		},
	})

	name := components.NewTextInput("Nome completo", "Seu nome", false, 120)
	age := components.NewTextInput("Idade", "Ex: 17", true, 3)
	email := components.NewTextInput("Email", "voce@exemplo.com", false, 254)
	password := components.NewPasswordInput("Senha")
	s.inputs = map[authn.Field]*components.TextInput{
		authn.FieldFullName: &name,
		authn.FieldAge:      &age,
		authn.FieldEmail:    &email,
		authn.FieldPassword: &password,
	}
	return s
}

// Session exposes the underlying auth session.
func (s *AuthScreen) Session() *authn.Session {
	return s.session
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *AuthScreen) Title() string {
	return s.session.ActionTitle()
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	other := "Cadastrar"
	if s.session.Mode() == authn.SignUp {
		other = "Entrar"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Próximo campo"},
		{Key: "Enter", Description: s.session.ActionTitle()},
		{Key: "Ctrl+T", Description: other},
		{Key: "Ctrl+C", Description: "Sair"},
	}
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return s, s.handleEvent(msg.Event)
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *AuthScreen) handleEvent(e authn.Event) tea.Cmd {
	switch e.Kind {
	case authn.ModeChanged:
		return s.setFocus(0)

	case authn.SubmittingChanged:
		if !e.Submitting {
			s.inputs[authn.FieldPassword].SetValue("")
		}

	case authn.LoginSucceeded:
		if s.done {
			return nil
		}
		s.done = true
		next := s.env.Nav.Dashboard()
		return func() tea.Msg {
			return router.ResetScreenMsg{Screen: next}
		}

	case authn.RegistrationSucceeded:
		s.message = MsgRegistered
		if e.Registration != nil && e.Registration.Message != "" {
			s.message = e.Registration.Message
		}
		s.isError = false
		s.session.SetMode(authn.SignIn)

	case authn.Failed:
		s.message = e.Message
		s.isError = true
	}
	return nil
}

func (s *AuthScreen) handleKey(k tea.KeyPressMsg) tea.Cmd {
	if s.session.Submitting() {
		return nil
	}

	fields := s.session.VisibleFields()
	switch k.String() {
	case "tab", "down":
		return s.setFocus((s.focus + 1) % len(fields))
	case "shift+tab", "up":
		return s.setFocus((s.focus + len(fields) - 1) % len(fields))
	case "ctrl+t":
		s.message = ""
		if s.session.Mode() == authn.SignIn {
			s.session.SetMode(authn.SignUp)
		} else {
			s.session.SetMode(authn.SignIn)
		}
		return nil
	case "enter":
		if s.focus < len(fields)-1 {
			return s.setFocus(s.focus + 1)
		}
		s.message = ""
		// Validation failures come back as a Failed event.
		_ = s.session.Submit()
		return nil
	}

	f := fields[s.focus]
	in := s.inputs[f]
	updated, cmd := in.Update(k)
	*in = updated
	s.session.SetField(f, in.Value())
	return cmd
}

func (s *AuthScreen) setFocus(i int) tea.Cmd {
	fields := s.session.VisibleFields()
	if i >= len(fields) {
		i = 0
	}
	s.focus = i

	var cmd tea.Cmd
	for idx, f := range fields {
		if idx == i {
			cmd = s.inputs[f].Focus()
		} else {
			s.inputs[f].Blur()
		}
	}
	return cmd
}

func (s *AuthScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 56 {
		cw = 56
	}

	var rows []string
	for _, f := range s.session.VisibleFields() {
		rows = append(rows, s.inputs[f].View())
	}
	rows = append(rows, "")

	state := components.ButtonReady
	if s.session.Submitting() {
		state = components.ButtonBusy
	}
	rows = append(rows, components.SubmitButton(s.session.ActionTitle(), state))

	if s.message != "" {
		style := theme.Notice
		if s.isError {
			style = theme.Alert
		}
		rows = append(rows, "", style.Width(cw-6).Render(s.message))
	}

	card := components.Card(s.session.ActionTitle(), strings.Join(rows, "\n"), cw)

	switchHint := "Não tem conta? Ctrl+T para se cadastrar."
	if s.session.Mode() == authn.SignUp {
		switchHint = "Já tem conta? Ctrl+T para entrar."
	}
	content := lipgloss.JoinVertical(lipgloss.Center, card, "", theme.Hint.Render(switchHint))

	return components.Center(content, width, height)
}
