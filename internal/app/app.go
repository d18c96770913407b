package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/api"
	authn "github.com/abhisek/luminar/internal/auth"
	dash "github.com/abhisek/luminar/internal/dashboard"
	"github.com/abhisek/luminar/internal/dispatch"
	qz "github.com/abhisek/luminar/internal/quiz"
	"github.com/abhisek/luminar/internal/router"
	"github.com/abhisek/luminar/internal/screen"
	authscreen "github.com/abhisek/luminar/internal/screens/auth"
	dashscreen "github.com/abhisek/luminar/internal/screens/dashboard"
	quizscreen "github.com/abhisek/luminar/internal/screens/quiz"
	resultsscreen "github.com/abhisek/luminar/internal/screens/results"
	"github.com/abhisek/luminar/internal/screens/welcome"
	"github.com/abhisek/luminar/internal/tokenstore"
	"github.com/abhisek/luminar/internal/ui/layout"
)

// Backend is everything the screens need from the server.
type Backend interface {
	authn.Backend
	qz.Submitter
	dash.ProfileSource
}

// Options configure the interactive app.
type Options struct {
	Backend   Backend
	Tokens    tokenstore.Store
	Questions qz.QuestionSet
	Logger    logrus.FieldLogger

	// SkipSplash starts directly on the first real screen.
	SkipSplash bool
}

// taskMsg carries a closure posted to the program executor. It runs inside
// Update, so component state is only ever touched from the program loop.
type taskMsg func()

// programExecutor posts closures into a running tea.Program. Post must not
// be called from Update itself.
type programExecutor struct {
	mu sync.Mutex
	p  *tea.Program
}

func (e *programExecutor) attach(p *tea.Program) {
	e.mu.Lock()
	e.p = p
	e.mu.Unlock()
}

func (e *programExecutor) Post(fn func()) {
	e.mu.Lock()
	p := e.p
	e.mu.Unlock()
	if p == nil {
		return
	}
	p.Send(taskMsg(fn))
}

// navigator builds screens for the app flow.
type navigator struct {
	env  *screen.Env
	opts Options
}

var _ screen.Navigator = (*navigator)(nil)

func (n *navigator) Auth() screen.Screen {
	return authscreen.New(n.env, n.opts.Backend, n.opts.Tokens)
}

func (n *navigator) Dashboard() screen.Screen {
	return dashscreen.New(n.env, n.opts.Backend, n.opts.Tokens)
}

func (n *navigator) Quiz() screen.Screen {
	return quizscreen.New(n.env, n.opts.Questions, n.opts.Backend)
}

func (n *navigator) Results(r *api.TestResult) screen.Screen {
	return resultsscreen.New(n.env, r)
}

// first picks the dashboard when a token is stored and the auth form
// otherwise.
func (n *navigator) first() screen.Screen {
	_, err := n.opts.Tokens.Retrieve(n.env.Ctx)
	switch {
	case err == nil:
		return n.Dashboard()
	case !errors.Is(err, tokenstore.ErrNotFound):
		n.env.Log.WithError(err).Warn("token lookup failed; starting at sign-in")
	}
	return n.Auth()
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	bus    *screen.Bus
	width  int
	height int
}

// newAppModel creates the root model with the splash (or first) screen.
func newAppModel(ctx context.Context, opts Options, exec dispatch.Executor) AppModel {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	bus := &screen.Bus{}
	nav := &navigator{opts: opts}
	nav.env = &screen.Env{
		Ctx:  ctx,
		Exec: exec,
		Bus:  bus,
		Nav:  nav,
		Log:  log,
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = nav.first()
	} else {
		initial = welcome.New(nav.first)
	}
	return newModel(router.New(initial), bus)
}

func newModel(r *router.Router, bus *screen.Bus) AppModel {
	return AppModel{router: r, bus: bus}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Init()}
	cmds = append(cmds, m.flush()...)
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case taskMsg:
		msg()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
		cmds = append(cmds, m.router.Update(msg))

	default:
		cmds = append(cmds, m.router.Update(msg))
	}

	cmds = append(cmds, m.flush()...)
	return m, tea.Batch(cmds...)
}

// flush delivers bus messages to the router until the bus stays empty.
func (m AppModel) flush() []tea.Cmd {
	var cmds []tea.Cmd
	for {
		msgs := m.bus.Drain()
		if len(msgs) == 0 {
			return cmds
		}
		for _, msg := range msgs {
			cmds = append(cmds, m.router.Update(msg))
		}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Sair"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	exec := &programExecutor{}
	p := tea.NewProgram(newAppModel(ctx, opts, exec), tea.WithContext(ctx))
	exec.attach(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
