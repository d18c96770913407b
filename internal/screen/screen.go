package screen

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
	"github.com/abhisek/luminar/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// line on the right side of the header.
type StatusProvider interface {
	Status() string
}

// Navigator builds the screens of the app flow. Screens use it to move
// between each other without importing one another.
type Navigator interface {
	Auth() Screen
	Dashboard() Screen
	Quiz() Screen
	Results(result *api.TestResult) Screen
}

// Bus queues messages raised while another message is being handled.
// The app model delivers them to the router, in order, before Update
// returns.
type Bus struct {
	queue []tea.Msg
}

// Emit queues msg for delivery.
func (b *Bus) Emit(msg tea.Msg) {
	b.queue = append(b.queue, msg)
}

// Drain returns the queued messages and empties the queue.
func (b *Bus) Drain() []tea.Msg {
	q := b.queue
	b.queue = nil
	return q
}

// Env is the shared environment handed to every screen.
type Env struct {
	Ctx  context.Context
	Exec dispatch.Executor
	Bus  *Bus
	Nav  Navigator
	Log  logrus.FieldLogger
}
