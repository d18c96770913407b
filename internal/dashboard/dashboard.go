// Package dashboard loads the signed-in user's profile and derives what
// the dashboard shows: greeting, top dimension, formatted test date and
// career suggestions. It also owns logout.
package dashboard

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
	"github.com/abhisek/luminar/internal/intelligence"
	"github.com/abhisek/luminar/internal/tokenstore"
)

// MsgLoadFailed is the single message shown for any load failure.
const MsgLoadFailed = "Não foi possível carregar seu perfil. Tente novamente."

// ProfileSource fetches the protected profile.
type ProfileSource interface {
	FetchProfile(ctx context.Context) (*api.Profile, error)
}

// State is the aggregator's load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// EventKind identifies a state-change notification.
type EventKind int

const (
	Loading EventKind = iota
	Ready
	Error
	LoggedOut
)

// Event is delivered to the listener on the executor.
type Event struct {
	Kind     EventKind
	Snapshot *Snapshot
	Message  string
}

// Snapshot is a loaded profile plus the values derived from it.
type Snapshot struct {
	Profile     *api.Profile
	FirstName   string
	Greeting    string
	TestDate    string
	Top         intelligence.Dimension
	TopScore    int
	Ranked      []intelligence.Entry
	Suggestions []api.AreaSuggestion
}

// BuildSnapshot derives display values from p. Dates are rendered in loc.
func BuildSnapshot(p *api.Profile, loc *time.Location) *Snapshot {
	scores := p.IntelligenceTest.Intelligences.Scores()
	top := RankDimensions(scores)
	return &Snapshot{
		Profile:     p,
		FirstName:   FirstName(p.User.FullName),
		Greeting:    Greeting(p.User.FullName),
		TestDate:    FormatTestDateIn(p.IntelligenceTest.TestDate, loc),
		Top:         top,
		TopScore:    scores[top],
		Ranked:      intelligence.Rank(scores, nil),
		Suggestions: p.AreaSuggestions,
	}
}

// Deps are the collaborators of an Aggregator.
type Deps struct {
	Executor dispatch.Executor
	Source   ProfileSource
	Tokens   tokenstore.Store
	Logger   logrus.FieldLogger
	Notify   func(Event)

	// Location for date rendering. Default: time.Local.
	Location *time.Location
}

// Aggregator drives the dashboard. It is confined to its executor.
type Aggregator struct {
	ctx    context.Context
	exec   dispatch.Executor
	source ProfileSource
	tokens tokenstore.Store
	log    logrus.FieldLogger
	notify func(Event)
	loc    *time.Location

	state    State
	snapshot *Snapshot
	// gen is bumped by Logout so a load that was in flight is dropped.
	gen int
	// inflight is set while a fetch runs, including one Logout made stale.
	// A Load during a stale fetch sets pending and starts once it returns.
	inflight bool
	pending  bool
}

// New creates an idle Aggregator.
func New(ctx context.Context, deps Deps) *Aggregator {
	a := &Aggregator{
		ctx:    ctx,
		exec:   deps.Executor,
		source: deps.Source,
		tokens: deps.Tokens,
		log:    deps.Logger,
		notify: deps.Notify,
		loc:    deps.Location,
	}
	if a.log == nil {
		a.log = logrus.StandardLogger()
	}
	if a.notify == nil {
		a.notify = func(Event) {}
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	a.log = a.log.WithField("component", "dashboard")
	return a
}

func (a *Aggregator) State() State { return a.state }
func (a *Aggregator) Snapshot() *Snapshot { return a.snapshot }

// Load fetches the profile. A call while a load is in flight is a no-op.
func (a *Aggregator) Load() {
	if a.state == StateLoading {
		a.log.Debug("load ignored: already loading")
		return
	}
	a.state = StateLoading
	a.notify(Event{Kind: Loading})

	if a.inflight {
		a.log.Debug("load deferred: previous fetch still running")
		a.pending = true
		return
	}
	a.fetch()
}

func (a *Aggregator) fetch() {
	a.inflight = true
	gen := a.gen
	type outcome struct {
		profile *api.Profile
		err     error
	}
	dispatch.Go(a.exec, func() outcome {
		p, err := a.source.FetchProfile(a.ctx)
		return outcome{p, err}
	}, func(o outcome) {
		a.inflight = false
		if gen != a.gen {
			a.log.Debug("dropping profile load that finished after logout")
			if a.pending {
				a.pending = false
				a.fetch()
			}
			return
		}
		if o.err != nil {
			a.state = StateError
			a.log.WithFields(logrus.Fields{
				"error_kind": api.KindOf(o.err).String(),
				"status":     api.StatusCode(o.err),
			}).WithError(o.err).Warn("profile load failed")
			a.notify(Event{Kind: Error, Message: MsgLoadFailed})
			return
		}
		a.state = StateReady
		a.snapshot = BuildSnapshot(o.profile, a.loc)
		a.notify(Event{Kind: Ready, Snapshot: a.snapshot})
	})
}

// Logout deletes the stored token and emits LoggedOut. If the token cannot
// be deleted the error is returned and the session is left as is.
func (a *Aggregator) Logout() error {
	if err := a.tokens.Delete(a.ctx); err != nil {
		a.log.WithError(err).Error("logout: delete token")
		return err
	}
	a.gen++
	a.pending = false
	a.state = StateIdle
	a.snapshot = nil
	a.log.Info("logged out")
	a.notify(Event{Kind: LoggedOut})
	return nil
}
