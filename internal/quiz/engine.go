// Package quiz runs the questionnaire: one question at a time, answers on
// a 1-5 scale, and a single submission of the full answer sequence.
//
// Like auth.Session, an Engine is confined to its executor.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
)

// Phase is the current engine phase.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress       // Serving questions
	PhaseFinished         // All questions answered, ready to submit
	PhaseSubmitting       // Submission in flight
	PhaseSubmitted        // Result received
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinished:
		return "finished"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSubmitted:
		return "submitted"
	default:
		return "not_started"
	}
}

var (
	ErrNotInProgress = errors.New("quiz is not in progress")
	ErrNotFinished   = errors.New("quiz is not finished")
)

// Submission failure messages.
const (
	MsgConnectivity   = "Não foi possível conectar ao servidor. Tente novamente mais tarde."
	MsgSessionExpired = "Sua sessão expirou. Por favor, faça o login novamente."
	MsgUnexpected     = "Ocorreu um erro inesperado. Por favor, tente novamente."
)

// MsgAnswerOutOfRange is the validation message for answers outside 1-5.
var MsgAnswerOutOfRange = fmt.Sprintf("A resposta deve estar entre %d e %d.", MinAnswer, MaxAnswer)

// Submitter sends a completed answer sequence for scoring.
type Submitter interface {
	SubmitTest(ctx context.Context, answers []int) (*api.TestResult, error)
}

// EventKind identifies a state-change notification.
type EventKind int

const (
	QuestionChanged EventKind = iota
	Completed
	Submitted
	SubmissionFailed
)

// Event is delivered to the listener on the executor.
type Event struct {
	Kind EventKind

	// QuestionChanged
	Index    int
	Total    int
	Question Question

	// Submitted
	Result *api.TestResult

	// SubmissionFailed
	Message string
	Err     error
}

// Deps are the collaborators of an Engine.
type Deps struct {
	Executor  dispatch.Executor
	Submitter Submitter
	Logger    logrus.FieldLogger
	Notify    func(Event)
}

// Engine is the quiz state machine.
type Engine struct {
	ctx       context.Context
	exec      dispatch.Executor
	submitter Submitter
	log       logrus.FieldLogger
	notify    func(Event)

	questions QuestionSet
	phase     Phase
	index     int
	answers   []int
	result    *api.TestResult
}

// New creates an Engine in PhaseNotStarted. It fails with
// ErrEmptyQuestionSet when questions is empty.
func New(ctx context.Context, questions QuestionSet, deps Deps) (*Engine, error) {
	if questions.Len() == 0 {
		return nil, ErrEmptyQuestionSet
	}
	e := &Engine{
		ctx:       ctx,
		exec:      deps.Executor,
		submitter: deps.Submitter,
		log:       deps.Logger,
		notify:    deps.Notify,
		questions: questions,
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}
	if e.notify == nil {
		e.notify = func(Event) {}
	}
	e.log = e.log.WithField("component", "quiz")
	return e, nil
}

func (e *Engine) Phase() Phase { return e.phase }
func (e *Engine) Result() *api.TestResult { return e.result }
func (e *Engine) Questions() QuestionSet { return e.questions }
func (e *Engine) Progress() (answered, total int) {
	return len(e.answers), e.questions.Len()
}

// Answers returns a copy of the answers collected so far.
func (e *Engine) Answers() []int {
	return append([]int(nil), e.answers...)
}

// Current returns the question awaiting an answer. ok is false outside
// PhaseInProgress.
func (e *Engine) Current() (q Question, index int, ok bool) {
	if e.phase != PhaseInProgress {
		return Question{}, 0, false
	}
	return e.questions.At(e.index), e.index, true
}

// Start clears all answers and presents the first question. It restarts a
// quiz in any phase except PhaseSubmitting, where it is ignored.
func (e *Engine) Start() {
	if e.phase == PhaseSubmitting {
		e.log.Debug("start ignored: submission in flight")
		return
	}
	e.answers = nil
	e.index = 0
	e.result = nil
	e.phase = PhaseInProgress
	e.emitQuestion()
}

// Answer records value for the current question and advances. Values
// outside 1-5 return a *api.ValidationError and change nothing.
func (e *Engine) Answer(value int) error {
	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if value < MinAnswer || value > MaxAnswer {
		return &api.ValidationError{Message: MsgAnswerOutOfRange}
	}

	e.answers = append(e.answers, value)
	e.index++

	if e.index == e.questions.Len() {
		e.phase = PhaseFinished
		e.notify(Event{Kind: Completed})
		return nil
	}
	e.emitQuestion()
	return nil
}

// Submit sends the full answer sequence. It is valid only in
// PhaseFinished; a call while a submission is in flight is a no-op.
func (e *Engine) Submit() error {
	switch e.phase {
	case PhaseSubmitting:
		e.log.Debug("submit ignored: submission in flight")
		return nil
	case PhaseFinished:
	default:
		return ErrNotFinished
	}

	e.phase = PhaseSubmitting
	answers := e.Answers()

	type outcome struct {
		result *api.TestResult
		err    error
	}
	dispatch.Go(e.exec, func() outcome {
		res, err := e.submitter.SubmitTest(e.ctx, answers)
		return outcome{res, err}
	}, func(o outcome) {
		if o.err != nil {
			e.phase = PhaseFinished
			e.log.WithField("error_kind", api.KindOf(o.err).String()).
				WithError(o.err).Warn("test submission failed")
			e.notify(Event{Kind: SubmissionFailed, Message: SubmissionMessage(o.err), Err: o.err})
			return
		}
		e.phase = PhaseSubmitted
		e.result = o.result
		e.log.WithField("answers", len(answers)).Info("test submitted")
		e.notify(Event{Kind: Submitted, Result: o.result})
	})
	return nil
}

// SubmissionMessage maps a submission error to display text.
func SubmissionMessage(err error) string {
	switch api.KindOf(err) {
	case api.KindInvalidResponse:
		return MsgConnectivity
	case api.KindTokenNotFound:
		return MsgSessionExpired
	default:
		return MsgUnexpected
	}
}

func (e *Engine) emitQuestion() {
	e.notify(Event{
		Kind:     QuestionChanged,
		Index:    e.index,
		Total:    e.questions.Len(),
		Question: e.questions.At(e.index),
	})
}
