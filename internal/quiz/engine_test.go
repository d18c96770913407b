package quiz

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
)

type harness struct {
	loop    *dispatch.Loop
	events  chan Event
	backend *api.MockBackend
	engine  *Engine
}

func newHarness(t *testing.T, qs QuestionSet) *harness {
	t.Helper()
	loop := dispatch.NewLoop()
	t.Cleanup(dispatch.Start(loop))

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := &harness{
		loop:    loop,
		events:  make(chan Event, 256),
		backend: api.NewMockBackend(),
	}
	e, err := New(context.Background(), qs, Deps{
		Executor:  loop,
		Submitter: h.backend,
		Logger:    log,
		Notify:    func(ev Event) { h.events <- ev },
	})
	require.NoError(t, err)
	h.engine = e
	return h
}

func (h *harness) do(t *testing.T, fn func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.True(t, h.loop.Call(ctx, fn), "loop call timed out")
}

func (h *harness) next(t *testing.T) Event {
	t.Helper()
	select {
	case e := <-h.events:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func (h *harness) drain() {
	for {
		select {
		case <-h.events:
		default:
			return
		}
	}
}

func (h *harness) answerAll(t *testing.T, values []int) {
	t.Helper()
	var errs []error
	h.do(t, func() {
		for _, v := range values {
			errs = append(errs, h.engine.Answer(v))
		}
	})
	for i, err := range errs {
		require.NoError(t, err, "answer %d", i)
	}
}

func threeQuestions() QuestionSet {
	return NewQuestionSet("q1", "q2", "q3")
}

func TestNewRejectsEmptySet(t *testing.T) {
	_, err := New(context.Background(), QuestionSet{}, Deps{})
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)
}

func TestDefaultQuestions(t *testing.T) {
	qs, err := DefaultQuestions()
	require.NoError(t, err)
	require.Equal(t, 45, qs.Len())
	assert.Equal(t, "É fácil para mim identificar como me sinto e por quê", qs.At(0).Text)
	assert.Equal(t, "Estou sempre descobrindo novos tipos de música", qs.At(44).Text)
}

func TestParseQuestionsErrors(t *testing.T) {
	_, err := ParseQuestions([]byte("questions: []"))
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)

	_, err = ParseQuestions([]byte("questions:\n  - text: \"\"\n"))
	assert.Error(t, err)

	_, err = ParseQuestions([]byte("questions: ["))
	assert.Error(t, err)
}

func TestStartEmitsFirstQuestion(t *testing.T) {
	h := newHarness(t, threeQuestions())
	h.do(t, h.engine.Start)

	e := h.next(t)
	assert.Equal(t, QuestionChanged, e.Kind)
	assert.Equal(t, 0, e.Index)
	assert.Equal(t, 3, e.Total)
	assert.Equal(t, "q1", e.Question.Text)
}

func TestAnsweringEveryQuestionFinishes(t *testing.T) {
	h := newHarness(t, threeQuestions())
	h.do(t, h.engine.Start)
	h.next(t)

	h.answerAll(t, []int{5, 1, 3})

	e := h.next(t)
	assert.Equal(t, QuestionChanged, e.Kind)
	assert.Equal(t, "q2", e.Question.Text)
	e = h.next(t)
	assert.Equal(t, "q3", e.Question.Text)
	assert.Equal(t, Completed, h.next(t).Kind)

	var phase Phase
	var answers []int
	h.do(t, func() {
		phase = h.engine.Phase()
		answers = h.engine.Answers()
	})
	assert.Equal(t, PhaseFinished, phase)
	assert.Equal(t, []int{5, 1, 3}, answers)
}

func TestOutOfRangeAnswerChangesNothing(t *testing.T) {
	h := newHarness(t, threeQuestions())
	h.do(t, h.engine.Start)
	h.next(t)

	for _, v := range []int{0, 6, -1, 100} {
		var err error
		var answered int
		var index int
		h.do(t, func() {
			err = h.engine.Answer(v)
			answered, _ = h.engine.Progress()
			_, index, _ = h.engine.Current()
		})
		var ve *api.ValidationError
		require.ErrorAs(t, err, &ve, "value %d", v)
		assert.Equal(t, MsgAnswerOutOfRange, ve.Message)
		assert.Zero(t, answered)
		assert.Zero(t, index)
	}

	select {
	case e := <-h.events:
		t.Fatalf("unexpected event %+v", e)
	default:
	}
}

func TestAnswerOutsideProgress(t *testing.T) {
	h := newHarness(t, NewQuestionSet("only"))

	var err error
	h.do(t, func() { err = h.engine.Answer(3) })
	assert.ErrorIs(t, err, ErrNotInProgress)

	h.do(t, h.engine.Start)
	h.answerAll(t, []int{3})
	h.do(t, func() { err = h.engine.Answer(3) })
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestSubmitOnlyFromFinished(t *testing.T) {
	h := newHarness(t, threeQuestions())

	var err error
	h.do(t, func() { err = h.engine.Submit() })
	assert.ErrorIs(t, err, ErrNotFinished)

	h.do(t, h.engine.Start)
	h.answerAll(t, []int{1, 2})
	h.do(t, func() { err = h.engine.Submit() })
	assert.ErrorIs(t, err, ErrNotFinished)

	assert.Zero(t, h.backend.CallCount())
}

func TestSubmitSendsAnswersAndStoresResult(t *testing.T) {
	h := newHarness(t, threeQuestions())
	result := &api.TestResult{Intelligences: api.Intelligences{Musical: 90}}
	h.backend.AddSubmit(result, nil)

	h.do(t, h.engine.Start)
	h.answerAll(t, []int{4, 4, 2})
	h.drain()

	var err error
	h.do(t, func() { err = h.engine.Submit() })
	require.NoError(t, err)

	e := h.next(t)
	require.Equal(t, Submitted, e.Kind)
	assert.Same(t, result, e.Result)
	assert.Equal(t, [][]int{{4, 4, 2}}, h.backend.Answers)

	var phase Phase
	h.do(t, func() { phase = h.engine.Phase() })
	assert.Equal(t, PhaseSubmitted, phase)
}

func TestDoubleSubmitMakesOneCall(t *testing.T) {
	h := newHarness(t, NewQuestionSet("only"))
	h.backend.Gate = make(chan struct{})
	h.backend.AddSubmit(&api.TestResult{}, nil)

	h.do(t, h.engine.Start)
	h.answerAll(t, []int{5})
	h.drain()

	var first, second error
	var phase Phase
	h.do(t, func() {
		first = h.engine.Submit()
		second = h.engine.Submit()
		phase = h.engine.Phase()
	})
	require.NoError(t, first)
	require.NoError(t, second)
	assert.Equal(t, PhaseSubmitting, phase)

	// Start is ignored while submitting.
	h.do(t, h.engine.Start)

	h.backend.Gate <- struct{}{}
	assert.Equal(t, Submitted, h.next(t).Kind)
	assert.Equal(t, 1, h.backend.CallCount())
}

func TestSubmissionFailureKeepsAnswers(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"session expired", &api.ErrTokenNotFound{}, MsgSessionExpired},
		{"server unreachable", &api.ErrInvalidResponse{StatusCode: 502}, MsgConnectivity},
		{"transport", &api.ErrRequestFailed{Err: errors.New("reset")}, MsgUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, NewQuestionSet("a", "b"))
			h.backend.AddSubmit(nil, tt.err)
			h.backend.AddSubmit(&api.TestResult{}, nil)

			h.do(t, h.engine.Start)
			h.answerAll(t, []int{2, 3})
			h.drain()

			var err error
			h.do(t, func() { err = h.engine.Submit() })
			require.NoError(t, err)

			e := h.next(t)
			require.Equal(t, SubmissionFailed, e.Kind)
			assert.Equal(t, tt.want, e.Message)

			var phase Phase
			var answers []int
			h.do(t, func() {
				phase = h.engine.Phase()
				answers = h.engine.Answers()
			})
			assert.Equal(t, PhaseFinished, phase)
			assert.Equal(t, []int{2, 3}, answers)

			// Retry is allowed from Finished.
			h.do(t, func() { err = h.engine.Submit() })
			require.NoError(t, err)
			assert.Equal(t, Submitted, h.next(t).Kind)
		})
	}
}

func TestRestartAfterSubmitted(t *testing.T) {
	h := newHarness(t, NewQuestionSet("a", "b"))
	h.backend.AddSubmit(&api.TestResult{}, nil)

	h.do(t, h.engine.Start)
	h.answerAll(t, []int{1, 1})
	h.drain()
	h.do(t, func() { _ = h.engine.Submit() })
	require.Equal(t, Submitted, h.next(t).Kind)

	h.do(t, h.engine.Start)
	e := h.next(t)
	assert.Equal(t, QuestionChanged, e.Kind)
	assert.Equal(t, 0, e.Index)

	var answered, total int
	var result *api.TestResult
	h.do(t, func() {
		answered, total = h.engine.Progress()
		result = h.engine.Result()
	})
	assert.Equal(t, 0, answered)
	assert.Equal(t, 2, total)
	assert.Nil(t, result)
}
