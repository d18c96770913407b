package dashboard

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
	"github.com/abhisek/luminar/internal/intelligence"
	"github.com/abhisek/luminar/internal/tokenstore"
)

type harness struct {
	loop   *dispatch.Loop
	events chan Event
	tokens *tokenstore.MemoryStore
	agg    *Aggregator
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newHarness(t *testing.T, source ProfileSource, tokens *tokenstore.MemoryStore) *harness {
	t.Helper()
	loop := dispatch.NewLoop()
	t.Cleanup(dispatch.Start(loop))

	h := &harness{loop: loop, events: make(chan Event, 16), tokens: tokens}
	h.agg = New(context.Background(), Deps{
		Executor: loop,
		Source:   source,
		Tokens:   tokens,
		Logger:   quietLogger(),
		Notify:   func(e Event) { h.events <- e },
		Location: time.UTC,
	})
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
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func sampleProfile() *api.Profile {
	return &api.Profile{
		User: api.User{ID: 7, FullName: "Maria Clara Souza"},
		IntelligenceTest: api.IntelligenceTest{
			TestDate: "2025-09-10T14:30:00.123Z",
			Intelligences: api.Intelligences{
				Linguistic: 60, LogicalMathematical: 70, Spatial: 80, Musical: 80,
				BodilyKinesthetic: 10, Naturalistic: 20, Interpersonal: 30, Intrapersonal: 40,
			},
		},
		AreaSuggestions: []api.AreaSuggestion{
			{Area: "Arquitetura", SampleProfessions: []string{"Arquiteta"}, Probability: "85%"},
		},
	}
}

func TestLoadReady(t *testing.T) {
	backend := api.NewMockBackend()
	backend.AddProfile(sampleProfile(), nil)
	h := newHarness(t, backend, tokenstore.NewMemoryStore())

	h.do(t, h.agg.Load)
	assert.Equal(t, Loading, h.next(t).Kind)

	e := h.next(t)
	require.Equal(t, Ready, e.Kind)
	snap := e.Snapshot
	assert.Equal(t, "Maria", snap.FirstName)
	assert.Equal(t, "Olá, Maria! Aqui está um resumo do seu perfil.", snap.Greeting)
	assert.Equal(t, "10 de setembro de 2025", snap.TestDate)
	assert.Equal(t, intelligence.Spatial, snap.Top)
	assert.Equal(t, 80, snap.TopScore)
	assert.Equal(t, intelligence.Musical, snap.Ranked[1].Dimension)
	require.Len(t, snap.Suggestions, 1)

	var state State
	h.do(t, func() { state = h.agg.State() })
	assert.Equal(t, StateReady, state)
}

func TestUnauthorizedProfileIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Save(context.Background(), "stale"))

	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL
	client := api.NewClient(cfg, tokens, api.WithLogger(quietLogger()))

	h := newHarness(t, client, tokens)
	h.do(t, h.agg.Load)
	assert.Equal(t, Loading, h.next(t).Kind)

	e := h.next(t)
	assert.Equal(t, Error, e.Kind)
	assert.Equal(t, MsgLoadFailed, e.Message)
	assert.Nil(t, e.Snapshot)

	var snap *Snapshot
	h.do(t, func() { snap = h.agg.Snapshot() })
	assert.Nil(t, snap)
}

func TestLoadWhileLoadingIsCoalesced(t *testing.T) {
	backend := api.NewMockBackend()
	backend.Gate = make(chan struct{})
	backend.AddProfile(sampleProfile(), nil)
	h := newHarness(t, backend, tokenstore.NewMemoryStore())

	h.do(t, func() {
		h.agg.Load()
		h.agg.Load()
	})
	assert.Equal(t, Loading, h.next(t).Kind)

	backend.Gate <- struct{}{}
	assert.Equal(t, Ready, h.next(t).Kind)
	assert.Equal(t, 1, backend.CallCount())
}

func TestRetryAfterError(t *testing.T) {
	backend := api.NewMockBackend()
	backend.AddProfile(nil, &api.ErrRequestFailed{Err: errors.New("offline")})
	backend.AddProfile(sampleProfile(), nil)
	h := newHarness(t, backend, tokenstore.NewMemoryStore())

	h.do(t, h.agg.Load)
	h.next(t)
	assert.Equal(t, Error, h.next(t).Kind)

	h.do(t, h.agg.Load)
	h.next(t)
	assert.Equal(t, Ready, h.next(t).Kind)
}

func TestLogoutDeletesToken(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Save(context.Background(), "abc"))
	h := newHarness(t, api.NewMockBackend(), tokens)

	var err error
	h.do(t, func() { err = h.agg.Logout() })
	require.NoError(t, err)
	assert.Equal(t, LoggedOut, h.next(t).Kind)

	_, err = tokens.Retrieve(context.Background())
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
}

func TestLogoutDropsInFlightLoad(t *testing.T) {
	backend := api.NewMockBackend()
	backend.Gate = make(chan struct{})
	backend.AddProfile(sampleProfile(), nil)
	h := newHarness(t, backend, tokenstore.NewMemoryStore())

	h.do(t, h.agg.Load)
	assert.Equal(t, Loading, h.next(t).Kind)

	h.do(t, func() { _ = h.agg.Logout() })
	assert.Equal(t, LoggedOut, h.next(t).Kind)

	backend.Gate <- struct{}{}

	// Flush: the completion is posted after the gate opens. Poll until the
	// mock has answered, then make sure no Ready arrives.
	require.Eventually(t, func() bool { return backend.CallCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	var state State
	h.do(t, func() { state = h.agg.State() })
	assert.Equal(t, StateIdle, state)
	select {
	case e := <-h.events:
		t.Fatalf("unexpected event after logout: %+v", e)
	default:
	}
}

func TestLoadAfterLogoutWaitsForStaleFetch(t *testing.T) {
	backend := api.NewMockBackend()
	backend.Gate = make(chan struct{})
	backend.AddProfile(sampleProfile(), nil)
	backend.AddProfile(sampleProfile(), nil)
	h := newHarness(t, backend, tokenstore.NewMemoryStore())

	h.do(t, h.agg.Load)
	assert.Equal(t, Loading, h.next(t).Kind)
	h.do(t, func() { _ = h.agg.Logout() })
	assert.Equal(t, LoggedOut, h.next(t).Kind)
	h.do(t, h.agg.Load)
	assert.Equal(t, Loading, h.next(t).Kind)

	// The first fetch is still blocked; the second must not have started.
	require.Eventually(t, func() bool { return backend.CallCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, backend.CallCount())

	backend.Gate <- struct{}{}
	require.Eventually(t, func() bool { return backend.CallCount() == 2 }, time.Second, 5*time.Millisecond)

	backend.Gate <- struct{}{}
	e := h.next(t)
	require.Equal(t, Ready, e.Kind)
	assert.Equal(t, "Maria", e.Snapshot.FirstName)
}

func TestFormatTestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-09-10T14:30:00.000Z", "10 de setembro de 2025"},
		{"2025-09-10T14:30:00Z", "10 de setembro de 2025"},
		{"2024-03-01T08:00:00-03:00", "1 de março de 2024"},
		{"2023-12-31T23:59:59.999999Z", "31 de dezembro de 2023"},
		{"10/09/2025", MsgUnknownDate},
		{"", MsgUnknownDate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTestDateIn(tt.in, time.UTC), "input %q", tt.in)
	}

	assert.Equal(t,
		FormatTestDateIn("2025-09-10T14:30:00Z", time.Local),
		FormatTestDate("2025-09-10T14:30:00Z"))
}

func TestFirstName(t *testing.T) {
	assert.Equal(t, "Maria", FirstName("Maria Clara Souza"))
	assert.Equal(t, "Ana", FirstName("  Ana  "))
	assert.Equal(t, "", FirstName(""))
}

func TestRankDimensionsTie(t *testing.T) {
	var s intelligence.Scores
	s[intelligence.Interpersonal] = 80
	s[intelligence.LogicalMathematical] = 80
	assert.Equal(t, intelligence.LogicalMathematical, RankDimensions(s))
}
