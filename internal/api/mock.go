package api

import (
	"context"
	"errors"
	"sync"
)

// MockResult is a canned outcome for one MockBackend call.
type MockResult[T any] struct {
	Value *T
	Err   error
}

// MockBackend is a deterministic stand-in for Client's endpoint methods.
// Each endpoint returns canned results in FIFO order; every call is
// recorded before it is answered.
type MockBackend struct {
	// Gate, when non-nil, holds each call until a value is received from
	// it or the call's context ends. Used to observe in-flight state.
	Gate chan struct{}

	mu        sync.Mutex
	register  []MockResult[RegisterResponse]
	login     []MockResult[LoginResponse]
	profile   []MockResult[Profile]
	submit    []MockResult[TestResult]
	Calls     []string
	Registers []RegisterRequest
	Logins    []LoginRequest
	Answers   [][]int
}

// errNoCannedResult is returned when an endpoint's queue is empty.
var errNoCannedResult = &ErrRequestFailed{Err: errors.New("mock: no canned result")}

// NewMockBackend creates an empty MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

func (m *MockBackend) AddRegister(v *RegisterResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.register = append(m.register, MockResult[RegisterResponse]{v, err})
}

func (m *MockBackend) AddLogin(v *LoginResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.login = append(m.login, MockResult[LoginResponse]{v, err})
}

func (m *MockBackend) AddProfile(v *Profile, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = append(m.profile, MockResult[Profile]{v, err})
}

func (m *MockBackend) AddSubmit(v *TestResult, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submit = append(m.submit, MockResult[TestResult]{v, err})
}

func (m *MockBackend) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	m.record("register", func() { m.Registers = append(m.Registers, in) })
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return pop(&m.mu, &m.register)
}

func (m *MockBackend) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	m.record("login", func() { m.Logins = append(m.Logins, in) })
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return pop(&m.mu, &m.login)
}

func (m *MockBackend) FetchProfile(ctx context.Context) (*Profile, error) {
	m.record("profile", nil)
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return pop(&m.mu, &m.profile)
}

func (m *MockBackend) SubmitTest(ctx context.Context, answers []int) (*TestResult, error) {
	cp := append([]int(nil), answers...)
	m.record("submit_test", func() { m.Answers = append(m.Answers, cp) })
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return pop(&m.mu, &m.submit)
}

// CallCount returns the number of endpoint calls made.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockBackend) record(name string, extra func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, name)
	if extra != nil {
		extra()
	}
}

func (m *MockBackend) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return &ErrRequestFailed{Err: ctx.Err()}
	}
}

func pop[T any](mu *sync.Mutex, queue *[]MockResult[T]) (*T, error) {
	mu.Lock()
	defer mu.Unlock()
	if len(*queue) == 0 {
		return nil, errNoCannedResult
	}
	r := (*queue)[0]
	*queue = (*queue)[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Value, nil
}
