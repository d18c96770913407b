// Package auth implements the sign-in / sign-up state machine.
//
// A Session must only be used from its executor. Intents (SetMode,
// SetField, Submit) are called there, network work runs on a worker
// goroutine, and every Event is delivered back on the executor.
package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/dispatch"
	"github.com/abhisek/luminar/internal/tokenstore"
)

// Mode selects which form is active.
type Mode int

const (
	SignIn Mode = iota
	SignUp
)

func (m Mode) String() string {
	if m == SignUp {
		return "sign_up"
	}
	return "sign_in"
}

// Field identifies an editable form field.
type Field int

const (
	FieldFullName Field = iota
	FieldAge
	FieldGender
	FieldEmail
	FieldPassword
)

// DefaultGender is sent when no gender was entered.
const DefaultGender = "Masculino"

// Validation messages.
const (
	MsgCredentialsRequired = "Email e senha são obrigatórios."
	MsgNameAgeRequired     = "Nome e idade são obrigatórios."
)

// Backend is the subset of the gateway the session needs.
type Backend interface {
	Register(ctx context.Context, in api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, in api.LoginRequest) (*api.LoginResponse, error)
}

// EventKind identifies a state-change notification.
type EventKind int

const (
	ModeChanged EventKind = iota
	SubmittingChanged
	LoginSucceeded
	RegistrationSucceeded
	Failed
)

// Event is delivered to the listener on the executor. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind         EventKind
	Mode         Mode
	Submitting   bool
	Login        *api.LoginResponse
	Registration *api.RegisterResponse
	Message      string
	Err          error
}

// Form holds the raw field values as entered.
type Form struct {
	FullName string
	Age      string
	Gender   string
	Email    string
	Password string
}

// Deps are the collaborators of a Session.
type Deps struct {
	Executor dispatch.Executor
	Backend  Backend
	Tokens   tokenstore.Store
	Logger   logrus.FieldLogger
	Notify   func(Event)
}

// Session is the auth state machine: {SignIn, SignUp} x {Idle, Submitting}.
type Session struct {
	ctx      context.Context
	exec     dispatch.Executor
	backend  Backend
	tokens   tokenstore.Store
	log      logrus.FieldLogger
	notify   func(Event)
	validate *validator.Validate

	mode       Mode
	submitting bool
	form       Form
}

// New creates a Session in SignIn mode. ctx bounds every network call the
// session makes.
func New(ctx context.Context, deps Deps) *Session {
	s := &Session{
		ctx:      ctx,
		exec:     deps.Executor,
		backend:  deps.Backend,
		tokens:   deps.Tokens,
		log:      deps.Logger,
		notify:   deps.Notify,
		validate: newValidator(),
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.notify == nil {
		s.notify = func(Event) {}
	}
	s.log = s.log.WithField("component", "auth")
	return s
}

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Submitting() bool { return s.submitting }
func (s *Session) Form() Form { return s.form }

// SetMode switches forms. Switching to the active mode does nothing.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.notify(Event{Kind: ModeChanged, Mode: m})
}

// SetField stores a raw field value.
func (s *Session) SetField(f Field, value string) {
	switch f {
	case FieldFullName:
		s.form.FullName = value
	case FieldAge:
		s.form.Age = value
	case FieldGender:
		s.form.Gender = value
	case FieldEmail:
		s.form.Email = value
	case FieldPassword:
		s.form.Password = value
	}
}

// ActionTitle is the label of the submit action for the current mode.
func (s *Session) ActionTitle() string {
	if s.mode == SignUp {
		return "Cadastrar"
	}
	return "Entrar"
}

// VisibleFields lists the fields shown in the current mode, in display order.
func (s *Session) VisibleFields() []Field {
	if s.mode == SignUp {
		return []Field{FieldFullName, FieldAge, FieldEmail, FieldPassword}
	}
	return []Field{FieldEmail, FieldPassword}
}

// Submit validates the form and starts a login or registration. It is
// ignored while a previous submit is in flight. A validation failure is
// returned and also emitted as Failed; no request is made.
func (s *Session) Submit() error {
	if s.submitting {
		s.log.Debug("submit ignored: request already in flight")
		return nil
	}
	if s.mode == SignUp {
		return s.register()
	}
	return s.login()
}

func (s *Session) login() error {
	form := signInForm{Email: s.form.Email, Password: s.form.Password}
	if err := s.validate.Struct(form); err != nil {
		return s.rejectInput(MsgCredentialsRequired, err)
	}

	req := api.LoginRequest{Email: strings.TrimSpace(form.Email), Password: form.Password}
	s.setSubmitting(true)

	type outcome struct {
		resp *api.LoginResponse
		err  error
	}
	dispatch.Go(s.exec, func() outcome {
		resp, err := s.backend.Login(s.ctx, req)
		return outcome{resp, err}
	}, func(o outcome) {
		s.form.Password = ""
		s.setSubmitting(false)
		if o.err != nil {
			s.fail("login", o.err)
			return
		}
		if err := s.tokens.Save(s.ctx, o.resp.Token); err != nil {
			s.fail("save token", err)
			return
		}
		s.log.WithField("user_id", o.resp.User.ID).Info("login succeeded")
		s.notify(Event{Kind: LoginSucceeded, Login: o.resp})
	})
	return nil
}

func (s *Session) register() error {
	form := signUpForm{FullName: s.form.FullName, Age: s.form.Age}
	if err := s.validate.Struct(form); err != nil {
		return s.rejectInput(MsgNameAgeRequired, err)
	}
	age, _ := strconv.Atoi(strings.TrimSpace(form.Age))

	gender := s.form.Gender
	if gender == "" {
		gender = DefaultGender
	}
	req := api.RegisterRequest{
		FullName: strings.TrimSpace(form.FullName),
		Age:      age,
		Gender:   gender,
		Email:    strings.TrimSpace(s.form.Email),
		Password: s.form.Password,
	}
	s.setSubmitting(true)

	type outcome struct {
		resp *api.RegisterResponse
		err  error
	}
	dispatch.Go(s.exec, func() outcome {
		resp, err := s.backend.Register(s.ctx, req)
		return outcome{resp, err}
	}, func(o outcome) {
		s.form.Password = ""
		s.setSubmitting(false)
		if o.err != nil {
			s.fail("register", o.err)
			return
		}
		s.log.WithField("user_id", o.resp.ID).Info("registration succeeded")
		s.notify(Event{Kind: RegistrationSucceeded, Registration: o.resp})
	})
	return nil
}

func (s *Session) rejectInput(msg string, cause error) error {
	s.log.WithError(cause).Debug("form rejected")
	err := &api.ValidationError{Message: msg}
	s.notify(Event{Kind: Failed, Message: msg, Err: err})
	return err
}

func (s *Session) fail(op string, err error) {
	s.log.WithFields(logrus.Fields{
		"op":         op,
		"error_kind": api.KindOf(err).String(),
	}).WithError(err).Warn("auth request failed")
	s.notify(Event{Kind: Failed, Message: api.UserMessage(err), Err: err})
}

func (s *Session) setSubmitting(v bool) {
	s.submitting = v
	s.notify(Event{Kind: SubmittingChanged, Submitting: v})
}
