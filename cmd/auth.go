package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	authn "github.com/abhisek/luminar/internal/auth"
	"github.com/abhisek/luminar/internal/tokenstore"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the auth token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			p, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			password = p
		}

		form := map[authn.Field]string{
			authn.FieldEmail:    email,
			authn.FieldPassword: password,
		}
		ev, err := submitAuth(cmd, authn.SignIn, form)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Login realizado.")
		if name := ev.Login.User.FullName; name != "" {
			fmt.Fprintf(out, "Bem-vindo(a), %s.\n", name)
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		age, _ := flags.GetString("age")
		gender, _ := flags.GetString("gender")
		email, _ := flags.GetString("email")
		password, _ := flags.GetString("password")

		form := map[authn.Field]string{
			authn.FieldFullName: name,
			authn.FieldAge:      age,
			authn.FieldGender:   gender,
			authn.FieldEmail:    email,
			authn.FieldPassword: password,
		}
		ev, err := submitAuth(cmd, authn.SignUp, form)
		if err != nil {
			return err
		}
		msg := ev.Registration.Message
		if msg == "" {
			msg = "Cadastro realizado! Faça o login."
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored auth token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.tokens.Delete(cmd.Context()); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored and when it expires",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		tok, err := rt.tokens.Retrieve(cmd.Context())
		if errors.Is(err, tokenstore.ErrNotFound) {
			fmt.Fprintln(out, "Não autenticado.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		fmt.Fprintf(out, "Autenticado em %s.\n", rt.cfg.API.BaseURL)
		claims, err := tokenstore.Inspect(tok)
		if err != nil {
			rt.log.WithError(err).Debug("token is not inspectable")
			fmt.Fprintln(out, "Token opaco (sem data de expiração).")
			return nil
		}
		if claims.Subject != "" {
			fmt.Fprintf(out, "Usuário:  %s\n", claims.Subject)
		}
		if !claims.IssuedAt.IsZero() {
			fmt.Fprintf(out, "Emitido:  %s\n", claims.IssuedAt.Local().Format("2006-01-02 15:04:05"))
		}
		switch {
		case claims.ExpiresAt.IsZero():
			fmt.Fprintln(out, "Expira:   nunca")
		case claims.Expired(time.Now()):
			fmt.Fprintf(out, "Expirou:  %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
		default:
			fmt.Fprintf(out, "Expira:   %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (read from stdin when empty)")

	f := registerCmd.Flags()
	f.String("name", "", "Full name")
	f.String("age", "", "Age in years")
	f.String("gender", "", "Gender (default "+strconv.Quote(authn.DefaultGender)+")")
	f.String("email", "", "Account email")
	f.String("password", "", "Account password")
}

// submitAuth fills a session form, submits it and waits for the outcome.
func submitAuth(cmd *cobra.Command, mode authn.Mode, form map[authn.Field]string) (authn.Event, error) {
	rt, err := newRuntime(cmd, false)
	if err != nil {
		return authn.Event{}, err
	}
	defer rt.Close()

	loop, stop := startLoop()
	defer stop()

	ctx := cmd.Context()
	events := make(chan authn.Event, 8)
	var session *authn.Session
	var submitErr error
	err = call(ctx, loop, func() {
		session = authn.New(ctx, authn.Deps{
			Executor: loop,
			Backend:  rt.client,
			Tokens:   rt.tokens,
			Logger:   rt.log,
			Notify:   func(e authn.Event) { events <- e },
		})
		session.SetMode(mode)
		for f, v := range form {
			session.SetField(f, v)
		}
		submitErr = session.Submit()
	})
	if err != nil {
		return authn.Event{}, err
	}
	if submitErr != nil {
		return authn.Event{}, submitErr
	}
	return awaitAuth(ctx, events)
}

func awaitAuth(ctx context.Context, events <-chan authn.Event) (authn.Event, error) {
	for {
		select {
		case e := <-events:
			switch e.Kind {
			case authn.LoginSucceeded, authn.RegistrationSucceeded:
				return e, nil
			case authn.Failed:
				return e, fmt.Errorf("%s: %w", e.Message, e.Err)
			}
		case <-ctx.Done():
			return authn.Event{}, ctx.Err()
		}
	}
}

// readSecret reads one line from r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
