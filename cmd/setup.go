package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/config"
	"github.com/abhisek/luminar/internal/dispatch"
	"github.com/abhisek/luminar/internal/logging"
	"github.com/abhisek/luminar/internal/quiz"
	"github.com/abhisek/luminar/internal/store"
	"github.com/abhisek/luminar/internal/tokenstore"
)

// runtime is what a command needs to talk to the server and the local store.
type runtime struct {
	cfg      config.Config
	log      *logrus.Logger
	closeLog func() error
	store    *store.Store
	tokens   tokenstore.Store
	client   *api.Client
}

// newRuntime loads configuration, applies flag overrides and opens the
// store. Interactive runs log to a file next to the database so the
// terminal stays clean.
func newRuntime(cmd *cobra.Command, interactive bool) (*runtime, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	} else if os.Getenv("LUMINAR_LOG_LEVEL") == "" && !interactive {
		cfg.Log.Level = "warn"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if interactive && cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(dbPath), "luminar.log")
	}

	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokens := st.TokenStore(cfg.TokenService, cfg.TokenAccount)
	client := api.NewClient(cfg.API, tokens,
		api.WithJournal(st.RequestRepo()),
		api.WithLogger(log),
	)

	log.WithFields(logrus.Fields{
		"db":      dbPath,
		"api_url": cfg.API.BaseURL,
	}).Debug("runtime ready")

	return &runtime{
		cfg:      cfg,
		log:      log,
		closeLog: closeLog,
		store:    st,
		tokens:   tokens,
		client:   client,
	}, nil
}

// Close trims the request journal and releases the store and log file.
func (r *runtime) Close() error {
	if err := r.store.RequestRepo().Prune(context.Background(), r.cfg.JournalKeep); err != nil {
		r.log.WithError(err).Warn("prune request journal")
	}
	return errors.Join(r.store.Close(), r.closeLog())
}

// questions returns the configured questionnaire.
func (r *runtime) questions() (quiz.QuestionSet, error) {
	if r.cfg.QuestionsFile != "" {
		return quiz.LoadQuestions(r.cfg.QuestionsFile)
	}
	return quiz.DefaultQuestions()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// startLoop runs an executor for a one-shot command. The returned stop
// function must be called before the command returns.
func startLoop() (*dispatch.Loop, func()) {
	loop := dispatch.NewLoop()
	return loop, dispatch.Start(loop)
}

// call runs fn on loop and fails if the loop does not pick it up.
func call(ctx context.Context, loop *dispatch.Loop, fn func()) error {
	if !loop.Call(ctx, fn) {
		return fmt.Errorf("executor stopped: %w", context.Cause(ctx))
	}
	return nil
}
