// Package config assembles process configuration from defaults, an
// optional .env file and LUMINAR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/luminar/internal/api"
	"github.com/abhisek/luminar/internal/logging"
	"github.com/abhisek/luminar/internal/tokenstore"
)

// Config holds all process configuration.
type Config struct {
	API api.Config
	Log logging.Config

	// DBPath is the SQLite file holding the token and request journal.
	// Empty means store.DefaultDBPath.
	DBPath string

	// TokenService and TokenAccount identify the credential slot.
	TokenService string
	TokenAccount string

	// QuestionsFile replaces the built-in questionnaire when set.
	QuestionsFile string

	// JournalKeep is how many request events are retained. Default: 500.
	JournalKeep int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API:          api.DefaultConfig(),
		Log:          logging.DefaultConfig(),
		TokenService: tokenstore.DefaultService,
		TokenAccount: tokenstore.DefaultAccount,
		JournalKeep:  500,
	}
}

// ConfigFromEnv loads .env from the working directory if present, then
// builds a Config from environment variables, falling back to defaults
// for unset values. Malformed numeric or duration values are reported.
func ConfigFromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	var errs []error

	if v := os.Getenv("LUMINAR_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LUMINAR_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LUMINAR_API_TIMEOUT: %w", err))
		} else {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("LUMINAR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LUMINAR_TOKEN_SERVICE"); v != "" {
		cfg.TokenService = v
	}
	if v := os.Getenv("LUMINAR_TOKEN_ACCOUNT"); v != "" {
		cfg.TokenAccount = v
	}
	if v := os.Getenv("LUMINAR_QUESTIONS_FILE"); v != "" {
		cfg.QuestionsFile = v
	}
	if v := os.Getenv("LUMINAR_JOURNAL_KEEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LUMINAR_JOURNAL_KEEP: %w", err))
		} else {
			cfg.JournalKeep = n
		}
	}
	if v := os.Getenv("LUMINAR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LUMINAR_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LUMINAR_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	return cfg, errors.Join(errs...)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.TokenService == "" || c.TokenAccount == "" {
		return fmt.Errorf("token service and account must be set")
	}
	if c.JournalKeep < 0 {
		return fmt.Errorf("journal keep must not be negative, got %d", c.JournalKeep)
	}
	return nil
}
