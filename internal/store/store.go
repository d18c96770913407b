package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// schema is applied on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		service    TEXT    NOT NULL,
		account    TEXT    NOT NULL,
		secret     TEXT    NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (service, account)
	)`,
	`CREATE TABLE IF NOT EXISTS request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		request_id    TEXT    NOT NULL,
		action        TEXT    NOT NULL,
		method        TEXT    NOT NULL,
		path          TEXT    NOT NULL,
		status_code   INTEGER NOT NULL DEFAULT 0,
		error_kind    TEXT    NOT NULL DEFAULT '',
		error_message TEXT    NOT NULL DEFAULT '',
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS request_events_timestamp ON request_events (timestamp)`,
}

// Store holds the SQLite handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema.
//
// A plain file path is created with owner-only permissions before the
// driver opens it, since the credentials table holds the auth token.
func Open(dsn string) (*Store, error) {
	if !strings.HasPrefix(dsn, "file:") {
		if err := touchPrivate(dsn); err != nil {
			return nil, fmt.Errorf("create database file: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TokenStore returns the credential slot identified by service and account.
func (s *Store) TokenStore(service, account string) *TokenStore {
	return &TokenStore{db: s.db, service: service, account: account}
}

// RequestRepo returns a RequestRepo backed by this store.
func (s *Store) RequestRepo() RequestRepo {
	return &requestRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LUMINAR_DB environment variable
// 2. $XDG_DATA_HOME/luminar/luminar.db
// 3. ~/.local/share/luminar/luminar.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LUMINAR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "luminar", "luminar.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}

func touchPrivate(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}
