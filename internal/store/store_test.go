package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/luminar/internal/tokenstore"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseIsPrivateAndWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luminar.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"credentials", "request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestTokenStoreLifecycle(t *testing.T) {
	s := openTestStore(t)
	ts := s.TokenStore(tokenstore.DefaultService, tokenstore.DefaultAccount)
	ctx := context.Background()

	if _, err := ts.Retrieve(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("Retrieve on empty store: err = %v, want ErrNotFound", err)
	}

	if err := ts.Save(ctx, "abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ts.Save(ctx, "def"); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, err := ts.Retrieve(ctx)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got != "def" {
		t.Errorf("Retrieve = %q, want %q", got, "def")
	}

	if err := ts.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := ts.Delete(ctx); err != nil {
		t.Fatalf("second Delete should be a no-op: %v", err)
	}
	if _, err := ts.Retrieve(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("Retrieve after Delete: err = %v, want ErrNotFound", err)
	}
}

func TestTokenStoreSlotsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	a := s.TokenStore("svc", "a")
	b := s.TokenStore("svc", "b")

	if err := a.Save(ctx, "token-a"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := b.Retrieve(ctx); !errors.Is(err, tokenstore.ErrNotFound) {
		t.Fatalf("slot b should be empty, got err = %v", err)
	}
}

func TestRequestAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.RequestRepo()
	ctx := context.Background()

	events := []RequestEventData{
		{RequestID: "r1", Action: "login", Method: "POST", Path: "/users/login", StatusCode: 200, LatencyMs: 12, Success: true},
		{RequestID: "r2", Action: "profile", Method: "GET", Path: "/users/profile", StatusCode: 401, ErrorKind: "invalid_response", ErrorMessage: "unexpected status 401", LatencyMs: 8},
		{RequestID: "r3", Action: "profile", Method: "GET", Path: "/users/profile", StatusCode: 200, LatencyMs: 9, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendRequest(ctx, e); err != nil {
			t.Fatalf("AppendRequest: %v", err)
		}
	}

	all, err := repo.QueryRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryRequests: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].RequestID != "r3" {
		t.Errorf("newest first: got %q, want r3", all[0].RequestID)
	}

	profile, err := repo.QueryRequests(ctx, QueryOpts{Action: "profile", Limit: 1})
	if err != nil {
		t.Fatalf("QueryRequests filtered: %v", err)
	}
	if len(profile) != 1 || profile[0].RequestID != "r3" {
		t.Fatalf("filtered query = %+v, want only r3", profile)
	}

	got, err := repo.GetRequest(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if got.StatusCode != 401 || got.Success || got.ErrorKind != "invalid_response" {
		t.Errorf("GetRequest = %+v", got.RequestEventData)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", got.Timestamp)
	}

	if _, err := repo.GetRequest(ctx, 9999); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("GetRequest unknown id: err = %v, want ErrEventNotFound", err)
	}
}

func TestRequestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.RequestRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendRequest(ctx, RequestEventData{RequestID: "r", Action: "login", Method: "POST", Path: "/login"}); err != nil {
			t.Fatalf("AppendRequest: %v", err)
		}
	}

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	left, err := repo.QueryRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QueryRequests: %v", err)
	}
	if len(left) != 2 {
		t.Errorf("after prune: %d events, want 2", len(left))
	}

	// Pruning with more headroom than rows keeps everything.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	left, _ = repo.QueryRequests(ctx, QueryOpts{})
	if len(left) != 2 {
		t.Errorf("after generous prune: %d events, want 2", len(left))
	}
}
