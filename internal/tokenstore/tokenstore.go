// Package tokenstore defines the contract for persisting the single
// authentication token issued to this installation.
package tokenstore

import (
	"context"
	"errors"
	"sync"
)

// Default keychain-style identifiers under which the token is stored.
const (
	DefaultService = "com.luminar.app"
	DefaultAccount = "authToken"
)

// ErrNotFound is returned by Retrieve when no token is stored.
var ErrNotFound = errors.New("token not found")

// Store persists at most one credential string.
//
// Save overwrites any previous token. Delete is idempotent: deleting an
// absent token is not an error.
type Store interface {
	Save(ctx context.Context, token string) error
	Retrieve(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// MemoryStore is a process-local Store. It holds the token only for the
// lifetime of the value.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStore) Retrieve(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *MemoryStore) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
