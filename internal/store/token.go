package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/luminar/internal/tokenstore"
)

// TokenStore is a tokenstore.Store persisted in the credentials table under
// a fixed service/account pair.
type TokenStore struct {
	db      *sql.DB
	service string
	account string
}

var _ tokenstore.Store = (*TokenStore)(nil)

// Save overwrites the stored token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO credentials (service, account, secret, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (service, account)
		 DO UPDATE SET secret = excluded.secret, updated_at = excluded.updated_at`,
		t.service, t.account, token, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Retrieve returns the stored token or tokenstore.ErrNotFound.
func (t *TokenStore) Retrieve(ctx context.Context) (string, error) {
	var secret string
	err := t.db.QueryRowContext(ctx,
		`SELECT secret FROM credentials WHERE service = ? AND account = ?`,
		t.service, t.account,
	).Scan(&secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", tokenstore.ErrNotFound
		}
		return "", fmt.Errorf("retrieve token: %w", err)
	}
	return secret, nil
}

// Delete removes the stored token. Deleting an absent token is a no-op.
func (t *TokenStore) Delete(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE service = ? AND account = ?`,
		t.service, t.account,
	)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
