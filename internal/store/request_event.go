package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEventNotFound is returned by GetRequest for an unknown ID.
var ErrEventNotFound = errors.New("request event not found")

// requestRepo implements RequestRepo with plain SQL.
type requestRepo struct {
	db  *sql.DB
	now func() time.Time
}

const requestColumns = `id, timestamp, request_id, action, method, path,
	status_code, error_kind, error_message, latency_ms, success`

func (r *requestRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *requestRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO request_events
			(timestamp, request_id, action, method, path, status_code,
			 error_kind, error_message, latency_ms, success)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.clock().UnixMilli(),
		data.RequestID,
		data.Action,
		data.Method,
		data.Path,
		data.StatusCode,
		data.ErrorKind,
		data.ErrorMessage,
		data.LatencyMs,
		boolToInt(data.Success),
	)
	if err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *requestRepo) QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.Action != "" {
		where = append(where, "action = ?")
		args = append(args, opts.Action)
	}
	if !opts.From.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, opts.From.UnixMilli())
	}

	q := "SELECT " + requestColumns + " FROM request_events"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query request events: %w", err)
	}
	defer rows.Close()

	var events []RequestEvent
	for rows.Next() {
		e, err := scanRequestEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate request events: %w", err)
	}
	return events, nil
}

func (r *requestRepo) GetRequest(ctx context.Context, id int64) (*RequestEvent, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM request_events WHERE id = ?", id)
	e, err := scanRequestEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

func (r *requestRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM request_events WHERE id NOT IN (
			SELECT id FROM request_events ORDER BY id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune request events: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestEvent(row rowScanner) (*RequestEvent, error) {
	var (
		e       RequestEvent
		tsMilli int64
		success int
	)
	err := row.Scan(
		&e.ID,
		&tsMilli,
		&e.RequestID,
		&e.Action,
		&e.Method,
		&e.Path,
		&e.StatusCode,
		&e.ErrorKind,
		&e.ErrorMessage,
		&e.LatencyMs,
		&success,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan request event: %w", err)
	}
	e.Timestamp = time.UnixMilli(tsMilli)
	e.Success = success != 0
	return &e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
