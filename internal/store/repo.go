package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	Action string // exact action match ("" = any)
	From   time.Time
}

// RequestEventData captures one gateway call. Request and response bodies
// are never recorded; they may carry passwords and tokens.
type RequestEventData struct {
	RequestID    string
	Action       string
	Method       string
	Path         string
	StatusCode   int
	ErrorKind    string
	ErrorMessage string
	LatencyMs    int64
	Success      bool
}

// RequestEvent is a stored RequestEventData with its identity.
type RequestEvent struct {
	ID        int64
	Timestamp time.Time
	RequestEventData
}

// RequestRepo provides append and query access to the request journal.
type RequestRepo interface {
	// AppendRequest records a completed gateway call.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// QueryRequests returns events newest first.
	QueryRequests(ctx context.Context, opts QueryOpts) ([]RequestEvent, error)

	// GetRequest returns a single event by ID.
	GetRequest(ctx context.Context, id int64) (*RequestEvent, error)

	// Prune deletes all but the N most recent events.
	Prune(ctx context.Context, keep int) error
}
