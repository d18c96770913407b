// Package api is the network gateway to the Luminar backend. It builds
// JSON requests, injects the bearer token for protected endpoints, and
// maps every failure into the closed error set defined in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/luminar/internal/store"
	"github.com/abhisek/luminar/internal/tokenstore"
)

// Request describes one gateway call.
type Request struct {
	// Action labels the call in logs and the request journal.
	Action string

	Method string
	Path   string

	// Body is serialized as JSON when non-nil.
	Body any

	// RequiresAuth attaches the stored token as a bearer credential.
	RequiresAuth bool

	// Schema, when set, must validate the response body before decoding.
	Schema *Schema
}

// Client issues requests against a single API origin.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	tokens  tokenstore.Store
	journal store.RequestRepo
	log     logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithJournal records every completed call in repo.
func WithJournal(repo store.RequestRepo) Option {
	return func(c *Client) { c.journal = repo }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a Client. The base URL is not checked here; a
// malformed origin surfaces as ErrInvalidURL on each call.
func NewClient(cfg Config, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		http:    &http.Client{},
		tokens:  tokens,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue performs req and decodes a successful response into T.
//
// Failures are reported in precedence order: ErrInvalidURL,
// ErrTokenNotFound, ErrEncoding, ErrRequestFailed, ErrInvalidResponse,
// ErrDecoding. Nothing is retried.
func Issue[T any](ctx context.Context, c *Client, req Request) (*T, error) {
	start := time.Now()
	requestID := uuid.NewString()

	status, body, err := c.do(ctx, req, requestID)
	var out *T
	if err == nil {
		out, err = decode[T](req.Schema, body)
	}

	c.observe(ctx, req, requestID, status, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, req Request, requestID string) (int, []byte, error) {
	target, err := c.resolve(req.Path)
	if err != nil {
		return 0, nil, err
	}

	var token string
	if req.RequiresAuth {
		token, err = c.tokens.Retrieve(ctx)
		if err != nil {
			if errors.Is(err, tokenstore.ErrNotFound) {
				return 0, nil, &ErrTokenNotFound{}
			}
			return 0, nil, &ErrTokenNotFound{Err: err}
		}
	}

	var payload io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, &ErrEncoding{Err: err}
		}
		payload = bytes.NewReader(raw)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return 0, nil, &ErrInvalidURL{URL: target, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.RequiresAuth {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, &ErrRequestFailed{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &ErrRequestFailed{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || len(body) == 0 {
		return resp.StatusCode, body, &ErrInvalidResponse{StatusCode: resp.StatusCode}
	}
	return resp.StatusCode, body, nil
}

// resolve joins the configured origin and an endpoint path.
func (c *Client) resolve(path string) (string, error) {
	raw := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", &ErrInvalidURL{URL: raw, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ErrInvalidURL{URL: raw, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return "", &ErrInvalidURL{URL: raw, Err: errors.New("missing host")}
	}
	return u.String(), nil
}

func decode[T any](schema *Schema, body []byte) (*T, error) {
	if err := checkShape(schema, body); err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ErrDecoding{Err: err}
	}
	return &out, nil
}

// observe logs the call and appends it to the journal. Journal failures
// are logged and never change the call's outcome.
func (c *Client) observe(ctx context.Context, req Request, requestID string, status int, latency time.Duration, err error) {
	entry := c.log.WithFields(logrus.Fields{
		"action":     req.Action,
		"method":     req.Method,
		"path":       req.Path,
		"request_id": requestID,
		"status":     status,
		"latency_ms": latency.Milliseconds(),
	})
	if err != nil {
		entry.WithField("error_kind", KindOf(err).String()).WithError(err).Warn("request failed")
	} else {
		entry.Debug("request completed")
	}

	if c.journal == nil {
		return
	}

	data := store.RequestEventData{
		RequestID:  requestID,
		Action:     req.Action,
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: status,
		LatencyMs:  latency.Milliseconds(),
		Success:    err == nil,
	}
	if err != nil {
		data.ErrorKind = KindOf(err).String()
		data.ErrorMessage = err.Error()
	}

	// The caller's context may already be cancelled; the journal write is
	// local and must still happen.
	if logErr := c.journal.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		c.log.WithError(logErr).Warn("failed to record request event")
	}
}
