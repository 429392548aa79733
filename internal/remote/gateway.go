// Package remote adapts the sheet-backed remote store, an operator-hosted
// HTTP endpoint that serves full snapshots and accepts per-record upserts.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Gateway error taxonomy.
var (
	// ErrNotConfigured means no endpoint is set; pulls fail fast and pushes
	// are no-ops.
	ErrNotConfigured = errors.New("remote endpoint not configured")

	// ErrUnreachable covers transport-level failures.
	ErrUnreachable = errors.New("remote endpoint unreachable")

	// ErrMalformed means the response parsed but does not match the
	// expected envelope.
	ErrMalformed = errors.New("malformed remote response")
)

// RemoteError carries a failure reported by the remote store itself.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "remote store error: " + e.Message
}

// Snapshot is a full export of the remote store: record tables plus scalar
// settings values.
type Snapshot struct {
	Tables map[string][]json.RawMessage
	Values map[string]string
}

type envelope struct {
	Result string                     `json:"result"`
	Data   map[string]json.RawMessage `json:"data"`
	Error  string                     `json:"error"`
}

type pushPayload struct {
	Action string `json:"action"`
	Key    string `json:"key"`
	Data   any    `json:"data"`
}

// Client is a resty-backed gateway to the remote store.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	logger     *zap.Logger
}

// NewClient builds a gateway for the configured endpoint. An empty endpoint
// is valid and yields a non-configured gateway.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{
		httpClient: restyClient,
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return c.endpoint != ""
}

// PullSnapshot fetches the full remote export. The body is decoded by hand
// so transport, envelope and remote-reported failures map onto distinct
// errors.
func (c *Client) PullSnapshot(ctx context.Context) (*Snapshot, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.httpClient.R().SetContext(ctx).Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Result {
	case "success":
	case "error":
		return nil, &RemoteError{Message: env.Error}
	default:
		return nil, fmt.Errorf("%w: unknown result %q", ErrMalformed, env.Result)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}

	snap := &Snapshot{
		Tables: make(map[string][]json.RawMessage),
		Values: make(map[string]string),
	}
	for key, raw := range env.Data {
		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err == nil {
			snap.Tables[key] = records
			continue
		}
		var scalar string
		if err := json.Unmarshal(raw, &scalar); err == nil {
			snap.Values[key] = scalar
			continue
		}
		// A mistyped table never erases local data, so an undecodable key
		// is skipped rather than failing the whole snapshot.
		c.logger.Debug("skip undecodable snapshot key", zap.String("key", key))
	}

	return snap, nil
}

// PushRecord submits a single-record upsert. The response body is not read
// beyond the status line; delivery is best-effort by contract.
func (c *Client) PushRecord(ctx context.Context, key string, record any) error {
	return c.push(ctx, pushPayload{Action: "save_record", Key: key, Data: record})
}

// PushTable submits a whole table as one bulk_save request.
func (c *Client) PushTable(ctx context.Context, key string, records any) error {
	return c.push(ctx, pushPayload{Action: "bulk_save", Key: key, Data: records})
}

func (c *Client) push(ctx context.Context, payload pushPayload) error {
	if !c.Configured() {
		return nil
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d", ErrMalformed, resp.StatusCode())
	}
	return nil
}
