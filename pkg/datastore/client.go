package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 10 * time.Second

// Executor runs one statement against the remote store and returns its raw
// JSON result.
type Executor interface {
	Exec(ctx context.Context, query string) (json.RawMessage, error)
}

// Request is the body accepted by the SQL-over-HTTP endpoint.
type Request struct {
	Auth  string `json:"auth"`
	Query string `json:"query"`
}

// Client posts statements to the remote data store.
type Client struct {
	url        string
	auth       string
	httpClient *http.Client
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout replaces the http.Client with one using the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient constructs a data store client for url authenticating with auth.
func NewClient(url, auth string, opts ...Option) *Client {
	client := &Client{
		url:        url,
		auth:       auth,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Exec sends query and returns the response body untouched. A 2xx body that
// is not JSON is returned as a JSON string so callers can always relay it.
// Non-2xx answers become errors carrying status and body. No retry.
func (c *Client) Exec(ctx context.Context, query string) (json.RawMessage, error) {
	payload, err := json.Marshal(Request{Auth: c.auth, Query: query})
	if err != nil {
		return nil, fmt.Errorf("datastore: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("datastore: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("datastore: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datastore: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("datastore: http status %d: %s", resp.StatusCode, string(bytes.TrimSpace(body)))
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		quoted, err := json.Marshal(string(body))
		if err != nil {
			return nil, fmt.Errorf("datastore: encode text response: %w", err)
		}
		return quoted, nil
	}
	return json.RawMessage(body), nil
}
