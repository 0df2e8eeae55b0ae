package pricesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://api.livecoinwatch.com/coins/list"
	defaultHTTPTimeout = 10 * time.Second
	apiKeyHeader       = "x-api-key"
)

// ErrEmptyResponse is returned when the API answers with no coins.
var ErrEmptyResponse = errors.New("pricesource: empty coin list")

// Client wraps access to the LiveCoinWatch coins/list endpoint.
type Client struct {
	baseURL    string
	apiKey     string
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

// WithBaseURL overrides the default coins/list URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithAPIKey sets the key sent in the x-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// NewClient constructs a price source client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ListCoins posts req and decodes the coin array. An empty array yields
// ErrEmptyResponse. There is no retry; callers log and move on.
func (c *Client) ListCoins(ctx context.Context, req ListRequest) ([]Coin, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("pricesource: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("pricesource: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("pricesource: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pricesource: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pricesource: http status %d: %s", resp.StatusCode, string(body))
	}

	var coins []Coin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, fmt.Errorf("pricesource: decode response: %w", err)
	}
	if len(coins) == 0 {
		return nil, ErrEmptyResponse
	}
	return coins, nil
}
