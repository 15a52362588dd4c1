package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of a non-2xx body is kept for the error message.
const maxErrorBody = 512

// Fetcher retrieves the dashboard payload with a bearer token.
type Fetcher interface {
	Fetch(ctx context.Context, token string) (json.RawMessage, error)
}

// Client issues authenticated GET requests to the dashboard endpoint.
// It never retries.
type Client struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client for the absolute endpoint url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client fetches.
func (c *Client) URL() string {
	return c.url
}

// Fetch performs one GET with "Authorization: Bearer <token>". An empty token
// is still sent. The returned payload is the raw body, verified to be JSON.
// Errors are always *FetchError.
func (c *Client) Fetch(ctx context.Context, token string) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep the start of the body for the error message, drain the rest so
		// the connection can be reused.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	// 204 and empty 200 bodies are decode failures too.
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return nil, &FetchError{Kind: KindDecode, StatusCode: resp.StatusCode, Err: ErrInvalidJSON}
	}
	return json.RawMessage(body), nil
}
