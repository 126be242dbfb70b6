// Package transport is the HTTP client every remote call goes through. Requests
// pass an ordered chain of interceptors before reaching the network.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// Client is a JSON HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	interceptors []Interceptor
}

// NewClient creates a client for baseURL. A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client that sends through httpClient
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the URL every request path is appended to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Use appends interceptors. They run in registration order on the way out.
func (c *Client) Use(interceptors ...Interceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interceptors = append(c.interceptors, interceptors...)
}

func (c *Client) roundTrip() RoundTrip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	interceptors := append([]Interceptor(nil), c.interceptors...)
	return chain(interceptors, c.httpClient.Do)
}

// Do sends a JSON request and decodes the JSON response into result, if non-nil
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return newClientError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.roundTrip()(req)
	if err != nil {
		var terr *Error
		if errors.As(err, &terr) {
			return terr
		}
		return newClientError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newClientError(fmt.Errorf("failed to read response: %w", err))
	}

	// without ClassifyErrors in the chain error statuses still come back normalized
	if resp.StatusCode >= http.StatusBadRequest {
		return newServerError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return newClientError(fmt.Errorf("failed to parse response: %w", err))
		}
	}
	return nil
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}
