// Package client is the session and data-synchronization layer of the
// flashcards client: an HTTP gateway that injects the bearer token and
// normalizes every response, an auth store persisted across restarts, and
// a query cache with mutation-triggered invalidation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const loginPath = "/auth/login"

// APIError is a failure reported by the server, carrying the HTTP status
// and a human-readable message taken from the response envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is the sole egress point for network I/O. All requests go
// through do(), so token injection and the authorization interceptor
// apply uniformly.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string

	onUnauthorized func()
	handling       atomic.Bool
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetUnauthorizedHandler installs the policy invoked when the server
// rejects a non-login request as unauthenticated. There is exactly one
// handler process-wide; it is installed once at wiring time.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearAuth() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(path, loginPath) {
		c.unauthorized()
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(env, decodeErr),
		}
	}

	if out == nil {
		return nil
	}

	if len(env.Data) == 0 {
		return &APIError{StatusCode: resp.StatusCode, Message: "missing response data"}
	}

	return json.Unmarshal(env.Data, out)
}

// unauthorized runs the expired-session policy at most once at a time.
// The policy clears the session, which must not loop back through this
// interceptor even if it triggers further requests.
func (c *Client) unauthorized() {
	if c.onUnauthorized == nil {
		return
	}
	if !c.handling.CompareAndSwap(false, true) {
		return
	}
	defer c.handling.Store(false)

	c.onUnauthorized()
}

// envelope mirrors api.Envelope; redeclared here so the client half of
// the package tree does not depend on the server response writers.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
}

// errorMessage picks the most specific failure description available:
// the envelope's error field, then its message field, then the decode
// failure, then a generic fallback.
func errorMessage(env envelope, decodeErr error) string {
	switch {
	case env.Error != "":
		return env.Error
	case env.Message != "":
		return env.Message
	case decodeErr != nil && !errors.Is(decodeErr, context.Canceled):
		return "request failed: " + decodeErr.Error()
	default:
		return "request failed"
	}
}
