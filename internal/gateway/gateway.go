// Package gateway is the single HTTP client for the remote inventory
// backend. It normalizes success and error shapes and attaches the bearer
// token when one is present. It never retries; callers decide how a failure
// degrades.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkError means no response reached us at all (DNS, refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "No se pudo conectar con el servidor" }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Message is extracted from the JSON error
// body when possible, otherwise synthesized from the status line.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// Client talks to the remote backend. All persistence, stock mutation and
// profit computation live on the other side of this client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do issues one JSON request. out, when non-nil, receives the decoded 2xx
// body. The request is never retried.
func (c *Client) do(ctx context.Context, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("gateway: marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("gateway: decode response: %w", err)
		}
	}
	return nil
}

// errorMessage pulls a human-readable message out of a JSON error body.
// The backend is inconsistent about the field name, so three are tried.
func errorMessage(status int, raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, msg := range []string{body.Error, body.Message, body.Mensaje} {
			if msg != "" {
				return msg
			}
		}
	}
	return fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
}
