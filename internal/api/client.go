// Package api is the single gateway to the Krishi Sakhi REST backend. It
// wraps the standard HTTP client with uniform header merging and error
// translation. It does not retry, cache, or deduplicate in-flight calls;
// each caller owns its own loading and error flags.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at a locally hosted backend.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s", e.Status)
}

// Client issues requests against the backend base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a client for the given base URL, which may include the /api
// prefix. An empty baseURL selects DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

// NewWithHTTPClient allows injecting a custom transport, used by tests.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	c := New(baseURL)
	if httpc != nil {
		c.httpc = httpc
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// do executes a request and returns the raw body for 2xx responses.
// Default JSON headers are merged with caller-supplied ones.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, headers http.Header) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &Error{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorMessage(data),
		}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, _, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out
// (out may be nil when the payload is irrelevant).
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	data, _, err := c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// putJSON issues a PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	data, _, err := c.do(ctx, http.MethodPut, path, bytes.NewReader(payload), nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// delete issues a DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	_, _, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// envelope is the {success, error} wrapper used by the CRUD/read endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Err     string `json:"error,omitempty"`
}

// check converts a success:false envelope into an *Error. Backends signal
// most failures through the HTTP status too, but not all of them.
func (e envelope) check() error {
	if e.Success {
		return nil
	}
	msg := e.Err
	if msg == "" {
		msg = "request failed"
	}
	return &Error{StatusCode: http.StatusOK, Status: "200 OK", Message: msg}
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
