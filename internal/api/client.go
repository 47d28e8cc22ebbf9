// Package api provides the HTTP client for the Thimar backend API.
// It attaches the bearer token of the current session, decodes Laravel-style
// error bodies into a typed Error, and clears stored credentials reactively
// when the backend answers 401.
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

	"thimar/internal/logger"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Error represents a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
	// Errors holds Laravel 422 validation errors keyed by field name.
	Errors map[string][]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend responded %d", e.StatusCode)
}

// HasFieldError reports whether the 422 body flagged the given field.
func (e *Error) HasFieldError(field string) bool {
	_, ok := e.Errors[field]
	return ok
}

// Client communicates with the Thimar backend API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient creates a backend API client. tokens may be nil for a client that
// only calls public endpoints; onUnauthorized may be nil when no credential
// store needs clearing.
func NewClient(baseURL string, httpClient *http.Client, tokens TokenSource, onUnauthorized func()) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     httpClient,
		tokens:         tokens,
		onUnauthorized: onUnauthorized,
	}
}

// Get issues a GET request and returns the raw response body for
// envelope normalization by the caller.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, "")
}

// PostIdempotent issues a POST carrying a client reference header so the
// backend can deduplicate a re-submitted request.
func (c *Client) PostIdempotent(ctx context.Context, path string, body any, clientRef string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, clientRef)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, "")
}

// Delete issues a DELETE request. The response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, clientRef string) (json.RawMessage, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if clientRef != "" {
		req.Header.Set("X-Client-Reference", clientRef)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	apiErr := decodeError(resp.StatusCode, raw)
	logger.Get().Warnw("backend error",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		// Reactive expiry: clear stored credentials, let the caller decide
		// whether to redirect.
		c.onUnauthorized()
	}

	return nil, apiErr
}

// decodeError parses a Laravel error body {message, errors} into an Error.
// Undecodable bodies still produce a status-only Error.
func decodeError(status int, raw []byte) *Error {
	apiErr := &Error{StatusCode: status}

	var parsed struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		apiErr.Message = parsed.Message
		if apiErr.Message == "" {
			apiErr.Message = parsed.Error
		}
		apiErr.Errors = parsed.Errors
	}
	return apiErr
}

// StatusOf returns the HTTP status of a backend error, or 0 when err is not
// a backend response error (transport failure, context cancellation, ...).
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// FieldError reports whether err is a 422 backend error flagging field.
func FieldError(err error, field string) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnprocessableEntity && apiErr.HasFieldError(field)
	}
	return false
}
