// Package client provides a thin HTTP client for the catalog importer API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/auth"
)

const defaultTokenTTL = time.Minute

const operatorPrefix = "/ops/"

// Client is a thin HTTP client for the catalog importer API. Requests are
// signed with a short-lived session token for the configured shop; /ops/
// requests carry the operator token instead.
type Client struct {
	baseURL    string
	httpClient *http.Client

	secret   string
	shop     string
	audience string
	tokenTTL time.Duration

	operatorToken string
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		tokenTTL:   defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSession signs every request as shop using the app's API secret.
// audience is the app's API key and may be empty.
func WithSession(secret, shop, audience string) Option {
	return func(c *Client) {
		c.secret = secret
		c.shop = shop
		c.audience = audience
	}
}

// WithOperatorToken sets the bearer token sent on operator endpoints.
func WithOperatorToken(token string) Option {
	return func(c *Client) {
		c.operatorToken = token
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// IsQuotaExceeded reports whether err is the server refusing work because
// the tenant's quota is spent.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	return c.do(ctx, http.MethodPost, path, body, dst)
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case strings.HasPrefix(path, operatorPrefix):
		if c.operatorToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.operatorToken)
		}
	case c.secret != "":
		token, err := auth.IssueSessionToken(c.secret, c.shop, c.audience, c.tokenTTL)
		if err != nil {
			return fmt.Errorf("issuing session token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, respBody)
	}

	if dst != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// newAPIError pulls a readable message out of either error shape the
// server produces: Huma problem details or {"error": "..."}.
func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		e.Message = parsed.Detail
		if e.Message == "" {
			e.Message = parsed.Error
		}
	}
	return e
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
