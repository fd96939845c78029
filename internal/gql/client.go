// Package gql is a small GraphQL-over-HTTP client.
//
// It posts {"query", "variables"} as JSON and decodes {"data", "errors"}.
// Responses are never cached: every call is a live round-trip.
package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a failed response body is kept in HTTPError.
const maxErrorBody = 4096

// Request is the JSON body of a GraphQL POST.
type Request struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// Client sends GraphQL documents to one endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client, typically the authenticated one from
// the bridge package.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL documents are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do posts document with variables and decodes the "data" member into out.
// GraphQL errors are returned as *ResponseError, non-2xx statuses as *HTTPError.
func (c *Client) Do(ctx context.Context, document string, variables any, out any) error {
	body, err := json.Marshal(Request{Query: document, Variables: variables})
	if err != nil {
		return fmt.Errorf("encoding graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Ctx(ctx).Err(err).Msg("graphql request failed")
		return fmt.Errorf("posting graphql request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Ctx(ctx).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("graphql round-trip")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var decoded response
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("decoding graphql response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return &ResponseError{Errors: decoded.Errors}
	}
	if out == nil || len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil
	}
	if err = json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}
	return nil
}
