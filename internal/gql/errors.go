package gql

import (
	"fmt"
	"strings"
)

// Location points into the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of a GraphQL "errors" array.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// ResponseError is returned when the server answered with GraphQL errors.
type ResponseError struct {
	Errors []Error
}

func (e *ResponseError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("graphql: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql: unexpected status %d: %s", e.StatusCode, e.Body)
}
