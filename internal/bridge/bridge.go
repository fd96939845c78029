// Package bridge builds the authenticated HTTP client used to reach the
// storefront Admin API and enforces the host's reauthorization contract.
//
// A response flagged with X-Shopify-API-Request-Failure-Reauthorize is never
// handed to callers as data: the body is discarded, the Redirector is told
// where to send the user, and the round-trip fails with *ReauthorizeError.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/rshade/storeview/internal/logging"
)

// Header names of the host bridge contract.
const (
	HeaderReauthorize    = "X-Shopify-API-Request-Failure-Reauthorize"
	HeaderReauthorizeURL = "X-Shopify-API-Request-Failure-Reauthorize-Url"
	HeaderAccessToken    = "X-Shopify-Access-Token"
	HeaderRequestID      = "X-Request-Id"
)

// Auth modes.
const (
	// AuthModeSession sends the token as an OAuth2 bearer token.
	AuthModeSession = "session"
	// AuthModeAccessToken sends the token in X-Shopify-Access-Token.
	AuthModeAccessToken = "access-token"
)

// DefaultAuthPath is used when a reauthorization response names no URL.
const DefaultAuthPath = "/auth"

var (
	// ErrReauthorize marks a round-trip the host asked to reauthorize.
	ErrReauthorize = errors.New("host requested reauthorization")
	// ErrMissingToken is returned when no access token is configured.
	ErrMissingToken = errors.New("access token is required")
	// ErrUnknownAuthMode is returned for auth modes other than session and access-token.
	ErrUnknownAuthMode = errors.New("unknown auth mode")
)

// ReauthorizeError carries the URL the user has to visit.
type ReauthorizeError struct {
	URL string
}

func (e *ReauthorizeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReauthorize.Error(), e.URL)
}

// Unwrap lets errors.Is match ErrReauthorize.
func (e *ReauthorizeError) Unwrap() error {
	return ErrReauthorize
}

// Redirector sends the user to target. The CLI prints the URL; the TUI
// shows it and quits.
type Redirector interface {
	Redirect(target string)
}

// RedirectFunc adapts a function to Redirector.
type RedirectFunc func(target string)

// Redirect implements Redirector.
func (f RedirectFunc) Redirect(target string) {
	f(target)
}

// Config configures NewHTTPClient.
type Config struct {
	Token      string
	AuthMode   string
	Timeout    time.Duration
	Redirector Redirector
	Base       http.RoundTripper
	Logger     zerolog.Logger
}

// NewHTTPClient returns an HTTP client that authenticates every request,
// tags it with the context trace ID, and detects reauthorization responses.
func NewHTTPClient(cfg Config) (*http.Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	base := cfg.Base
	if base == nil {
		base = http.DefaultTransport
	}

	var rt http.RoundTripper = &reauthTransport{
		next:       base,
		redirector: cfg.Redirector,
		logger:     cfg.Logger,
	}
	rt = &requestIDTransport{next: rt}

	switch cfg.AuthMode {
	case AuthModeSession, "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		rt = &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, src), Base: rt}
	case AuthModeAccessToken:
		rt = &headerTransport{next: rt, header: HeaderAccessToken, value: cfg.Token}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthMode, cfg.AuthMode)
	}

	return &http.Client{Transport: rt, Timeout: cfg.Timeout}, nil
}

type reauthTransport struct {
	next       http.RoundTripper
	redirector Redirector
	logger     zerolog.Logger
}

func (t *reauthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Header.Get(HeaderReauthorize) != "1" {
		return resp, nil
	}

	// The body of a reauthorization response is never parsed.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	target := resolveAuthURL(req.URL, resp.Header.Get(HeaderReauthorizeURL))
	t.logger.Warn().Ctx(req.Context()).
		Str("redirect", target).
		Msg("host requested reauthorization")
	if t.redirector != nil {
		t.redirector.Redirect(target)
	}
	return nil, &ReauthorizeError{URL: target}
}

func resolveAuthURL(reqURL *url.URL, raw string) string {
	if raw == "" {
		raw = DefaultAuthPath
	}
	ref, err := url.Parse(raw)
	if err != nil || reqURL == nil {
		return raw
	}
	return reqURL.ResolveReference(ref).String()
}

type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id := logging.TraceIDFromContext(req.Context())
	if id == "" || req.Header.Get(HeaderRequestID) != "" {
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(HeaderRequestID, id)
	return t.next.RoundTrip(clone)
}

type headerTransport struct {
	next   http.RoundTripper
	header string
	value  string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set(t.header, t.value)
	return t.next.RoundTrip(clone)
}
