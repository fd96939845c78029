package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rshade/storeview/internal/bridge"
	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/gql"
	"github.com/rshade/storeview/internal/logging"
)

var (
	// ErrReauthorizationRequired is returned when the store asked the user to
	// sign in again. The message carries the URL to visit.
	ErrReauthorizationRequired = errors.New("reauthorization required")
	// ErrUnknownSort is returned for --sort values outside the sort menu.
	ErrUnknownSort = errors.New("unknown sort")
)

// newExecutor wires the Admin API client stack for cfg: bridge transport,
// GraphQL client, catalog service.
func newExecutor(cfg *config.Config, redirector bridge.Redirector) (*catalog.Service, error) {
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}

	hc, err := bridge.NewHTTPClient(bridge.Config{
		Token:      cfg.Store.Token,
		AuthMode:   cfg.Store.AuthMode,
		Timeout:    cfg.Store.Timeout,
		Redirector: redirector,
		Logger:     logging.ComponentLogger(logger, "bridge"),
	})
	if err != nil {
		return nil, fmt.Errorf("building http client: %w", err)
	}

	client := gql.NewClient(cfg.Store.Endpoint,
		gql.WithHTTPClient(hc),
		gql.WithLogger(logging.ComponentLogger(logger, "gql")),
	)
	return catalog.NewService(client, logging.ComponentLogger(logger, "catalog")), nil
}

// redirectRecorder keeps the last reauthorization target for commands that
// cannot redirect anywhere.
type redirectRecorder struct {
	target string
}

func (r *redirectRecorder) Redirect(target string) {
	r.target = target
}

// reauthorizationError reports target on w and returns the command error.
func reauthorizationError(w io.Writer, target string) error {
	_, _ = fmt.Fprintf(w, "Reauthorization required. Continue at: %s\n", target)
	return fmt.Errorf("%w: %s", ErrReauthorizationRequired, target)
}
