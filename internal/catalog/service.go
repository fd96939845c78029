package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/storeview/internal/bridge"
)

// Executor runs the products query. A nil connection with a nil error means
// the host short-circuited the request and there is no data to show.
type Executor interface {
	FetchProducts(ctx context.Context, vars QueryVariables) (*ProductConnection, error)
}

// Doer sends a GraphQL document. *gql.Client implements it.
type Doer interface {
	Do(ctx context.Context, document string, variables any, out any) error
}

// Service is the Executor backed by the Admin GraphQL API.
type Service struct {
	client Doer
	logger zerolog.Logger
}

// NewService returns a Service sending ProductsQuery through client.
func NewService(client Doer, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// FetchProducts validates vars and executes ProductsQuery.
func (s *Service) FetchProducts(ctx context.Context, vars QueryVariables) (*ProductConnection, error) {
	if err := vars.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug().Ctx(ctx).
		Str("direction", vars.Direction().String()).
		Str("sort", string(vars.Sort)).
		Bool("reversed", vars.Reversed).
		Str("query", vars.SearchText()).
		Msg("fetching products")

	var data ProductsData
	if err := s.client.Do(ctx, ProductsQuery, vars, &data); err != nil {
		if errors.Is(err, bridge.ErrReauthorize) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return ConnectionFromResponse(&data), nil
}
