package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// ProductsQuery is the only document the product list sends. Variables change
// per request; the document never does.
const ProductsQuery = `query ($reversed: Boolean, $lastProducts: Int, $firstProducts: Int, $directionAfter: String, $directionBefore: String, $sort: ProductSortKeys, $query: String) {
  products(reverse: $reversed, sortKey: $sort, first: $firstProducts, last: $lastProducts, after: $directionAfter, before: $directionBefore, query: $query) {
    edges {
      cursor
      node {
        title
        createdAt
        productType
        vendor
        id
        description
      }
    }
    pageInfo {
      hasPreviousPage
      hasNextPage
      startCursor
      endCursor
    }
  }
}
`

//go:embed schema.graphql
var schemaSDL string

var (
	schemaOnce sync.Once   //nolint:gochecknoglobals // Schema is parsed once per process.
	schema     *ast.Schema //nolint:gochecknoglobals // Guarded by schemaOnce.
	schemaErr  error       //nolint:gochecknoglobals // Guarded by schemaOnce.
)

// Schema returns the parsed Admin API subset the query is validated against.
func Schema() (*ast.Schema, error) {
	schemaOnce.Do(func() {
		s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
		if err != nil {
			schemaErr = fmt.Errorf("loading schema: %w", err)
			return
		}
		schema = s
	})
	return schema, schemaErr
}

// ValidateDocument parses and validates a query document against Schema.
func ValidateDocument(document string) (*ast.QueryDocument, error) {
	s, err := Schema()
	if err != nil {
		return nil, err
	}
	doc, errs := gqlparser.LoadQuery(s, document)
	if len(errs) > 0 {
		return nil, fmt.Errorf("validating query: %w", errs)
	}
	if len(doc.Operations) != 1 {
		return nil, errors.New("validating query: expected exactly one operation")
	}
	return doc, nil
}

// ParseProductsQuery validates ProductsQuery and returns its operation.
func ParseProductsQuery() (*ast.OperationDefinition, error) {
	doc, err := ValidateDocument(ProductsQuery)
	if err != nil {
		return nil, err
	}
	return doc.Operations[0], nil
}

// VariableNames returns the variables declared by op, in declaration order.
func VariableNames(op *ast.OperationDefinition) []string {
	names := make([]string, 0, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		names = append(names, v.Variable)
	}
	return names
}
