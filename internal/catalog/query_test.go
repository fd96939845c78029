package catalog_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/storeview/internal/catalog"
)

func TestProductsQueryIsValid(t *testing.T) {
	op, err := catalog.ParseProductsQuery()
	require.NoError(t, err)
	require.Len(t, op.SelectionSet, 1)
}

// The declared GraphQL variables and the JSON names of QueryVariables must
// stay in lockstep or the server silently ignores a variable.
func TestProductsQueryVariablesMatchStruct(t *testing.T) {
	op, err := catalog.ParseProductsQuery()
	require.NoError(t, err)

	var jsonNames []string
	typ := reflect.TypeOf(catalog.QueryVariables{})
	for i := range typ.NumField() {
		tag := typ.Field(i).Tag.Get("json")
		jsonNames = append(jsonNames, strings.Split(tag, ",")[0])
	}

	assert.ElementsMatch(t, jsonNames, catalog.VariableNames(op))
}

func TestValidateDocumentRejectsUnknownField(t *testing.T) {
	_, err := catalog.ValidateDocument(`{ products(first: 5) { edges { node { price } } } }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

func TestValidateDocumentRejectsUnknownSortKey(t *testing.T) {
	_, err := catalog.ValidateDocument(`{ products(first: 5, sortKey: COLOR) { pageInfo { hasNextPage } } }`)
	require.Error(t, err)
}

func TestSchemaIsCached(t *testing.T) {
	a, err := catalog.Schema()
	require.NoError(t, err)
	b, err := catalog.Schema()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.NotNil(t, a.Types["ProductSortKeys"])
}
