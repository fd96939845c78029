// Package catalog holds the product catalog data model and the fixed GraphQL
// query used to page through it.
//
// It contains:
//   - the sort codec mapping the five user-facing SortChoice values onto a
//     (SortKey, reversed) pair and back
//   - QueryVariables and the forward/backward direction invariant
//   - the static ProductsQuery document, validated against an embedded schema
//   - Service, the Executor that sends the query through a GraphQL client
package catalog
