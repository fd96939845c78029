package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Direction is the paging direction of a request.
type Direction int

const (
	// Forward pages with first/after.
	Forward Direction = iota
	// Backward pages with last/before.
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ErrInvalidVariables is returned for variables that break the direction
// invariant or carry an unknown sort key.
var ErrInvalidVariables = errors.New("invalid query variables")

// QueryVariables are the variables of ProductsQuery. Exactly one of
// (FirstProducts, DirectionAfter) or (LastProducts, DirectionBefore) is set.
// Null fields are sent as JSON null.
type QueryVariables struct {
	Reversed        bool    `json:"reversed"`
	LastProducts    *int    `json:"lastProducts"`
	FirstProducts   *int    `json:"firstProducts"`
	DirectionAfter  *string `json:"directionAfter"`
	DirectionBefore *string `json:"directionBefore"`
	Sort            SortKey `json:"sort"`
	Query           *string `json:"query"`
}

// ForwardVariables builds a forward request. A nil after requests the first page.
func ForwardVariables(sort Sort, pageSize int, after *string, query string) QueryVariables {
	return QueryVariables{
		Reversed:       sort.Reversed,
		FirstProducts:  &pageSize,
		DirectionAfter: cloneString(after),
		Sort:           sort.Key,
		Query:          optionalQuery(query),
	}
}

// BackwardVariables builds a backward request ending before the given cursor.
func BackwardVariables(sort Sort, pageSize int, before string, query string) QueryVariables {
	return QueryVariables{
		Reversed:        sort.Reversed,
		LastProducts:    &pageSize,
		DirectionBefore: &before,
		Sort:            sort.Key,
		Query:           optionalQuery(query),
	}
}

// Direction reports which way v pages.
func (v QueryVariables) Direction() Direction {
	if v.LastProducts != nil {
		return Backward
	}
	return Forward
}

// SortPair returns the (sortKey, reversed) pair carried by v.
func (v QueryVariables) SortPair() Sort {
	return Sort{Key: v.Sort, Reversed: v.Reversed}
}

// SearchText returns the query text, or "" when none is set.
func (v QueryVariables) SearchText() string {
	if v.Query == nil {
		return ""
	}
	return *v.Query
}

// Validate checks the direction invariant and the sort key.
func (v QueryVariables) Validate() error {
	if !v.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidVariables, v.Sort)
	}

	forward := v.FirstProducts != nil
	backward := v.LastProducts != nil
	switch {
	case forward && backward:
		return fmt.Errorf("%w: firstProducts and lastProducts are mutually exclusive", ErrInvalidVariables)
	case forward:
		if v.DirectionBefore != nil {
			return fmt.Errorf("%w: directionBefore requires lastProducts", ErrInvalidVariables)
		}
		if *v.FirstProducts < 1 {
			return fmt.Errorf("%w: firstProducts must be >= 1", ErrInvalidVariables)
		}
	case backward:
		if v.DirectionAfter != nil {
			return fmt.Errorf("%w: directionAfter requires firstProducts", ErrInvalidVariables)
		}
		if v.DirectionBefore == nil {
			return fmt.Errorf("%w: lastProducts requires directionBefore", ErrInvalidVariables)
		}
		if *v.LastProducts < 1 {
			return fmt.Errorf("%w: lastProducts must be >= 1", ErrInvalidVariables)
		}
	default:
		return fmt.Errorf("%w: one of firstProducts or lastProducts is required", ErrInvalidVariables)
	}
	return nil
}

func optionalQuery(query string) *string {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	return &q
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
