// Package urlstate keeps the product list's shareable view state: the sort
// key and direction encoded as the sortValue and reversed query parameters,
// so a link restores the same view.
package urlstate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rshade/storeview/internal/catalog"
)

// Query parameter names.
const (
	ParamSortValue = "sortValue"
	ParamReversed  = "reversed"
)

// State is the shareable part of the view.
type State struct {
	SortValue catalog.SortKey `yaml:"sort_value"`
	Reversed  bool            `yaml:"reversed"`
}

// Default returns TITLE, not reversed.
func Default() State {
	return State{SortValue: catalog.SortKeyTitle}
}

// FromSort converts a sort pair into a State.
func FromSort(s catalog.Sort) State {
	return State{SortValue: s.Key, Reversed: s.Reversed}
}

// FromValues reads the state from query parameters. Each missing or invalid
// parameter falls back to its default on its own.
func FromValues(v url.Values) State {
	st := Default()
	if key := catalog.SortKey(strings.ToUpper(v.Get(ParamSortValue))); key.Valid() {
		st.SortValue = key
	}
	if b, err := strconv.ParseBool(v.Get(ParamReversed)); err == nil {
		st.Reversed = b
	}
	return st
}

// Values encodes the state as query parameters.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set(ParamSortValue, string(s.SortValue))
	v.Set(ParamReversed, strconv.FormatBool(s.Reversed))
	return v
}

// Sort returns the (sortKey, reversed) pair.
func (s State) Sort() catalog.Sort {
	return catalog.Sort{Key: s.SortValue, Reversed: s.Reversed}
}

// Choice returns the sort menu entry for the state. The one pair without an
// entry, PRODUCT_TYPE reversed, shows as title-ascending.
func (s State) Choice() catalog.SortChoice {
	if c, ok := catalog.Decode(s.Sort()); ok {
		return c
	}
	return catalog.SortTitleAscending
}

// Accessor is what the list controller needs from the shareable state.
type Accessor interface {
	Get() State
	Set(State)
}

// Store holds the state together with the base URL links are built from.
type Store struct {
	base     url.URL
	state    State
	onChange []func(State)
}

// New returns a Store with default state. base may be empty.
func New(base string) (*Store, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	return &Store{base: *u, state: Default()}, nil
}

// ParseLink restores a Store from a shared link. Parameters other than
// sortValue and reversed are kept on the base URL.
func ParseLink(raw string) (*Store, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing link: %w", err)
	}
	q := u.Query()
	st := FromValues(q)
	q.Del(ParamSortValue)
	q.Del(ParamReversed)
	u.RawQuery = q.Encode()
	return &Store{base: *u, state: st}, nil
}

// Get returns the current state.
func (s *Store) Get() State {
	return s.state
}

// Set replaces the state and notifies OnChange subscribers.
func (s *Store) Set(st State) {
	s.state = st
	for _, fn := range s.onChange {
		fn(st)
	}
}

// OnChange registers fn to run after every Set.
func (s *Store) OnChange(fn func(State)) {
	s.onChange = append(s.onChange, fn)
}

// Link returns the base URL with the current state encoded.
func (s *Store) Link() string {
	u := s.base
	q := u.Query()
	for k, vs := range s.state.Values() {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}
