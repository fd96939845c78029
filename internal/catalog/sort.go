package catalog

import "strings"

// SortKey is the remote ProductSortKeys value a query is ordered by.
type SortKey string

// Sort keys used by the product list.
const (
	SortKeyTitle       SortKey = "TITLE"
	SortKeyPublishedAt SortKey = "PUBLISHED_AT"
	SortKeyProductType SortKey = "PRODUCT_TYPE"
)

// Valid reports whether k is one of the supported sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortKeyTitle, SortKeyPublishedAt, SortKeyProductType:
		return true
	default:
		return false
	}
}

// SortChoice is a sort option offered to the user.
type SortChoice string

// The sort menu. Values match the menu the storefront admin shows.
const (
	SortTitleAscending  SortChoice = "TITLE"
	SortTitleDescending SortChoice = "REVERSED_TITLE"
	SortUpdatedNewest   SortChoice = "PUBLISHED_AT"
	SortUpdatedOldest   SortChoice = "REVERSED_DATE"
	SortProductType     SortChoice = "PRODUCT_TYPE"
)

// Sort is the (sortKey, reversed) pair sent with every query.
type Sort struct {
	Key      SortKey `json:"sortKey"  yaml:"sort_key"`
	Reversed bool    `json:"reversed" yaml:"reversed"`
}

// DefaultSort is the sort used when nothing else has been chosen.
var DefaultSort = Sort{Key: SortKeyTitle} //nolint:gochecknoglobals // Immutable default value.

type sortEntry struct {
	choice SortChoice
	alias  string
	label  string
	sort   Sort
}

// sortTable is ordered as the sort menu is displayed.
//
//nolint:gochecknoglobals // Compile-time lookup table.
var sortTable = []sortEntry{
	{SortUpdatedNewest, "updated-newest", "Newest update", Sort{Key: SortKeyPublishedAt}},
	{SortUpdatedOldest, "updated-oldest", "Oldest update", Sort{Key: SortKeyPublishedAt, Reversed: true}},
	{SortTitleAscending, "title-ascending", "Alphabetically (A-Z)", Sort{Key: SortKeyTitle}},
	{SortTitleDescending, "title-descending", "Alphabetically (Z-A)", Sort{Key: SortKeyTitle, Reversed: true}},
	{SortProductType, "product-type", "Product type", Sort{Key: SortKeyProductType}},
}

// SortChoices returns the sort menu in display order.
func SortChoices() []SortChoice {
	out := make([]SortChoice, 0, len(sortTable))
	for _, e := range sortTable {
		out = append(out, e.choice)
	}
	return out
}

// Encode maps a choice onto its (sortKey, reversed) pair.
// It returns false for anything outside the menu.
func Encode(choice SortChoice) (Sort, bool) {
	for _, e := range sortTable {
		if e.choice == choice {
			return e.sort, true
		}
	}
	return Sort{}, false
}

// Decode is the inverse of Encode. (PRODUCT_TYPE, reversed) has no menu entry
// and returns false.
func Decode(s Sort) (SortChoice, bool) {
	for _, e := range sortTable {
		if e.sort == s {
			return e.choice, true
		}
	}
	return "", false
}

// ParseSortChoice accepts a menu value or its descriptive alias
// ("title-descending"), case-insensitively.
func ParseSortChoice(input string) (SortChoice, bool) {
	in := strings.TrimSpace(input)
	for _, e := range sortTable {
		if strings.EqualFold(in, string(e.choice)) || strings.EqualFold(in, e.alias) {
			return e.choice, true
		}
	}
	return "", false
}

// Label returns the menu label for c.
func (c SortChoice) Label() string {
	for _, e := range sortTable {
		if e.choice == c {
			return e.label
		}
	}
	return string(c)
}

// Alias returns the descriptive name of c, e.g. "updated-oldest".
func (c SortChoice) Alias() string {
	for _, e := range sortTable {
		if e.choice == c {
			return e.alias
		}
	}
	return ""
}
