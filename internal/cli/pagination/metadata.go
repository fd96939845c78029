package pagination

import "github.com/rshade/storeview/internal/catalog"

// PageMeta describes one fetched page.
type PageMeta struct {
	Page        int    `json:"page"                   yaml:"page"`
	Items       int    `json:"items"                  yaml:"items"`
	HasPrevious bool   `json:"has_previous"           yaml:"has_previous"`
	HasNext     bool   `json:"has_next"               yaml:"has_next"`
	StartCursor string `json:"start_cursor,omitempty" yaml:"start_cursor,omitempty"`
	EndCursor   string `json:"end_cursor,omitempty"   yaml:"end_cursor,omitempty"`
}

// NewPageMeta builds metadata for the page-th page fetched.
func NewPageMeta(page int, conn *catalog.ProductConnection) PageMeta {
	meta := PageMeta{Page: page}
	if conn == nil {
		return meta
	}
	meta.Items = len(conn.Edges)
	meta.HasPrevious = conn.PageInfo.HasPreviousPage
	meta.HasNext = conn.PageInfo.HasNextPage
	if conn.PageInfo.StartCursor != nil {
		meta.StartCursor = *conn.PageInfo.StartCursor
	}
	if conn.PageInfo.EndCursor != nil {
		meta.EndCursor = *conn.PageInfo.EndCursor
	}
	return meta
}
