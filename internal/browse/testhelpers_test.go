package browse_test

import (
	"fmt"

	"github.com/rshade/storeview/internal/browse"
	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/urlstate"
)

// memoryView is an in-memory urlstate.Accessor.
type memoryView struct {
	state urlstate.State
	sets  int
}

func (v *memoryView) Get() urlstate.State { return v.state }

func (v *memoryView) Set(st urlstate.State) {
	v.state = st
	v.sets++
}

func newController(opts ...browse.Option) (*browse.Controller, *memoryView) {
	view := &memoryView{state: urlstate.Default()}
	return browse.New(view, opts...), view
}

func strPtr(s string) *string { return &s }

// page builds a connection with n products named after prefix.
func page(prefix string, n int, hasPrev, hasNext bool) *catalog.ProductConnection {
	conn := &catalog.ProductConnection{}
	for i := range n {
		id := fmt.Sprintf("%s-%d", prefix, i)
		conn.Edges = append(conn.Edges, catalog.Edge{
			Cursor: id,
			Node:   catalog.Product{ID: id, Title: id},
		})
	}
	conn.PageInfo = catalog.PageInfo{HasNextPage: hasNext, HasPreviousPage: hasPrev}
	if n > 0 {
		conn.PageInfo.StartCursor = strPtr(conn.Edges[0].Cursor)
		conn.PageInfo.EndCursor = strPtr(conn.Edges[n-1].Cursor)
	}
	return conn
}
