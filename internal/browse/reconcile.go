package browse

import "github.com/rshade/storeview/internal/catalog"

// Result is the outcome of running a Request.
type Result struct {
	Seq        uint64
	Connection *catalog.ProductConnection
	Err        error
}

// Snapshot is what the list renders.
type Snapshot struct {
	// Items come from exactly one response.
	Items    []catalog.Edge
	PageInfo catalog.PageInfo
	// Loading is true while the latest request is in flight, whatever Items shows.
	Loading bool
	// Err is set when the latest request failed; Items is then empty.
	Err error
	// Stale is true when Items belong to an earlier request than the latest.
	Stale bool
}

// Empty reports whether there is nothing to show and no error.
func (s Snapshot) Empty() bool {
	return s.Err == nil && len(s.Items) == 0
}

// Reconciler decides which response is shown while requests come and go.
type Reconciler struct {
	latest   uint64
	resolved bool
	current  *catalog.ProductConnection
	previous *catalog.ProductConnection
	err      error
}

// Begin records seq as the latest issued request.
func (r *Reconciler) Begin(seq uint64) {
	if r.current != nil {
		r.previous = r.current
	}
	r.current = nil
	r.latest = seq
	r.resolved = false
	r.err = nil
}

// Resolve accepts res if it answers the latest request and that request has
// not been resolved yet. A nil connection without error means no data: the
// previous response stays on screen.
func (r *Reconciler) Resolve(res Result) bool {
	if res.Seq != r.latest || r.resolved {
		return false
	}
	r.resolved = true
	if res.Err != nil {
		r.err = res.Err
		return true
	}
	r.current = res.Connection
	return true
}

// Accept resolves seq with conn.
func (r *Reconciler) Accept(seq uint64, conn *catalog.ProductConnection) bool {
	return r.Resolve(Result{Seq: seq, Connection: conn})
}

// Fail resolves seq with err.
func (r *Reconciler) Fail(seq uint64, err error) bool {
	return r.Resolve(Result{Seq: seq, Err: err})
}

// Latest returns the sequence number of the latest issued request.
func (r *Reconciler) Latest() uint64 {
	return r.latest
}

// Snapshot derives the rendered state.
func (r *Reconciler) Snapshot() Snapshot {
	s := Snapshot{
		Loading: r.latest > 0 && !r.resolved,
		Err:     r.err,
	}
	if r.err != nil {
		return s
	}

	conn := r.current
	if conn == nil {
		conn = r.previous
		s.Stale = conn != nil
	}
	if conn != nil {
		s.Items = append([]catalog.Edge(nil), conn.Edges...)
		s.PageInfo = conn.PageInfo
	}
	return s
}
