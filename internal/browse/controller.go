package browse

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/urlstate"
)

// PageSize is the number of products requested per page.
const PageSize = 5

// Request is one query to run, numbered in issue order.
type Request struct {
	Seq  uint64
	Vars catalog.QueryVariables
}

// SearchState is the search field as typed and as last sent.
type SearchState struct {
	Raw       string
	Committed string
}

// Controller owns the query state of one product list.
type Controller struct {
	view     urlstate.Accessor
	pageSize int
	logger   zerolog.Logger

	search   SearchState
	debounce *Debouncer
	recon    Reconciler
	seq      uint64
	last     catalog.QueryVariables
	// shown is the ordering and search of the page on screen. Its cursors
	// are only valid under that pair.
	shown *pageBasis
}

type pageBasis struct {
	sort  catalog.Sort
	query string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPageSize overrides PageSize.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSearchDelay overrides SearchDelay.
func WithSearchDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = NewDebouncer(d)
	}
}

// New returns a Controller reading and writing its sort through view.
func New(view urlstate.Accessor, opts ...Option) *Controller {
	c := &Controller{
		view:     view,
		pageSize: PageSize,
		logger:   zerolog.Nop(),
		debounce: NewDebouncer(SearchDelay),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithInitialSearch starts the controller with text already committed, as
// if it had been typed and the quiet period had passed.
func WithInitialSearch(text string) Option {
	return func(c *Controller) {
		c.search = SearchState{Raw: text, Committed: strings.TrimSpace(text)}
	}
}

// Mount issues the first forward page with the restored sort.
func (c *Controller) Mount() Request {
	return c.issue("mount", catalog.ForwardVariables(c.Sort(), c.pageSize, nil, c.search.Committed))
}

// MountAt issues the first page relative to a known cursor: backward from
// before when it is set, otherwise forward from after. Both nil is Mount.
func (c *Controller) MountAt(after, before *string) Request {
	if before != nil {
		return c.issue("mount", catalog.BackwardVariables(c.Sort(), c.pageSize, *before, c.search.Committed))
	}
	return c.issue("mount", catalog.ForwardVariables(c.Sort(), c.pageSize, after, c.search.Committed))
}

// ChangeSort applies a sort menu choice. Unknown input is ignored and
// returns false.
func (c *Controller) ChangeSort(input string) (Request, bool) {
	choice, ok := catalog.ParseSortChoice(input)
	if !ok {
		c.logger.Debug().Str("input", input).Msg("ignoring unknown sort choice")
		return Request{}, false
	}
	sort, _ := catalog.Encode(choice)
	c.view.Set(urlstate.FromSort(sort))
	return c.issue("sort", catalog.ForwardVariables(sort, c.pageSize, nil, c.search.Committed)), true
}

// SearchTextChanged records the field value and schedules a dispatch.
// The returned ticket must be passed to SearchDue after SearchDelay.
// Blank text schedules nothing.
func (c *Controller) SearchTextChanged(text string) (Ticket, bool) {
	c.search.Raw = text
	return c.debounce.Schedule(text)
}

// ClearSearch empties the field and cancels the pending dispatch.
// No request is issued.
func (c *Controller) ClearSearch() {
	c.search.Raw = ""
	c.debounce.Cancel()
}

// SearchDue redeems a ticket once the quiet period has passed. Superseded or
// cancelled tickets return false. A search always restarts from the first page.
func (c *Controller) SearchDue(t Ticket) (Request, bool) {
	text, ok := c.debounce.Claim(t)
	if !ok {
		return Request{}, false
	}
	c.search.Committed = strings.TrimSpace(text)
	return c.issue("search", catalog.ForwardVariables(c.Sort(), c.pageSize, nil, c.search.Committed)), true
}

// CanNext reports whether a next page exists. Paging is disabled while a
// request is in flight.
func (c *Controller) CanNext() bool {
	s := c.recon.Snapshot()
	return c.pageable(s) && s.PageInfo.HasNextPage && s.PageInfo.EndCursor != nil
}

// CanPrevious reports whether a previous page exists.
func (c *Controller) CanPrevious() bool {
	s := c.recon.Snapshot()
	return c.pageable(s) && s.PageInfo.HasPreviousPage && s.PageInfo.StartCursor != nil
}

// pageable reports whether the cursors of s may be sent with the current
// sort and committed search.
func (c *Controller) pageable(s Snapshot) bool {
	if s.Loading || s.Err != nil || c.shown == nil {
		return false
	}
	return c.shown.sort == c.Sort() && c.shown.query == c.search.Committed
}

// Next pages forward from the end cursor of the shown page.
func (c *Controller) Next() (Request, bool) {
	if !c.CanNext() {
		return Request{}, false
	}
	after := c.recon.Snapshot().PageInfo.EndCursor
	return c.issue("next", catalog.ForwardVariables(c.Sort(), c.pageSize, after, c.search.Committed)), true
}

// Previous pages backward from the start cursor of the shown page.
func (c *Controller) Previous() (Request, bool) {
	if !c.CanPrevious() {
		return Request{}, false
	}
	before := *c.recon.Snapshot().PageInfo.StartCursor
	return c.issue("previous", catalog.BackwardVariables(c.Sort(), c.pageSize, before, c.search.Committed)), true
}

// Resolve folds a completed request into the snapshot. It returns false for
// results of superseded requests.
func (c *Controller) Resolve(res Result) bool {
	accepted := c.recon.Resolve(res)
	if accepted && res.Err == nil && res.Connection != nil {
		c.shown = &pageBasis{sort: c.last.SortPair(), query: c.last.SearchText()}
	}
	ev := c.logger.Debug().Uint64("seq", res.Seq).Bool("accepted", accepted)
	switch {
	case res.Err != nil:
		ev = ev.Err(res.Err)
	case res.Connection == nil:
		ev = ev.Bool("no_data", true)
	default:
		ev = ev.Int("items", len(res.Connection.Edges))
	}
	ev.Msg("query resolved")
	return accepted
}

// Snapshot returns what the list should show.
func (c *Controller) Snapshot() Snapshot {
	return c.recon.Snapshot()
}

// Sort returns the current (sortKey, reversed) pair.
func (c *Controller) Sort() catalog.Sort {
	return c.view.Get().Sort()
}

// Choice returns the current sort menu entry.
func (c *Controller) Choice() catalog.SortChoice {
	return c.view.Get().Choice()
}

// Search returns the search field state.
func (c *Controller) Search() SearchState {
	return c.search
}

// SearchDelay returns the debounce quiet period.
func (c *Controller) SearchDelay() time.Duration {
	return c.debounce.Delay()
}

// LastVariables returns the variables of the latest issued request.
func (c *Controller) LastVariables() catalog.QueryVariables {
	return c.last
}

func (c *Controller) issue(reason string, vars catalog.QueryVariables) Request {
	c.seq++
	c.last = vars
	c.recon.Begin(c.seq)
	c.logger.Debug().
		Uint64("seq", c.seq).
		Str("reason", reason).
		Str("direction", vars.Direction().String()).
		Str("sort", string(vars.Sort)).
		Bool("reversed", vars.Reversed).
		Msg("query issued")
	return Request{Seq: c.seq, Vars: vars}
}
