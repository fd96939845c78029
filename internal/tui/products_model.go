package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/storeview/internal/browse"
	"github.com/rshade/storeview/internal/catalog"
	listview "github.com/rshade/storeview/internal/tui/list"
)

// productsLoadedMsg carries the outcome of one issued request.
type productsLoadedMsg struct {
	seq  uint64
	conn *catalog.ProductConnection
	err  error
}

// searchDueMsg fires when the search quiet period of a ticket has passed.
type searchDueMsg struct {
	ticket browse.Ticket
}

// ReauthorizeMsg tells the model the host asked for reauthorization.
// Send it with tea.Program.Send from a bridge.Redirector.
type ReauthorizeMsg struct {
	URL string
}

// listChromeHeight is the number of lines around the product rows.
const listChromeHeight = 9

// ProductListModel is the interactive product list.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ProductListModel struct {
	ctx    context.Context
	ctrl   *browse.Controller
	exec   catalog.Executor
	link   func() string
	logger zerolog.Logger

	state     ViewState
	list      *listview.VirtualListModel[catalog.Edge]
	search    textinput.Model
	searching bool
	loading   *LoadingState
	detail    *catalog.Product

	width  int
	height int

	reauthURL string
	err       error
}

// ProductListOption configures a ProductListModel.
type ProductListOption func(*ProductListModel)

// WithShareLink sets the function that renders the footer link.
func WithShareLink(link func() string) ProductListOption {
	return func(m *ProductListModel) {
		m.link = link
	}
}

// WithModelLogger sets the model logger.
func WithModelLogger(logger zerolog.Logger) ProductListOption {
	return func(m *ProductListModel) {
		m.logger = logger
	}
}

// NewProductListModel returns a model driving ctrl, running its requests
// through exec.
func NewProductListModel(
	ctx context.Context,
	ctrl *browse.Controller,
	exec catalog.Executor,
	opts ...ProductListOption,
) ProductListModel {
	m := ProductListModel{
		ctx:     ctx,
		ctrl:    ctrl,
		exec:    exec,
		logger:  zerolog.Nop(),
		state:   ViewStateLoading,
		search:  newTextInput(),
		loading: NewLoadingState(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.list = listview.NewVirtualListModel[catalog.Edge](nil, m.listHeight(), m.width, renderProductRow)
	return m
}

// Init mounts the list.
func (m ProductListModel) Init() tea.Cmd {
	return m.dispatch(m.ctrl.Mount())
}

// Update handles messages (Bubble Tea interface).
func (m ProductListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		return m, nil
	case productsLoadedMsg:
		return m.handleLoaded(msg)
	case searchDueMsg:
		if m.terminal() {
			return m, nil
		}
		if req, ok := m.ctrl.SearchDue(msg.ticket); ok {
			return m, m.dispatch(req)
		}
		return m, nil
	case ReauthorizeMsg:
		m.logger.Warn().Str("url", msg.URL).Msg("reauthorization requested")
		m.reauthURL = msg.URL
		m.state = ViewStateReauthorize
		m.stopSearch()
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.ctrl.Snapshot().Loading {
			return m, nil
		}
		return m, m.loading.Update(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m ProductListModel) handleLoaded(msg productsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Resolve(browse.Result{Seq: msg.seq, Connection: msg.conn, Err: msg.err}) {
		return m, nil
	}
	snap := m.ctrl.Snapshot()
	if snap.Err != nil {
		m.err = snap.Err
		m.state = ViewStateError
		m.stopSearch()
		return m, nil
	}
	if m.state == ViewStateLoading {
		m.state = ViewStateList
	}
	m.list.SetItems(snap.Items)
	return m, nil
}

func (m ProductListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	if m.searching && !m.terminal() {
		return m.handleSearchKey(msg)
	}

	switch m.state {
	case ViewStateDetail:
		return m.handleDetailKey(msg)
	case ViewStateList, ViewStateLoading:
		return m.handleListKey(msg)
	case ViewStateError, ViewStateReauthorize, ViewStateQuitting:
		if msg.String() == keyQuit {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ProductListModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case keyEsc:
		m.searching = false
		m.search.Blur()
		m.clearSearch()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.scheduleSearch(m.search.Value()))
}

func (m ProductListModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		m.clearSearch()
		return m, nil
	case keyS:
		return m, m.changeSort(string(nextChoice(m.ctrl.Choice())))
	case "1", "2", "3", "4", "5":
		idx, _ := strconv.Atoi(key)
		choices := catalog.SortChoices()
		if idx > len(choices) {
			return m, nil
		}
		return m, m.changeSort(string(choices[idx-1]))
	case keyN, keyRight:
		if req, ok := m.ctrl.Next(); ok {
			return m, m.dispatch(req)
		}
		return m, nil
	case keyP, keyLeft:
		if req, ok := m.ctrl.Previous(); ok {
			return m, m.dispatch(req)
		}
		return m, nil
	case keyEnter:
		if edge := m.list.SelectedItem(); edge != nil {
			node := edge.Node
			m.detail = &node
			m.state = ViewStateDetail
		}
		return m, nil
	}
	m.list.Update(msg)
	return m, nil
}

func (m ProductListModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyEsc, keyEnter:
		m.detail = nil
		m.state = ViewStateList
	}
	return m, nil
}

// terminal reports whether the model only waits for quit.
func (m ProductListModel) terminal() bool {
	switch m.state {
	case ViewStateError, ViewStateReauthorize, ViewStateQuitting:
		return true
	}
	return false
}

// stopSearch leaves the search field and drops any pending dispatch.
func (m *ProductListModel) stopSearch() {
	m.searching = false
	m.search.Blur()
	m.ctrl.ClearSearch()
}

func (m *ProductListModel) clearSearch() {
	m.search.SetValue("")
	m.ctrl.ClearSearch()
}

func (m *ProductListModel) scheduleSearch(text string) tea.Cmd {
	ticket, ok := m.ctrl.SearchTextChanged(text)
	if !ok {
		return nil
	}
	return tea.Tick(m.ctrl.SearchDelay(), func(time.Time) tea.Msg {
		return searchDueMsg{ticket: ticket}
	})
}

func (m *ProductListModel) changeSort(choice string) tea.Cmd {
	req, ok := m.ctrl.ChangeSort(choice)
	if !ok {
		return nil
	}
	return m.dispatch(req)
}

// dispatch runs req off the event loop and restarts the spinner.
func (m *ProductListModel) dispatch(req browse.Request) tea.Cmd {
	ctx, exec := m.ctx, m.exec
	fetch := func() tea.Msg {
		conn, err := exec.FetchProducts(ctx, req.Vars)
		return productsLoadedMsg{seq: req.Seq, conn: conn, err: err}
	}
	return tea.Batch(fetch, m.loading.Init())
}

func (m ProductListModel) listHeight() int {
	return max(m.height-listChromeHeight, 1)
}

// nextChoice returns the menu entry after c, wrapping around.
func nextChoice(c catalog.SortChoice) catalog.SortChoice {
	choices := catalog.SortChoices()
	for i, choice := range choices {
		if choice == c {
			return choices[(i+1)%len(choices)]
		}
	}
	return choices[0]
}

// State returns the current view state.
func (m ProductListModel) State() ViewState {
	return m.state
}

// ReauthorizeURL returns the redirect target once reauthorization was
// requested, or "".
func (m ProductListModel) ReauthorizeURL() string {
	return m.reauthURL
}

// Err returns the error shown by the error view.
func (m ProductListModel) Err() error {
	return m.err
}
