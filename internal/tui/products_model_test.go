package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/storeview/internal/browse"
	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/urlstate"
)

// fakeExecutor records every variables set it is asked to run.
type fakeExecutor struct {
	mu    sync.Mutex
	calls []catalog.QueryVariables
	conn  *catalog.ProductConnection
	err   error
}

func (f *fakeExecutor) FetchProducts(_ context.Context, vars catalog.QueryVariables) (*catalog.ProductConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, vars)
	return f.conn, f.err
}

func strPtr(s string) *string { return &s }

func testPage(prefix string, n int, hasPrev, hasNext bool) *catalog.ProductConnection {
	conn := &catalog.ProductConnection{}
	for i := range n {
		id := fmt.Sprintf("%s-%d", prefix, i)
		conn.Edges = append(conn.Edges, catalog.Edge{
			Cursor: id,
			Node: catalog.Product{
				ID: id, Title: "Title " + id, ProductType: "Shirt", Vendor: "Acme",
				Description: "A fine\nproduct",
			},
		})
	}
	conn.PageInfo = catalog.PageInfo{HasNextPage: hasNext, HasPreviousPage: hasPrev}
	if n > 0 {
		conn.PageInfo.StartCursor = strPtr(conn.Edges[0].Cursor)
		conn.PageInfo.EndCursor = strPtr(conn.Edges[n-1].Cursor)
	}
	return conn
}

func newTestModel(t *testing.T) (ProductListModel, *browse.Controller, *urlstate.Store) {
	t.Helper()
	store, err := urlstate.New("https://admin.example.com/products")
	require.NoError(t, err)
	ctrl := browse.New(store, browse.WithSearchDelay(time.Millisecond))
	m := NewProductListModel(context.Background(), ctrl, &fakeExecutor{}, WithShareLink(store.Link))
	return m, ctrl, store
}

func send(m ProductListModel, msg tea.Msg) (ProductListModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(ProductListModel), cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// mounted returns a model showing the first page.
func mounted(t *testing.T, conn *catalog.ProductConnection) (ProductListModel, *browse.Controller, *urlstate.Store) {
	t.Helper()
	m, ctrl, store := newTestModel(t)
	require.NotNil(t, m.Init())
	m, _ = send(m, productsLoadedMsg{seq: 1, conn: conn})
	require.Equal(t, ViewStateList, m.State())
	return m, ctrl, store
}

func TestNewProductListModel(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Empty(t, m.ReauthorizeURL())
	assert.NoError(t, m.Err())

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, ctrl.Snapshot().Loading)
	assert.Equal(t, catalog.DefaultSort, ctrl.LastVariables().SortPair())
	assert.Contains(t, m.View(), "PRODUCTS")
}

func TestProductListModel_InitFetchesFirstPage(t *testing.T) {
	store, err := urlstate.New("")
	require.NoError(t, err)
	exec := &fakeExecutor{conn: testPage("a", 5, false, true)}
	ctrl := browse.New(store)
	m := NewProductListModel(context.Background(), ctrl, exec)

	var loaded *productsLoadedMsg
	for _, msg := range collect(m.Init()) {
		if lm, ok := msg.(productsLoadedMsg); ok {
			loaded = &lm
		}
	}
	require.NotNil(t, loaded)
	assert.Equal(t, uint64(1), loaded.seq)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, browse.PageSize, *exec.calls[0].FirstProducts)
	assert.Nil(t, exec.calls[0].DirectionAfter)

	m, _ = send(m, *loaded)
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, 5, m.list.ItemCount())
}

func TestProductListModel_StaleResultIgnored(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m.Init()

	m, cmd := send(m, runeKey("s"))
	require.NotNil(t, cmd)

	m, _ = send(m, productsLoadedMsg{seq: 1, conn: testPage("old", 5, false, true)})
	assert.Equal(t, ViewStateLoading, m.State())
	assert.True(t, ctrl.Snapshot().Empty())

	m, _ = send(m, productsLoadedMsg{seq: 2, conn: testPage("new", 2, false, false)})
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, "new-0", m.list.SelectedItem().Node.ID)
}

func TestProductListModel_SortKeys(t *testing.T) {
	m, ctrl, store := mounted(t, testPage("a", 5, false, true))

	m, cmd := send(m, runeKey("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, catalog.SortTitleDescending, ctrl.Choice())
	assert.True(t, store.Get().Reversed)

	m, cmd = send(m, runeKey("2"))
	require.NotNil(t, cmd)
	assert.Equal(t, catalog.SortUpdatedOldest, ctrl.Choice())
	assert.Equal(t, catalog.Sort{Key: catalog.SortKeyPublishedAt, Reversed: true}, ctrl.LastVariables().SortPair())
	assert.Contains(t, store.Link(), "sortValue=PUBLISHED_AT")

	_, cmd = send(m, runeKey("9"))
	assert.Nil(t, cmd)
}

func TestProductListModel_Paging(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))

	_, cmd := send(m, runeKey("p"))
	assert.Nil(t, cmd, "no previous page")

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	vars := ctrl.LastVariables()
	require.NotNil(t, vars.DirectionAfter)
	assert.Equal(t, "a-4", *vars.DirectionAfter)

	m, _ = send(m, productsLoadedMsg{seq: 2, conn: testPage("b", 5, true, false)})
	_, cmd = send(m, runeKey("n"))
	assert.Nil(t, cmd, "no next page")

	_, cmd = send(m, runeKey("p"))
	require.NotNil(t, cmd)
	vars = ctrl.LastVariables()
	assert.Equal(t, catalog.Backward, vars.Direction())
	assert.Equal(t, "b-0", *vars.DirectionBefore)
}

func TestProductListModel_SearchDebounce(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))

	m, cmd := send(m, runeKey("/"))
	require.NotNil(t, cmd)
	assert.True(t, m.searching)

	m, _ = send(m, runeKey("h"))
	m, cmd = send(m, runeKey("i"))
	require.NotNil(t, cmd)
	assert.Equal(t, "hi", ctrl.Search().Raw)

	var due []searchDueMsg
	for _, msg := range collect(cmd) {
		if d, ok := msg.(searchDueMsg); ok {
			due = append(due, d)
		}
	}
	require.Len(t, due, 1)
	assert.Equal(t, "hi", due[0].ticket.Text())

	m, cmd = send(m, due[0])
	require.NotNil(t, cmd)
	assert.Equal(t, "hi", ctrl.Search().Committed)
	require.NotNil(t, ctrl.LastVariables().Query)
	assert.Equal(t, "hi", *ctrl.LastVariables().Query)
	assert.Nil(t, ctrl.LastVariables().DirectionAfter)

	_, cmd = send(m, due[0])
	assert.Nil(t, cmd, "a ticket is redeemed once")
}

func TestProductListModel_EscClearsWithoutDispatch(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))
	m, _ = send(m, runeKey("/"))
	m, cmd := send(m, runeKey("x"))

	var due []searchDueMsg
	for _, msg := range collect(cmd) {
		if d, ok := msg.(searchDueMsg); ok {
			due = append(due, d)
		}
	}
	require.Len(t, due, 1)
	before := ctrl.LastVariables()

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Empty(t, ctrl.Search().Raw)
	assert.Empty(t, m.search.Value())

	_, cmd = send(m, due[0])
	assert.Nil(t, cmd)
	assert.Equal(t, before, ctrl.LastVariables())
}

func TestProductListModel_EnterLeavesSearchField(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))
	m, _ = send(m, runeKey("/"))
	m, _ = send(m, runeKey("z"))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "z", ctrl.Search().Raw)
	assert.Contains(t, m.View(), "Search:")
}

func TestProductListModel_ErrorIsTerminal(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Init()

	m, _ = send(m, productsLoadedMsg{seq: 1, err: errors.New("boom")})
	assert.Equal(t, ViewStateError, m.State())
	assert.Contains(t, m.View(), "boom")

	_, cmd := send(m, runeKey("n"))
	assert.Nil(t, cmd)

	m, cmd = send(m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ViewStateQuitting, m.State())
}

func TestProductListModel_ErrorDropsPendingSearch(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m.Init()
	m, _ = send(m, runeKey("/"))
	m, cmd := send(m, runeKey("x"))

	var due []searchDueMsg
	for _, msg := range collect(cmd) {
		if d, ok := msg.(searchDueMsg); ok {
			due = append(due, d)
		}
	}
	require.Len(t, due, 1)

	m, _ = send(m, productsLoadedMsg{seq: 1, err: errors.New("boom")})
	assert.Equal(t, ViewStateError, m.State())
	assert.False(t, m.searching)
	before := ctrl.LastVariables()

	m, cmd = send(m, due[0])
	assert.Nil(t, cmd)
	assert.Equal(t, before, ctrl.LastVariables())

	m, cmd = send(m, runeKey("y"))
	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.Search().Raw)
	assert.Equal(t, ViewStateError, m.State())
	assert.Error(t, ctrl.Snapshot().Err)
}

func TestProductListModel_ReauthorizeDropsPendingSearch(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 1, false, false))
	m, _ = send(m, runeKey("/"))
	m, cmd := send(m, runeKey("x"))

	var due []searchDueMsg
	for _, msg := range collect(cmd) {
		if d, ok := msg.(searchDueMsg); ok {
			due = append(due, d)
		}
	}
	require.Len(t, due, 1)

	m, _ = send(m, ReauthorizeMsg{URL: "https://shop.example.com/auth"})
	assert.False(t, m.searching)
	_, cmd = send(m, due[0])
	assert.Nil(t, cmd)
	assert.Empty(t, ctrl.Search().Committed)
}

func TestProductListModel_PagingDisabledDuringSortChange(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))

	m, cmd := send(m, runeKey("s"))
	require.NotNil(t, cmd)
	sortVars := ctrl.LastVariables()

	_, cmd = send(m, runeKey("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, sortVars, ctrl.LastVariables())
	assert.False(t, ctrl.CanNext())
}

func TestProductListModel_NoDataKeepsPreviousPage(t *testing.T) {
	m, ctrl, _ := mounted(t, testPage("a", 5, false, true))
	m, _ = send(m, runeKey("n"))

	m, _ = send(m, productsLoadedMsg{seq: 2})
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, "a-0", ctrl.Snapshot().Items[0].Node.ID)
}

func TestProductListModel_Reauthorize(t *testing.T) {
	m, _, _ := mounted(t, testPage("a", 1, false, false))

	m, cmd := send(m, ReauthorizeMsg{URL: "https://shop.example.com/auth"})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ViewStateReauthorize, m.State())
	assert.Equal(t, "https://shop.example.com/auth", m.ReauthorizeURL())
	assert.Contains(t, m.View(), "https://shop.example.com/auth")
}

func TestProductListModel_Detail(t *testing.T) {
	m, _, _ := mounted(t, testPage("a", 3, false, false))

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "PRODUCT DETAIL")
	assert.Contains(t, view, "Title a-1")
	assert.Contains(t, view, "Acme")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.State())
}

func TestProductListModel_ListView(t *testing.T) {
	m, _, _ := mounted(t, testPage("a", 2, false, true))
	m, _ = send(m, tea.WindowSizeMsg{Width: 140, Height: 30})

	view := m.View()
	assert.Contains(t, view, "Title a-0")
	assert.Contains(t, view, "Alphabetically (A-Z)")
	assert.Contains(t, view, "[n] Next")
	assert.Contains(t, view, "Link: https://admin.example.com/products?reversed=false&sortValue=TITLE")
	assert.Contains(t, view, "A fine product")
}

func TestProductListModel_EmptyResult(t *testing.T) {
	m, _, _ := mounted(t, testPage("a", 0, false, false))
	assert.Contains(t, m.View(), "No products found")
}

func TestProductListModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{name: "q", key: runeKey("q")},
		{name: "ctrl+c", key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := mounted(t, testPage("a", 1, false, false))
			m, cmd := send(m, tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, ViewStateQuitting, m.State())
			assert.Empty(t, m.View())
		})
	}
}

func TestNextChoice(t *testing.T) {
	choices := catalog.SortChoices()
	assert.Equal(t, choices[1], nextChoice(choices[0]))
	assert.Equal(t, choices[0], nextChoice(choices[len(choices)-1]))
	assert.Equal(t, choices[0], nextChoice("bogus"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "a", truncate("abc", 1))
}

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name                  string
		force, noColor, plain bool
		outTTY, inTTY         bool
		envNC, dumb           bool
		want                  OutputMode
	}{
		{name: "terminal", outTTY: true, inTTY: true, want: OutputModeInteractive},
		{name: "piped", want: OutputModePlain},
		{name: "stdin redirected", outTTY: true, want: OutputModeStyled},
		{name: "plain flag", plain: true, outTTY: true, inTTY: true, want: OutputModePlain},
		{name: "no color flag", noColor: true, outTTY: true, inTTY: true, want: OutputModePlain},
		{name: "NO_COLOR", envNC: true, outTTY: true, inTTY: true, want: OutputModePlain},
		{name: "dumb terminal", dumb: true, outTTY: true, inTTY: true, want: OutputModePlain},
		{name: "forced color piped", force: true, want: OutputModeStyled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.force, tt.noColor, tt.plain, tt.outTTY, tt.inTTY, tt.envNC, tt.dumb)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}
}
