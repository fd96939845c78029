package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/storeview/internal/bridge"
	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/cli"
	"github.com/rshade/storeview/internal/config"
)

const testAppURL = "https://admin.example.com/products"

// fakeShop is an Admin API stand-in serving a fixed catalog with relay
// cursor semantics. Cursors are product IDs.
type fakeShop struct {
	mu       sync.Mutex
	products []catalog.Product
	requests []catalog.QueryVariables
	tokens   []string
	reauth   string
	failWith string
}

func newFakeShop(n int) *fakeShop {
	shop := &fakeShop{}
	for i := range n {
		shop.products = append(shop.products, catalog.Product{
			ID:          fmt.Sprintf("p-%02d", i),
			Title:       fmt.Sprintf("Product %02d", i),
			ProductType: "Shirt",
			Vendor:      "Acme",
			CreatedAt:   "2024-01-01T00:00:00Z",
		})
	}
	return shop
}

func (f *fakeShop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string                 `json:"query"`
		Variables catalog.QueryVariables `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := catalog.ValidateDocument(req.Query); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req.Variables)
	f.tokens = append(f.tokens, r.Header.Get("Authorization"))
	reauth, failWith := f.reauth, f.failWith
	f.mu.Unlock()

	if reauth != "" {
		w.Header().Set(bridge.HeaderReauthorize, "1")
		w.Header().Set(bridge.HeaderReauthorizeURL, reauth)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if failWith != "" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":   nil,
			"errors": []map[string]any{{"message": failWith}},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": catalog.ProductsData{Products: f.page(req.Variables)},
	})
}

func (f *fakeShop) page(v catalog.QueryVariables) *catalog.ProductConnection {
	items := slices.Clone(f.products)
	if v.Query != nil {
		items = slices.DeleteFunc(items, func(p catalog.Product) bool {
			return !strings.Contains(p.Title, *v.Query)
		})
	}
	if v.Reversed {
		slices.Reverse(items)
	}

	index := func(cursor string) int {
		return slices.IndexFunc(items, func(p catalog.Product) bool { return p.ID == cursor })
	}

	from, to := 0, len(items)
	if v.DirectionAfter != nil {
		from = index(*v.DirectionAfter) + 1
	}
	if v.DirectionBefore != nil {
		to = index(*v.DirectionBefore)
	}
	if v.FirstProducts != nil && to-from > *v.FirstProducts {
		to = from + *v.FirstProducts
	}
	if v.LastProducts != nil && to-from > *v.LastProducts {
		from = to - *v.LastProducts
	}

	conn := &catalog.ProductConnection{Edges: []catalog.Edge{}}
	for _, p := range items[from:to] {
		conn.Edges = append(conn.Edges, catalog.Edge{Cursor: p.ID, Node: p})
	}
	conn.PageInfo.HasPreviousPage = from > 0
	conn.PageInfo.HasNextPage = to < len(items)
	if len(conn.Edges) > 0 {
		start, end := conn.Edges[0].Cursor, conn.Edges[len(conn.Edges)-1].Cursor
		conn.PageInfo.StartCursor = &start
		conn.PageInfo.EndCursor = &end
	}
	return conn
}

func (f *fakeShop) Requests() []catalog.QueryVariables {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

// setupCLITest isolates config and state under a temp home and points the
// store at shop.
func setupCLITest(t *testing.T, shop *fakeShop) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv("STOREVIEW_LOGGING_LEVEL", "error")
	t.Setenv("STOREVIEW_STORE_TOKEN", "test-token")
	t.Setenv("STOREVIEW_STORE_APP_URL", testAppURL)
	t.Setenv("STOREVIEW_CONFIG", "")
	if shop != nil {
		srv := httptest.NewServer(shop)
		t.Cleanup(srv.Close)
		t.Setenv("STOREVIEW_STORE_ENDPOINT", srv.URL+"/admin/api/graphql.json")
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := execute(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}
