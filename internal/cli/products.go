package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/browse"
	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/cli/pagination"
	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/logging"
	"github.com/rshade/storeview/internal/urlstate"
)

type listOptions struct {
	sortFlag string
	query    string
	link     string
	output   string
	cursor   pagination.CursorParams
}

// NewProductsListCmd creates the headless product list command.
func NewProductsListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print pages of the product list",
		Long: `Runs the product list without a terminal UI: fetches the first page
(or the page next to --after/--before) and follows it for --pages pages.`,
		Example: `  storeview products list
  storeview products list --sort title-descending --pages 3
  storeview products list --query "vendor:Acme" --output ndjson
  storeview products list --after "eyJsYXN0X2lkIjo..." --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.cursor.Validate(cmd.Flags().Changed); err != nil {
				return err
			}
			opts.output = config.GetOutputFormat(opts.output)
			if !config.IsValidFormat(opts.output) {
				return fmt.Errorf("unsupported output format: %s", opts.output)
			}

			cfg := config.GetGlobalConfig()
			store, err := openView(cfg, opts.link, opts.sortFlag, false)
			if err != nil {
				return err
			}
			return listProducts(cmd, cfg, store, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sortFlag, "sort", "", "sort choice, e.g. updated-newest or TITLE")
	cmd.Flags().StringVar(&opts.query, "query", "", "search text")
	cmd.Flags().StringVar(&opts.link, "link", "", "take the sort from a shared link")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format: table, json, ndjson or yaml")
	opts.cursor.Register(cmd)

	return cmd
}

// listing is what products list prints.
type listing struct {
	Sort     catalog.SortChoice `json:"sort"            yaml:"sort"`
	SortKey  catalog.SortKey    `json:"sort_key"        yaml:"sort_key"`
	Reversed bool               `json:"reversed"        yaml:"reversed"`
	Query    string             `json:"query,omitempty" yaml:"query,omitempty"`
	Link     string             `json:"link"            yaml:"link"`
	Pages    []pageResult       `json:"pages"           yaml:"pages"`
}

type pageResult struct {
	pagination.PageMeta `yaml:",inline"`

	Products []catalog.Product `json:"products" yaml:"products"`
}

func listProducts(cmd *cobra.Command, cfg *config.Config, store *urlstate.Store, opts listOptions) error {
	recorder := &redirectRecorder{}
	exec, err := newExecutor(cfg, recorder)
	if err != nil {
		return err
	}

	ctrl := browse.New(store,
		browse.WithLogger(logging.ComponentLogger(logger, "browse")),
		browse.WithInitialSearch(opts.query),
	)
	pages, err := fetchPages(cmd.Context(), exec, ctrl, opts.cursor, recorder)
	if err != nil {
		if recorder.target != "" {
			return reauthorizationError(cmd.ErrOrStderr(), recorder.target)
		}
		return err
	}

	sort := ctrl.Sort()
	out := listing{
		Sort:     ctrl.Choice(),
		SortKey:  sort.Key,
		Reversed: sort.Reversed,
		Query:    ctrl.Search().Committed,
		Link:     store.Link(),
		Pages:    pages,
	}
	if out.Pages == nil {
		out.Pages = []pageResult{}
	}
	return renderListing(cmd.OutOrStdout(), opts.output, out)
}

// fetchPages drives ctrl synchronously: mount, then follow the paging
// direction until cursor.Pages pages are in or the list ends.
func fetchPages(
	ctx context.Context,
	exec catalog.Executor,
	ctrl *browse.Controller,
	cursor pagination.CursorParams,
	recorder *redirectRecorder,
) ([]pageResult, error) {
	after, before := cursor.Cursors()
	req := ctrl.MountAt(after, before)

	var pages []pageResult
	for n := 1; ; n++ {
		conn, err := exec.FetchProducts(ctx, req.Vars)
		ctrl.Resolve(browse.Result{Seq: req.Seq, Connection: conn, Err: err})

		if recorder.target != "" {
			return pages, fmt.Errorf("%w: %s", ErrReauthorizationRequired, recorder.target)
		}
		if snap := ctrl.Snapshot(); snap.Err != nil {
			return pages, fmt.Errorf("loading page %d: %w", n, snap.Err)
		}
		if conn == nil {
			return pages, nil
		}
		pages = append(pages, pageResult{
			PageMeta: pagination.NewPageMeta(n, conn),
			Products: conn.Products(),
		})
		if n >= cursor.Pages {
			return pages, nil
		}

		var ok bool
		if cursor.Backward() {
			req, ok = ctrl.Previous()
		} else {
			req, ok = ctrl.Next()
		}
		if !ok {
			return pages, nil
		}
	}
}
