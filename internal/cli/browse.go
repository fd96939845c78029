package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/bridge"
	"github.com/rshade/storeview/internal/browse"
	"github.com/rshade/storeview/internal/cli/pagination"
	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/logging"
	"github.com/rshade/storeview/internal/tui"
)

// NewBrowseCmd creates the interactive product list command.
func NewBrowseCmd() *cobra.Command {
	var (
		link     string
		sortFlag string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse products interactively",
		Long: `Opens the interactive product list.

Keys: [/] search, [esc] clear search, [s] next sort, [1-5] pick a sort,
[n]/[right] next page, [p]/[left] previous page, [enter] details, [q] quit.

When stdout is not a terminal the first page is printed instead.`,
		Example: `  storeview browse
  storeview browse --sort updated-oldest
  storeview browse --link "https://admin.example.com/products?sortValue=PUBLISHED_AT&reversed=true"`,
		Annotations: map[string]string{drawsOnTerminal: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, link, sortFlag, plain)
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "restore the view from a shared link")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort choice, e.g. title-ascending or REVERSED_DATE")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the first page instead of starting the interactive list")

	return cmd
}

func runBrowse(cmd *cobra.Command, link, sortFlag string, plain bool) error {
	cfg := config.GetGlobalConfig()
	store, err := openView(cfg, link, sortFlag, true)
	if err != nil {
		return err
	}

	mode := tui.DetectOutputMode(false, false, plain)
	if mode != tui.OutputModeInteractive {
		logger.Debug().Ctx(cmd.Context()).Str("mode", mode.String()).Msg("not interactive, printing first page")
		return listProducts(cmd, cfg, store, listOptions{
			cursor: pagination.CursorParams{Pages: pagination.DefaultPages},
			output: config.FormatTable,
		})
	}

	var program *tea.Program
	redirector := bridge.RedirectFunc(func(target string) {
		program.Send(tui.ReauthorizeMsg{URL: target})
	})

	exec, err := newExecutor(cfg, redirector)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	ctrl := browse.New(store, browse.WithLogger(logging.ComponentLogger(logger, "browse")))
	model := tui.NewProductListModel(ctx, ctrl, exec,
		tui.WithShareLink(store.Link),
		tui.WithModelLogger(logging.ComponentLogger(logger, "tui")),
	)

	program = tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running product list: %w", err)
	}

	m, ok := final.(tui.ProductListModel)
	if !ok {
		return nil
	}
	if target := m.ReauthorizeURL(); target != "" {
		return reauthorizationError(cmd.ErrOrStderr(), target)
	}
	if m.Err() != nil {
		return fmt.Errorf("loading products: %w", m.Err())
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), store.Link())
	return nil
}
