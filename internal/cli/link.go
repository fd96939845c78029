package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/catalog"
	"github.com/rshade/storeview/internal/config"
)

// NewLinkCmd creates the command that prints shareable links.
func NewLinkCmd() *cobra.Command {
	var (
		sortFlag string
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the shareable link of a view",
		Long: `Prints the link that restores the product list with the given sort.
Without --sort the remembered view is used.`,
		Example: `  storeview link --sort title-descending
  storeview link --list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if list {
				return printSortChoices(cmd)
			}
			store, err := openView(config.GetGlobalConfig(), "", sortFlag, false)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, store.Link())
			return err
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "sort choice, e.g. title-descending or REVERSED_TITLE")
	cmd.Flags().BoolVar(&list, "list", false, "list the sort choices")

	return cmd
}

func printSortChoices(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "#\tVALUE\tNAME\tLABEL\n"); err != nil {
		return err
	}
	for i, c := range catalog.SortChoices() {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c, c.Alias(), c.Label()); err != nil {
			return err
		}
	}
	return tw.Flush()
}
