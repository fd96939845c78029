package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/catalog"
)

// NewQueryCmd creates the command that prints the products query document.
func NewQueryCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the GraphQL products query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !validate {
				_, err := fmt.Fprint(out, catalog.ProductsQuery)
				return err
			}
			op, err := catalog.ParseProductsQuery()
			if err != nil {
				return fmt.Errorf("products query is invalid: %w", err)
			}
			vars := catalog.VariableNames(op)
			for i, v := range vars {
				vars[i] = "$" + v
			}
			_, err = fmt.Fprintf(out, "valid %s with variables %s\n", op.Operation, strings.Join(vars, ", "))
			return err
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "validate the document against the bundled schema")

	return cmd
}
