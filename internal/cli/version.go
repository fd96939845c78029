package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/storeview/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ver)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			if err == nil && version.IsDevelopment() {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "development build")
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
