// Package cli implements the storeview command line.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/storeview/internal/config"
	"github.com/rshade/storeview/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the storeview CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "storeview",
		Short:         "Browse a storefront product catalog",
		Long:          "storeview: page, sort and search the products of a storefront through its Admin GraphQL API",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				if env, ok := lookupEnv("STOREVIEW_CONFIG"); ok {
					configPath = env
				}
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $STOREVIEW_HOME/config.yaml or ~/.storeview/config.yaml)")
	cmd.AddCommand(
		NewBrowseCmd(), newProductsCmd(), NewLinkCmd(),
		NewQueryCmd(), newConfigCmd(), NewVersionCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Browse products interactively
  storeview browse

  # Open a shared link
  storeview browse --link "https://admin.example.com/products?sortValue=TITLE&reversed=true"

  # Print the first three pages sorted by newest update
  storeview products list --sort updated-newest --pages 3

  # Search and print JSON
  storeview products list --query shirt --output json

  # Print the shareable link for a sort
  storeview link --sort title-descending

  # Create a default configuration file
  storeview config init`

// newProductsCmd creates the products command group.
func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Product catalog commands"}
	cmd.AddCommand(NewProductsListCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
