package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/storeview/internal/config"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  storeview config init
  storeview config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := filepath.Join(config.Dir(), config.ConfigFileName)
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// NewConfigShowCmd creates the config show command. The token is redacted.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig().Redacted()
			out := cmd.OutOrStdout()
			if path := config.GetGlobalConfig().Path(); path != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "# loaded from %s\n", path)
			}

			switch output {
			case config.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			case config.FormatYAML, "":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(yamlIndent)
				if err := enc.Encode(cfg); err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.FormatYAML, "output format: yaml or json")

	return cmd
}
