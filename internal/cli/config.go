package cli

import (
	"github.com/rileyhilliard/lcdmon/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd prints the effective settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration lcdmon would run with, after applying defaults,
LCDMON_* environment variables and flags, as YAML.

Examples:
  lcdmon config
  LCDMON_INTERFACES=eth0 lcdmon config --net-scale linear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to encode configuration", "")
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
