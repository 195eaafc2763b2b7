package cli

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neon-charts/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long:  `Prints the defaults merged with --config and NEONCHARTS_* overrides. The output is a valid --config file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(cmd.OutOrStdout(), configFromContext(cmd.Context()))
		},
	}
}
