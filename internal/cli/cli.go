// Package cli implements the neoncharts command-line interface.
//
// The commands are:
//   - window: animate the charts in a desktop window
//   - render: run a chart headless and write PNG frames
//   - serve: animate the charts off-screen and serve them over HTTP
//   - config: print the effective configuration as YAML
//
// Every command accepts --config to load a YAML file and --verbose (-v)
// for debug logging. The logger and the loaded configuration travel to
// commands through the command context.
package cli

import (
	"context"
	"fmt"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/series"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the build information shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI until the command finishes or ctx is done.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "neoncharts",
		Short:        "Neon area and candlestick charts over synthetic market data",
		Long:         `neoncharts animates a smoothed random-walk area chart and a live-looking candlestick chart, in a window, headless to PNG, or over HTTP.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if configPath != "" {
				logger.Debug("config loaded", "path", configPath)
			}
			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("neoncharts %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (NEONCHARTS_* env vars override it)")

	root.AddCommand(newWindowCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// newSource returns a seeded source. Seed 0 picks a time-based seed.
func newSource(seed uint64) series.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return series.NewSource(seed)
}
