package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neon-charts/internal/chart"
	"github.com/iburimskiy/neon-charts/internal/server"
	"github.com/iburimskiy/neon-charts/internal/snapshot"
)

func newServeCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Animate the charts off-screen and serve them over HTTP",
		Long: `Routes:
  GET /healthz               liveness and frame count
  GET /charts/{kind}.png     latest frame of area or candles
  GET /charts/candles/live   websocket feed of the forming candle

With snapshot.cron set, PNG snapshots of every chart are written to
snapshot.dir on that schedule (six-field cron with seconds).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Server.Addr, _ = flags.GetString("addr")
			}
			if flags.Changed("snapshot-cron") {
				cfg.Snapshot.Cron, _ = flags.GetString("snapshot-cron")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			srv, err := server.New(cfg, logger, newSource(seed))
			if err != nil {
				return err
			}

			if cfg.Snapshot.Cron != "" {
				sched := snapshot.NewScheduler(cfg.Snapshot.Dir, logger)
				for _, kind := range chart.Kinds {
					src, _ := srv.Source(kind)
					if err := sched.Register(cfg.Snapshot.Cron, kind, src); err != nil {
						return fmt.Errorf("snapshot schedule: %w", err)
					}
				}
				sched.Start()
				defer sched.Stop()
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	cmd.Flags().String("snapshot-cron", "", "snapshot schedule (overrides snapshot.cron)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	return cmd
}
