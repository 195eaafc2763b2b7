package cli

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/neon-charts/internal/game"
)

func newWindowCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Animate the charts in a desktop window",
		Long: `Opens a resizable window showing one chart at a time.

Keys: Space pauses and resumes, Tab switches chart, S saves a PNG snapshot,
Esc or Q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			flags := cmd.Flags()
			if flags.Changed("chart") {
				cfg.Window.Chart, _ = flags.GetString("chart")
			}
			if flags.Changed("particles") {
				cfg.Window.Particles, _ = flags.GetBool("particles")
			}
			if flags.Changed("chime") {
				cfg.Window.Chime, _ = flags.GetBool("chime")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			g, err := game.New(cfg, loggerFromContext(ctx), newSource(seed))
			if err != nil {
				return err
			}
			return game.Run(ctx, g)
		},
	}

	cmd.Flags().String("chart", "", "chart shown first: area or candles")
	cmd.Flags().Bool("particles", false, "draw the particle overlay")
	cmd.Flags().Bool("chime", false, "play a tone when a candle closes")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	return cmd
}
