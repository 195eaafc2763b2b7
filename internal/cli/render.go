package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/neon-charts/internal/anim"
	"github.com/iburimskiy/neon-charts/internal/chart"
	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/snapshot"
)

type renderOpts struct {
	kind      string
	output    string
	frames    uint64
	every     uint64
	width     int
	height    int
	seed      uint64
	particles bool
}

func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		kind:   chart.KindCandles,
		frames: 240,
		width:  config.WindowWidth,
		height: config.WindowHeight,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run a chart headless and write PNG frames",
		Long: `Runs a chart for --frames frames off-screen and writes the last frame to
--output. With --every N, every Nth frame is also written next to it as
<output>-NNNNN.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				opts.output = opts.kind + ".png"
			}
			if opts.frames == 0 {
				return errors.New("--frames must be positive")
			}
			if opts.width <= 0 || opts.height <= 0 {
				return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
			}
			return runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.kind, "chart", "t", opts.kind, "chart kind: area or candles")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default <chart>.png)")
	cmd.Flags().Uint64VarP(&opts.frames, "frames", "n", opts.frames, "frames to run")
	cmd.Flags().Uint64Var(&opts.every, "every", 0, "also write every Nth frame")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().BoolVar(&opts.particles, "particles", false, "draw the particle overlay")
	return cmd
}

func runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	src := newSource(opts.seed)

	ch, err := chart.New(opts.kind, cfg, src)
	if err != nil {
		return err
	}
	if opts.particles {
		ch = chart.WithParticles(ch, render.NewParticleField(config.ParticleCount,
			float64(opts.width), float64(opts.height), config.ParticleLinkDist, src))
	}

	prog := newProgress(logger)
	raster := render.NewRaster(opts.width, opts.height)
	queue := anim.NewFrameQueue()

	var (
		frame    uint64
		writeErr error
	)
	var loop *anim.Loop
	loop = anim.NewLoop(queue, func() {
		ch.Frame(raster)
		frame++
		if opts.every == 0 || frame%opts.every != 0 {
			return
		}
		path := framePath(opts.output, frame)
		if err := snapshot.Save(path, raster); err != nil {
			writeErr = err
			loop.Stop()
			return
		}
		logger.Debug("frame written", "path", path)
	})
	loop.StopAfter(opts.frames)
	loop.Start()

	for queue.Pending() > 0 {
		if err := ctx.Err(); err != nil {
			loop.Stop()
			return err
		}
		queue.Tick()
	}
	if writeErr != nil {
		return writeErr
	}

	if err := snapshot.Save(opts.output, raster); err != nil {
		return err
	}
	prog.done("rendered", "chart", opts.kind, "frames", frame, "output", opts.output)
	return nil
}

// framePath turns out.png into out-00042.png for frame 42.
func framePath(output string, frame uint64) string {
	ext := filepath.Ext(output)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s-%05d%s", strings.TrimSuffix(output, filepath.Ext(output)), frame, ext)
}
