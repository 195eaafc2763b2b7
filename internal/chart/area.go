package chart

import (
	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/series"
)

// Area is the continuous random-walk chart.
type Area struct {
	cfg      config.AreaConfig
	walk     *series.Walk
	samples  *series.Ring[series.Sample]
	renderer render.AreaRenderer
	clock    float64
}

// NewArea returns an area chart whose history is already seeded, so the
// first frame shows a full window.
func NewArea(cfg config.AreaConfig, src series.Source) *Area {
	a := &Area{
		cfg: cfg,
		walk: series.NewWalk(series.WalkParams{
			SeedCount:      cfg.SeedCount,
			SeedValue:      cfg.SeedValue,
			SeedDrift:      cfg.SeedDrift,
			Drift:          cfg.Drift,
			DriftAmplitude: cfg.DriftAmplitude,
			DriftRate:      cfg.DriftRate,
			MomentumDecay:  cfg.MomentumDecay,
			Noise:          cfg.Noise,
		}, src),
		samples: series.NewRing[series.Sample](cfg.Retention),
		renderer: render.AreaRenderer{
			MAPeriod:  cfg.MAPeriod,
			PadTop:    cfg.PadTop,
			PadBottom: cfg.PadBottom,
		},
	}
	a.walk.Seed(a.samples)
	return a
}

// Frame paints the current window, then advances the series by
// StepsPerFrame samples. The painted frame therefore trails the newest
// samples by one frame.
func (a *Area) Frame(c render.Canvas) {
	c.Clear()
	a.Draw(c)
	for i := 0; i < a.cfg.StepsPerFrame; i++ {
		a.walk.Step(a.samples, a.clock)
	}
	a.clock += a.cfg.Speed
}

func (a *Area) Draw(c render.Canvas) {
	a.renderer.Draw(c, a.Visible())
}

// Visible returns the trailing window of samples.
func (a *Area) Visible() []series.Sample {
	return a.samples.Last(a.cfg.Window)
}

// Samples returns every retained sample.
func (a *Area) Samples() []series.Sample { return a.samples.All() }

func (a *Area) Clock() float64 { return a.clock }
