package chart

import (
	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/series"
)

// Candles is the live-looking candlestick chart. The forming bar ticks
// every TickEvery frames and is committed every PeriodFrames frames.
type Candles struct {
	cfg        config.CandleConfig
	engine     *series.CandleEngine
	renderer   render.CandleRenderer
	frames     uint64
	clock      float64
	onFinalize func(series.Bar)
}

// NewCandles returns a candlestick chart with a seeded history.
func NewCandles(cfg config.CandleConfig, src series.Source) *Candles {
	k := &Candles{
		cfg: cfg,
		engine: series.NewCandleEngine(series.CandleParams{
			WindowSize:     cfg.WindowSize,
			BasePrice:      cfg.BasePrice,
			Volatility:     cfg.Volatility,
			WickJitter:     cfg.WickJitter,
			TickVolatility: cfg.TickVolatility,
			Drift:          cfg.Drift,
			DriftRate:      cfg.DriftRate,
		}, src),
		renderer: render.CandleRenderer{
			Slots:     cfg.WindowSize,
			PadTop:    cfg.PadTop,
			PadBottom: cfg.PadBottom,
		},
	}
	k.engine.Seed()
	return k
}

// OnFinalize registers fn to run with every committed bar. It runs inside
// Frame, before the frame is painted.
func (k *Candles) OnFinalize(fn func(series.Bar)) {
	k.onFinalize = fn
}

// Frame advances the cadence counters, then paints unconditionally.
func (k *Candles) Frame(c render.Canvas) {
	k.Advance()
	c.Clear()
	k.Draw(c)
}

// Advance runs the tick and finalize schedule for one frame without
// painting. It reports whether a bar was committed.
func (k *Candles) Advance() bool {
	k.frames++
	if k.frames%uint64(k.cfg.TickEvery) == 0 {
		k.engine.Tick(k.clock)
		k.clock++
	}
	if k.frames%uint64(k.cfg.PeriodFrames) != 0 {
		return false
	}
	done := k.engine.Finalize()
	if k.onFinalize != nil {
		k.onFinalize(done)
	}
	return true
}

func (k *Candles) Draw(c render.Canvas) {
	k.renderer.Draw(c, k.engine.Bars(), k.engine.Forming())
}

func (k *Candles) Forming() series.Bar { return k.engine.Forming() }

func (k *Candles) Bars() []series.Bar { return k.engine.Bars() }

func (k *Candles) Frames() uint64 { return k.frames }
