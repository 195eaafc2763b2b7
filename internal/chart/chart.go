// Package chart binds generators and renderers into animated charts. A
// chart's Frame is the per-frame step a scheduler calls; Draw repaints the
// current state without advancing it.
package chart

import (
	"errors"
	"fmt"

	"github.com/iburimskiy/neon-charts/internal/config"
	"github.com/iburimskiy/neon-charts/internal/render"
	"github.com/iburimskiy/neon-charts/internal/series"
)

// ErrUnknownChart is returned by New for an unrecognized kind.
var ErrUnknownChart = errors.New("unknown chart")

const (
	KindArea    = "area"
	KindCandles = "candles"
)

// Kinds lists the chart kinds New accepts.
var Kinds = []string{KindArea, KindCandles}

// Chart is one animated chart. Implementations are not safe for concurrent
// use; hosts serialize Frame and Draw.
type Chart interface {
	Frame(c render.Canvas)
	Draw(c render.Canvas)
}

// New builds a seeded chart of the given kind.
func New(kind string, cfg config.Config, src series.Source) (Chart, error) {
	switch kind {
	case KindArea:
		return NewArea(cfg.Area, src), nil
	case KindCandles:
		return NewCandles(cfg.Candles, src), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
}

// Overlay draws a particle field on top of another chart and advances it
// with every frame.
type Overlay struct {
	Chart
	field *render.ParticleField
}

func WithParticles(c Chart, field *render.ParticleField) *Overlay {
	return &Overlay{Chart: c, field: field}
}

func (o *Overlay) Frame(c render.Canvas) {
	o.Chart.Frame(c)
	w, h := c.Size()
	o.field.Step(w, h)
	o.field.Draw(c)
}

func (o *Overlay) Draw(c render.Canvas) {
	o.Chart.Draw(c)
	o.field.Draw(c)
}
