package series

import "math"

// Sample is one point of the continuous series.
type Sample struct {
	Index int
	Value float64
}

// WalkParams tunes the smoothed random walk.
type WalkParams struct {
	SeedCount      int
	SeedValue      float64
	SeedDrift      float64
	Drift          float64
	DriftAmplitude float64
	DriftRate      float64
	MomentumDecay  float64
	Noise          float64
}

// Walk generates a multiplicative random walk whose noise is smoothed by a
// decaying momentum term, so the series drifts rather than jitters.
type Walk struct {
	params   WalkParams
	src      Source
	momentum float64
	last     Sample
	started  bool
}

func NewWalk(p WalkParams, src Source) *Walk {
	return &Walk{params: p, src: src}
}

// Seed fills dst with SeedCount samples using the constant seed drift and
// zero initial momentum. The first sample is SeedValue itself.
func (w *Walk) Seed(dst *Ring[Sample]) {
	w.momentum = 0
	w.last = Sample{Index: 0, Value: w.params.SeedValue}
	w.started = true
	dst.Push(w.last)
	for i := 1; i < w.params.SeedCount; i++ {
		dst.Push(w.advance(w.params.SeedDrift))
	}
}

// Step appends one sample. t is the chart clock feeding the slow
// sinusoidal drift term.
func (w *Walk) Step(dst *Ring[Sample], t float64) Sample {
	if !w.started {
		w.last = Sample{Index: -1, Value: w.params.SeedValue}
		w.started = true
	}
	drift := w.params.Drift + math.Sin(t*w.params.DriftRate)*w.params.DriftAmplitude
	s := w.advance(drift)
	dst.Push(s)
	return s
}

func (w *Walk) advance(drift float64) Sample {
	w.momentum = w.momentum*w.params.MomentumDecay + (w.src.Float64()-0.5)*w.params.Noise
	w.last = Sample{
		Index: w.last.Index + 1,
		Value: w.last.Value * (1 + drift + w.momentum),
	}
	return w.last
}

func (w *Walk) Momentum() float64 { return w.momentum }

// Values projects samples onto their values.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}
