package series

import (
	"math"
	"testing"
)

func testWalkParams() WalkParams {
	return WalkParams{
		SeedCount:      220,
		SeedValue:      100,
		SeedDrift:      0.002,
		Drift:          0.0015,
		DriftAmplitude: 0.001,
		DriftRate:      0.05,
		MomentumDecay:  0.9,
		Noise:          0.02,
	}
}

func TestSeedIsGeometricWithoutNoise(t *testing.T) {
	ring := NewRing[Sample](240)
	w := NewWalk(testWalkParams(), Constant(0.5))
	w.Seed(ring)

	samples := ring.All()
	if len(samples) != 220 {
		t.Fatalf("seeded %d samples, want 220", len(samples))
	}
	want := 100 * math.Pow(1.002, 10)
	if got := samples[10].Value; math.Abs(got-want) > 1e-9 {
		t.Errorf("sample[10] = %.12f, want %.12f", got, want)
	}
	for i, s := range samples {
		if s.Index != i {
			t.Fatalf("sample %d has index %d", i, s.Index)
		}
	}
	if w.Momentum() != 0 {
		t.Errorf("momentum = %v, want 0 without noise", w.Momentum())
	}
}

func TestStepAppliesSinusoidalDrift(t *testing.T) {
	p := testWalkParams()
	ring := NewRing[Sample](240)
	w := NewWalk(p, Constant(0.5))
	w.Seed(ring)

	prev, _ := ring.Latest()
	tm := 12.0
	next := w.Step(ring, tm)

	drift := p.Drift + math.Sin(tm*p.DriftRate)*p.DriftAmplitude
	want := prev.Value * (1 + drift)
	if math.Abs(next.Value-want) > 1e-9 {
		t.Errorf("Step() = %.12f, want %.12f", next.Value, want)
	}
	if next.Index != prev.Index+1 {
		t.Errorf("Step() index = %d, want %d", next.Index, prev.Index+1)
	}
}

func TestWalkRetentionCap(t *testing.T) {
	ring := NewRing[Sample](240)
	w := NewWalk(testWalkParams(), NewSource(7))
	w.Seed(ring)
	for i := 0; i < 1000; i++ {
		w.Step(ring, float64(i)*0.06)
		if ring.Len() > 240 {
			t.Fatalf("ring length %d exceeds cap after %d steps", ring.Len(), i+1)
		}
	}
	samples := ring.All()
	for i := 1; i < len(samples); i++ {
		if samples[i].Index != samples[i-1].Index+1 {
			t.Fatalf("indices not contiguous at %d: %d then %d", i, samples[i-1].Index, samples[i].Index)
		}
	}
}

func TestMomentumIsSmoothed(t *testing.T) {
	p := testWalkParams()
	ring := NewRing[Sample](8)
	w := NewWalk(p, Constant(1))
	w.Seed(ring)

	// with a constant draw the momentum converges to noise*0.5/(1-decay)
	limit := p.Noise * 0.5 / (1 - p.MomentumDecay)
	for i := 0; i < 500; i++ {
		w.Step(ring, 0)
	}
	if math.Abs(w.Momentum()-limit) > 1e-9 {
		t.Errorf("momentum = %v, want %v", w.Momentum(), limit)
	}
}

func TestStepWithoutSeed(t *testing.T) {
	ring := NewRing[Sample](4)
	w := NewWalk(testWalkParams(), Constant(0.5))
	s := w.Step(ring, 0)
	if s.Index != 0 {
		t.Errorf("first unseeded step index = %d, want 0", s.Index)
	}
	if want := 100 * 1.0015; math.Abs(s.Value-want) > 1e-9 {
		t.Errorf("first unseeded step = %v, want %v", s.Value, want)
	}
}
