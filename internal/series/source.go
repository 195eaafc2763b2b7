package series

import "math/rand/v2"

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Equal seeds replay equal series.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Constant always returns the same draw. Constant(0.5) removes all noise
// from the generators, since every draw enters as (r - 0.5).
type Constant float64

func (c Constant) Float64() float64 { return float64(c) }
