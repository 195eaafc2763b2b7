package render

import (
	"image/color"
	"math"

	"github.com/iburimskiy/neon-charts/internal/series"
)

// Particle is one drifting dot of the background field.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// ParticleField is a set of slowly drifting dots that bounce off the canvas
// edges. Dots closer than LinkDist are joined by a line that fades with
// distance.
type ParticleField struct {
	LinkDist  float64
	particles []Particle
}

// NewParticleField scatters n particles over a w x h canvas.
func NewParticleField(n int, w, h, linkDist float64, src series.Source) *ParticleField {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:  src.Float64() * w,
			Y:  src.Float64() * h,
			VX: (src.Float64() - 0.5) * 0.4,
			VY: (src.Float64() - 0.5) * 0.4,
			R:  src.Float64()*2 + 0.5,
		}
	}
	return &ParticleField{LinkDist: linkDist, particles: ps}
}

// Step moves every particle once, reflecting off the w x h bounds.
func (f *ParticleField) Step(w, h float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > w {
			p.VX = -p.VX
			p.X = math.Max(0, math.Min(w, p.X))
		}
		if p.Y < 0 || p.Y > h {
			p.VY = -p.VY
			p.Y = math.Max(0, math.Min(h, p.Y))
		}
	}
}

// Particles returns a copy of the current positions.
func (f *ParticleField) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

func (f *ParticleField) Draw(c Canvas) {
	for i := 0; i < len(f.particles); i++ {
		for j := i + 1; j < len(f.particles); j++ {
			a, b := f.particles[i], f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= f.LinkDist {
				continue
			}
			alpha := 0.15 * (1 - d/f.LinkDist)
			c.Line(a.X, a.Y, b.X, b.Y, 1, color.NRGBA{R: 0, G: 212, B: 255, A: uint8(255 * alpha)})
		}
	}
	for i, p := range f.particles {
		// hue wanders a little around the neon green
		r, g, b := hsvToRgb(150+float64(i%12)*2, 1, 1)
		c.Circle(p.X, p.Y, p.R*4, color.NRGBA{R: r, G: g, B: b, A: 30})
		c.Circle(p.X, p.Y, p.R*2, color.NRGBA{R: r, G: g, B: b, A: 230})
	}
}
