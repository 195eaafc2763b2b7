package render

import (
	"github.com/iburimskiy/neon-charts/internal/series"
)

// minAreaSpan keeps the area chart's value range non-zero on flat data.
const minAreaSpan = 1e-6

// AreaRenderer draws the continuous chart: a glowing line over a shaded
// area plus a trailing moving-average overlay.
type AreaRenderer struct {
	MAPeriod  int
	PadTop    float64
	PadBottom float64
}

// Draw paints background, series and overlay for the visible samples,
// which span the full canvas width.
func (r AreaRenderer) Draw(c Canvas, visible []series.Sample) {
	drawBackground(c, 6, 12, areaGrid)
	if len(visible) == 0 {
		return
	}

	w, h := c.Size()
	values := series.Values(visible)
	scale := Scale{
		Bounds:    BoundsOf(values).WithMinSpan(minAreaSpan),
		Height:    h,
		PadTop:    r.PadTop,
		PadBottom: r.PadBottom,
	}
	mapX := columns(len(values), w)

	pts := make([]Point, len(values))
	for i, v := range values {
		pts[i] = Point{X: mapX(i), Y: scale.Y(v)}
	}
	c.FillArea(pts, h, areaFillTop, areaFillBase)
	glowPolyline(c, pts, 2.5, areaLine)

	r.drawMA(c, values, scale, mapX)
}

func (r AreaRenderer) drawMA(c Canvas, values []float64, scale Scale, mapX func(int) float64) {
	ma := MovingAverage(values, r.MAPeriod)
	if len(ma) < 2 {
		return
	}
	offset := r.MAPeriod - 1
	pts := make([]Point, len(ma))
	for j, v := range ma {
		pts[j] = Point{X: mapX(j + offset), Y: scale.Y(v)}
	}
	glowPolyline(c, pts, 1.8, maLine)
}

// columns spreads n indices evenly over [0, w].
func columns(n int, w float64) func(int) float64 {
	if n < 2 {
		return func(int) float64 { return 0 }
	}
	step := w / float64(n-1)
	return func(i int) float64 { return float64(i) * step }
}
