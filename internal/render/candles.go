package render

import (
	"math"

	"github.com/iburimskiy/neon-charts/internal/series"
)

const (
	minCandleWidth  = 4
	minCandleHeight = 3
	candleLineWidth = 3
)

// CandleRenderer draws finalized bars across the canvas and the forming bar
// pinned to the right edge. Slots is the number of bar positions across the
// width; it normally equals the history window.
type CandleRenderer struct {
	Slots     int
	PadTop    float64
	PadBottom float64
}

func (r CandleRenderer) Draw(c Canvas, bars []series.Bar, forming series.Bar) {
	drawBackground(c, 5, 0, candleGrid)

	w, h := c.Size()
	ranged := bars
	if len(ranged) == 0 {
		ranged = []series.Bar{forming}
	}
	lo, hi := series.BarBounds(ranged)
	scale := Scale{
		Bounds:    Bounds{Min: lo, Max: hi},
		Height:    h,
		PadTop:    r.PadTop,
		PadBottom: r.PadBottom,
	}

	slots := r.Slots
	if slots < 2 {
		slots = 2
	}
	bodyW := math.Max(minCandleWidth, w/float64(slots)*0.95)
	mapX := columns(slots, w)

	for i, b := range bars {
		drawBar(c, scale, mapX(i), bodyW, b)
	}
	drawBar(c, scale, w, bodyW, forming)
}

func drawBar(c Canvas, s Scale, x, bodyW float64, b series.Bar) {
	stroke, fill := bearStroke, bearFill
	if b.Bullish() {
		stroke, fill = bullStroke, bullFill
	}

	glowLine(c, x, s.Y(b.High), x, s.Y(b.Low), candleLineWidth, stroke)

	yOpen, yClose := s.Y(b.Open), s.Y(b.Close)
	top := math.Min(yOpen, yClose)
	bodyH := math.Max(minCandleHeight, math.Abs(yClose-yOpen))
	c.FillRect(x-bodyW/2, top, bodyW, bodyH, fill)
	c.StrokeRect(x-bodyW/2, top, bodyW, bodyH, candleLineWidth, stroke)
}
