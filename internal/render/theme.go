package render

import (
	"image/color"
	"math"
)

var (
	backgroundTop    = color.NRGBA{R: 10, G: 10, B: 22, A: 230}
	backgroundBottom = color.NRGBA{R: 10, G: 10, B: 10, A: 0}

	areaGrid     = color.NRGBA{R: 0, G: 212, B: 255, A: 15}
	candleGrid   = color.NRGBA{R: 255, G: 255, B: 255, A: 13}
	areaLine     = color.NRGBA{R: 0, G: 255, B: 136, A: 217}
	areaFillTop  = color.NRGBA{R: 0, G: 212, B: 255, A: 89}
	areaFillBase = color.NRGBA{R: 0, G: 212, B: 255, A: 0}
	maLine       = color.NRGBA{R: 139, G: 92, B: 246, A: 230}

	bullStroke = color.NRGBA{R: 0, G: 255, B: 136, A: 255}
	bullFill   = color.NRGBA{R: 0, G: 255, B: 136, A: 102}
	bearStroke = color.NRGBA{R: 255, G: 80, B: 120, A: 255}
	bearFill   = color.NRGBA{R: 255, G: 80, B: 120, A: 102}
)

// withAlpha scales the alpha of c by f (0-1).
func withAlpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp01(f))
	return c
}

// glowPolyline strokes pts with two translucent halos under the main line.
func glowPolyline(c Canvas, pts []Point, width float64, col color.NRGBA) {
	c.Polyline(pts, width*4, withAlpha(col, 0.12))
	c.Polyline(pts, width*2, withAlpha(col, 0.3))
	c.Polyline(pts, width, col)
}

func glowLine(c Canvas, x1, y1, x2, y2, width float64, col color.NRGBA) {
	c.Line(x1, y1, x2, y2, width*3, withAlpha(col, 0.2))
	c.Line(x1, y1, x2, y2, width, col)
}

// drawBackground paints the vertical fade and an evenly spaced grid. Zero
// rows or cols skips that direction.
func drawBackground(c Canvas, rows, cols int, grid color.Color) {
	w, h := c.Size()
	c.FillGradient(0, 0, w, h, backgroundTop, backgroundBottom)
	for i := 0; rows > 0 && i <= rows; i++ {
		y := h / float64(rows) * float64(i)
		c.Line(0, y, w, y, 1, grid)
	}
	for i := 0; cols > 0 && i <= cols; i++ {
		x := w / float64(cols) * float64(i)
		c.Line(x, 0, x, h, 1, grid)
	}
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
