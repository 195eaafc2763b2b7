// Package render paints chart frames onto a Canvas.
//
// Renderers are stateless apart from their theme: they take the visible
// data, derive a value range and pixel mapping for the current canvas size
// and paint in a fixed order. Canvas implementations live next to their
// hosts: Raster (gg, headless) here and the ebiten screen canvas in the
// game package.
package render

import "image/color"

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Canvas is the drawing surface a frame is painted on. Size is read at the
// start of every frame, so a canvas may change size between frames.
type Canvas interface {
	Size() (w, h float64)
	Clear()
	// FillGradient fills a rectangle with a vertical gradient.
	FillGradient(x, y, w, h float64, top, bottom color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	Polyline(pts []Point, width float64, c color.Color)
	// FillArea fills the region between the polyline and the horizontal
	// line at baseY, shaded from top (y=0) to bottom (y=baseY).
	FillArea(pts []Point, baseY float64, top, bottom color.Color)
	Circle(x, y, r float64, c color.Color)
}
