package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// Raster is an in-memory Canvas backed by a gg context. It is used for
// headless frames, HTTP snapshots and PNG export.
type Raster struct {
	dc *gg.Context
}

func NewRaster(w, h int) *Raster {
	return &Raster{dc: gg.NewContext(w, h)}
}

// Resize replaces the surface. The next frame reads the new size.
func (r *Raster) Resize(w, h int) {
	if w == r.dc.Width() && h == r.dc.Height() {
		return
	}
	r.dc = gg.NewContext(w, h)
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Clear() {
	r.dc.SetRGBA(0, 0, 0, 0)
	r.dc.Clear()
}

func (r *Raster) FillGradient(x, y, w, h float64, top, bottom color.Color) {
	g := gg.NewLinearGradient(x, y, x, y+h)
	g.AddColorStop(0, top)
	g.AddColorStop(1, bottom)
	r.dc.SetFillStyle(g)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Stroke()
}

func (r *Raster) Line(x1, y1, x2, y2, width float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

func (r *Raster) Polyline(pts []Point, width float64, c color.Color) {
	if len(pts) < 2 {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.SetLineJoin(gg.LineJoinRound)
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.Stroke()
}

func (r *Raster) FillArea(pts []Point, baseY float64, top, bottom color.Color) {
	if len(pts) < 2 {
		return
	}
	g := gg.NewLinearGradient(0, 0, 0, baseY)
	g.AddColorStop(0, top)
	g.AddColorStop(1, bottom)
	r.dc.SetFillStyle(g)
	r.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X, p.Y)
	}
	r.dc.LineTo(pts[len(pts)-1].X, baseY)
	r.dc.LineTo(pts[0].X, baseY)
	r.dc.ClosePath()
	r.dc.Fill()
}

func (r *Raster) Circle(x, y, rad float64, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawCircle(x, y, rad)
	r.dc.Fill()
}

// Image returns the surface. It is only valid until the next draw call.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// WritePNG writes the surface as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
