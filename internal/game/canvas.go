package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/neon-charts/internal/render"
)

// screenCanvas adapts the ebiten screen to render.Canvas. The screen is
// swapped in at the start of every Draw.
type screenCanvas struct {
	screen *ebiten.Image
	white  *ebiten.Image
}

func (c *screenCanvas) Size() (float64, float64) {
	b := c.screen.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *screenCanvas) Clear() { c.screen.Clear() }

func (c *screenCanvas) FillGradient(x, y, w, h float64, top, bottom color.Color) {
	rows := int(h)
	for row := 0; row < rows; row++ {
		ratio := float64(row) / h
		vector.DrawFilledRect(c.screen, float32(x), float32(y)+float32(row), float32(w), 1, lerpColor(top, bottom, ratio), false)
	}
}

func (c *screenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(c.screen, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (c *screenCanvas) StrokeRect(x, y, w, h, width float64, clr color.Color) {
	vector.StrokeRect(c.screen, float32(x), float32(y), float32(w), float32(h), float32(width), clr, true)
}

func (c *screenCanvas) Line(x1, y1, x2, y2, width float64, clr color.Color) {
	vector.StrokeLine(c.screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, true)
}

func (c *screenCanvas) Polyline(pts []render.Point, width float64, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(c.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
}

func (c *screenCanvas) FillArea(pts []render.Point, baseY float64, top, bottom color.Color) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.LineTo(float32(pts[len(pts)-1].X), float32(baseY))
	path.LineTo(float32(pts[0].X), float32(baseY))
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		shade := lerpColor(top, bottom, float64(vs[i].DstY)/baseY)
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(shade.R) / 0xff
		vs[i].ColorG = float32(shade.G) / 0xff
		vs[i].ColorB = float32(shade.B) / 0xff
		vs[i].ColorA = float32(shade.A) / 0xff
	}
	c.screen.DrawTriangles(vs, is, c.whiteImage(), &ebiten.DrawTrianglesOptions{
		FillRule:  ebiten.NonZero,
		AntiAlias: true,
	})
}

func (c *screenCanvas) Circle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(c.screen, float32(x), float32(y), float32(r), clr, true)
}

// whiteImage is the 1x1 source texture for vertex-colored triangles.
func (c *screenCanvas) whiteImage() *ebiten.Image {
	if c.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		c.white = img.SubImage(img.Bounds().Inset(1)).(*ebiten.Image)
	}
	return c.white
}
