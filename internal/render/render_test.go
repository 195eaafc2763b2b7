package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/iburimskiy/neon-charts/internal/series"
)

// recorder is a Canvas that keeps every call for inspection.
type recorder struct {
	w, h      float64
	clears    int
	gradients int
	lines     []lineOp
	polylines []polyOp
	areas     [][]Point
	rects     []rectOp
	strokes   []rectOp
	circles   int
}

type lineOp struct {
	x1, y1, x2, y2, width float64
	c                     color.Color
}

type polyOp struct {
	pts   []Point
	width float64
	c     color.Color
}

type rectOp struct {
	x, y, w, h float64
	c          color.Color
}

func newRecorder(w, h float64) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear() { r.clears++ }
func (r *recorder) FillGradient(x, y, w, h float64, top, bottom color.Color) {
	r.gradients++
}
func (r *recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.rects = append(r.rects, rectOp{x, y, w, h, c})
}
func (r *recorder) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.strokes = append(r.strokes, rectOp{x, y, w, h, c})
}
func (r *recorder) Line(x1, y1, x2, y2, width float64, c color.Color) {
	r.lines = append(r.lines, lineOp{x1, y1, x2, y2, width, c})
}
func (r *recorder) Polyline(pts []Point, width float64, c color.Color) {
	r.polylines = append(r.polylines, polyOp{append([]Point(nil), pts...), width, c})
}
func (r *recorder) FillArea(pts []Point, baseY float64, top, bottom color.Color) {
	r.areas = append(r.areas, append([]Point(nil), pts...))
}
func (r *recorder) Circle(x, y, rad float64, c color.Color) { r.circles++ }

func TestScaleExtremes(t *testing.T) {
	s := Scale{Bounds: Bounds{Min: 90, Max: 110}, Height: 600, PadTop: 50, PadBottom: 70}
	if got := s.Y(90); got != 530 {
		t.Errorf("Y(min) = %v, want 530", got)
	}
	if got := s.Y(110); got != 50 {
		t.Errorf("Y(max) = %v, want 50", got)
	}
}

func TestScaleMonotonicAndInvertible(t *testing.T) {
	s := Scale{Bounds: Bounds{Min: -3, Max: 17}, Height: 480, PadTop: 60, PadBottom: 60}
	prev := math.Inf(1)
	for v := -3.0; v <= 17; v += 0.5 {
		y := s.Y(v)
		if y >= prev {
			t.Fatalf("Y not strictly decreasing at %v: %v >= %v", v, y, prev)
		}
		prev = y
		if back := s.Value(y); math.Abs(back-v) > 1e-9 {
			t.Fatalf("Value(Y(%v)) = %v", v, back)
		}
	}
}

func TestScaleUsableFloor(t *testing.T) {
	s := Scale{Bounds: Bounds{Min: 0, Max: 1}, Height: 50, PadTop: 50, PadBottom: 70}
	if s.Usable() != 1 {
		t.Errorf("Usable() = %v, want 1", s.Usable())
	}
}

func TestBounds(t *testing.T) {
	b := BoundsOf([]float64{3, 1, 2})
	if b.Min != 1 || b.Max != 3 {
		t.Errorf("BoundsOf = %+v", b)
	}
	if w := (Bounds{Min: 5, Max: 5}).Widen(1); w.Min != 4 || w.Max != 6 {
		t.Errorf("Widen = %+v, want [4, 6]", w)
	}
	if w := b.Widen(1); w != b {
		t.Errorf("Widen changed a non-degenerate range: %+v", w)
	}
	if m := (Bounds{Min: 5, Max: 5}).WithMinSpan(1e-6); m.Span() < 1e-6 {
		t.Errorf("WithMinSpan span = %v", m.Span())
	}
	if got := BoundsOf(nil); got != (Bounds{}) {
		t.Errorf("BoundsOf(nil) = %+v", got)
	}
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		period int
		want   []float64
	}{
		{"short input", []float64{1, 2}, 3, nil},
		{"period one", []float64{1, 2, 3}, 1, []float64{1, 2, 3}},
		{"trailing window", []float64{1, 2, 3, 4, 5}, 3, []float64{2, 3, 4}},
		{"bad period", []float64{1, 2}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MovingAverage(tt.values, tt.period)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func makeSamples(n int) []series.Sample {
	out := make([]series.Sample, n)
	for i := range out {
		out[i] = series.Sample{Index: i, Value: 100 + math.Sin(float64(i)/7)*5}
	}
	return out
}

func TestAreaRendererPaintOrder(t *testing.T) {
	rec := newRecorder(800, 400)
	r := AreaRenderer{MAPeriod: 12, PadTop: 60, PadBottom: 60}
	r.Draw(rec, makeSamples(140))

	if rec.gradients != 1 {
		t.Errorf("background gradients = %d, want 1", rec.gradients)
	}
	if len(rec.lines) != 7+13 {
		t.Errorf("grid lines = %d, want 20", len(rec.lines))
	}
	if len(rec.areas) != 1 || len(rec.areas[0]) != 140 {
		t.Fatalf("area fill calls = %d", len(rec.areas))
	}
	// 3 glow passes for the series, 3 for the overlay
	if len(rec.polylines) != 6 {
		t.Fatalf("polylines = %d, want 6", len(rec.polylines))
	}
	line := rec.polylines[2]
	if line.c != areaLine || len(line.pts) != 140 {
		t.Errorf("series line = %d pts color %v", len(line.pts), line.c)
	}
	if line.pts[0].X != 0 || line.pts[139].X != 800 {
		t.Errorf("series spans x %v..%v, want 0..800", line.pts[0].X, line.pts[139].X)
	}
	for _, p := range line.pts {
		if p.Y < 60-1e-9 || p.Y > 340+1e-9 {
			t.Fatalf("series point %v outside usable band", p)
		}
	}
	ma := rec.polylines[5]
	if ma.c != maLine || len(ma.pts) != 140-11 {
		t.Errorf("ma line = %d pts color %v, want 129 pts", len(ma.pts), ma.c)
	}
	if ma.pts[0].X != line.pts[11].X {
		t.Errorf("ma starts at x=%v, want %v", ma.pts[0].X, line.pts[11].X)
	}
}

func TestAreaRendererFlatData(t *testing.T) {
	flat := make([]series.Sample, 20)
	for i := range flat {
		flat[i] = series.Sample{Index: i, Value: 42}
	}
	rec := newRecorder(200, 100)
	AreaRenderer{MAPeriod: 12, PadTop: 10, PadBottom: 10}.Draw(rec, flat)
	for _, pl := range rec.polylines {
		for _, p := range pl.pts {
			if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				t.Fatalf("non-finite point %v on flat data", p)
			}
		}
	}
}

func TestAreaRendererEmpty(t *testing.T) {
	rec := newRecorder(200, 100)
	AreaRenderer{MAPeriod: 12}.Draw(rec, nil)
	if len(rec.polylines) != 0 || len(rec.areas) != 0 {
		t.Error("empty series drew a body")
	}
	if rec.gradients != 1 {
		t.Error("empty series skipped the background")
	}
}

func TestCandleRenderer(t *testing.T) {
	bars := []series.Bar{
		{Open: 100, High: 102, Low: 99, Close: 101},
		{Open: 101, High: 101.5, Low: 98, Close: 99},
	}
	forming := series.Bar{Open: 99, High: 100, Low: 99, Close: 100}

	rec := newRecorder(1000, 500)
	CandleRenderer{Slots: 100, PadTop: 50, PadBottom: 70}.Draw(rec, bars, forming)

	if len(rec.rects) != 3 || len(rec.strokes) != 3 {
		t.Fatalf("bodies = %d fill / %d stroke, want 3", len(rec.rects), len(rec.strokes))
	}
	if rec.rects[0].c != bullFill || rec.rects[1].c != bearFill || rec.rects[2].c != bullFill {
		t.Errorf("body colors = %v %v %v", rec.rects[0].c, rec.rects[1].c, rec.rects[2].c)
	}
	bodyW := rec.rects[2].w
	if got := rec.rects[2].x + bodyW/2; got != 1000 {
		t.Errorf("forming bar centered at %v, want right edge 1000", got)
	}
	for _, r := range rec.rects {
		if r.h < minCandleHeight {
			t.Errorf("body height %v below minimum", r.h)
		}
	}

	// wick of the first bar spans its high..low rows
	s := Scale{Bounds: Bounds{Min: 98, Max: 102}, Height: 500, PadTop: 50, PadBottom: 70}
	var wick *lineOp
	for i := range rec.lines {
		if rec.lines[i].c == bullStroke {
			wick = &rec.lines[i]
			break
		}
	}
	if wick == nil {
		t.Fatal("no bull wick drawn")
	}
	if wick.y1 != s.Y(102) || wick.y2 != s.Y(99) {
		t.Errorf("wick rows = %v..%v, want %v..%v", wick.y1, wick.y2, s.Y(102), s.Y(99))
	}
}

func TestCandleRendererFlatHistory(t *testing.T) {
	bars := make([]series.Bar, 10)
	for i := range bars {
		bars[i] = series.Bar{Open: 5, High: 5, Low: 5, Close: 5}
	}
	rec := newRecorder(300, 200)
	CandleRenderer{Slots: 10, PadTop: 10, PadBottom: 10}.Draw(rec, bars, bars[0])
	for _, r := range rec.rects {
		if math.IsNaN(r.y) || math.IsInf(r.y, 0) {
			t.Fatalf("non-finite body on flat data: %+v", r)
		}
	}
}

func TestParticleFieldStaysInBounds(t *testing.T) {
	f := NewParticleField(50, 300, 200, 120, series.NewSource(9))
	for i := 0; i < 2000; i++ {
		f.Step(300, 200)
	}
	for _, p := range f.Particles() {
		if p.X < 0 || p.X > 300 || p.Y < 0 || p.Y > 200 {
			t.Fatalf("particle escaped: %+v", p)
		}
	}
	rec := newRecorder(300, 200)
	f.Draw(rec)
	if rec.circles != 100 {
		t.Errorf("circles = %d, want 2 per particle", rec.circles)
	}
}

func TestRasterEncodesPNG(t *testing.T) {
	r := NewRaster(64, 32)
	r.Clear()
	r.FillRect(0, 0, 64, 32, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Errorf("size = %dx%d, want 64x32", b.Dx(), b.Dy())
	}
	cr, cg, _, ca := img.At(32, 16).RGBA()
	if cr>>8 != 255 || cg != 0 || ca>>8 != 255 {
		t.Errorf("center pixel = %v, want opaque red", img.At(32, 16))
	}
}

func TestRasterResize(t *testing.T) {
	r := NewRaster(10, 10)
	r.Resize(20, 5)
	if w, h := r.Size(); w != 20 || h != 5 {
		t.Errorf("Size() = %vx%v, want 20x5", w, h)
	}
}

func TestRasterDrawsCharts(t *testing.T) {
	r := NewRaster(320, 180)
	r.Clear()
	AreaRenderer{MAPeriod: 12, PadTop: 20, PadBottom: 20}.Draw(r, makeSamples(60))

	bars := []series.Bar{{Open: 1, High: 3, Low: 0.5, Close: 2}, {Open: 2, High: 2.5, Low: 1, Close: 1.5}}
	r.Clear()
	CandleRenderer{Slots: 10, PadTop: 20, PadBottom: 20}.Draw(r, bars, bars[1])
	NewParticleField(10, 320, 180, 120, series.NewSource(1)).Draw(r)
	if r.Image() == nil {
		t.Fatal("Image() = nil")
	}
}
