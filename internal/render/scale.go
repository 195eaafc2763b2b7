package render

import "math"

// Bounds is a closed value range.
type Bounds struct {
	Min, Max float64
}

// BoundsOf returns the min and max of values. No values yields [0, 0].
func BoundsOf(values []float64) Bounds {
	if len(values) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		b.Min = math.Min(b.Min, v)
		b.Max = math.Max(b.Max, v)
	}
	return b
}

func (b Bounds) Span() float64 { return b.Max - b.Min }

// Widen pushes both ends out by unit when the range is a single value.
func (b Bounds) Widen(unit float64) Bounds {
	if b.Min == b.Max {
		return Bounds{Min: b.Min - unit, Max: b.Max + unit}
	}
	return b
}

// WithMinSpan stretches Max so the span is at least eps.
func (b Bounds) WithMinSpan(eps float64) Bounds {
	if b.Span() < eps {
		return Bounds{Min: b.Min, Max: b.Min + eps}
	}
	return b
}

// Scale maps values onto canvas rows. Min lands on the bottom edge of the
// usable band (Height-PadBottom) and Max on its top edge.
type Scale struct {
	Bounds
	Height    float64
	PadTop    float64
	PadBottom float64
}

// Usable is the pixel height of the band between the paddings, at least 1.
func (s Scale) Usable() float64 {
	return math.Max(1, s.Height-s.PadTop-s.PadBottom)
}

// Y maps a value to a canvas row.
func (s Scale) Y(v float64) float64 {
	return s.Height - s.PadBottom - ((v-s.Min)/s.Span())*s.Usable()
}

// Value is the inverse of Y.
func (s Scale) Value(y float64) float64 {
	return s.Min + (s.Height-s.PadBottom-y)/s.Usable()*s.Span()
}

// MovingAverage returns the trailing simple moving average of values. The
// result has len(values)-period+1 entries; entry j averages
// values[j : j+period]. Fewer values than period yields nil.
func MovingAverage(values []float64, period int) []float64 {
	if period < 1 || len(values) < period {
		return nil
	}
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}
