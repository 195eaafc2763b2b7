package series

import "math"

// Bar is one OHLC candle.
type Bar struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Bullish reports whether the bar closed at or above its open.
func (b Bar) Bullish() bool { return b.Close >= b.Open }

// flat returns a bar with every field at price.
func flat(price float64) Bar {
	return Bar{Open: price, High: price, Low: price, Close: price}
}

// CandleParams tunes the OHLC generator.
type CandleParams struct {
	WindowSize     int
	BasePrice      float64
	Volatility     float64
	WickJitter     float64
	TickVolatility float64
	Drift          float64
	DriftRate      float64
}

// CandleEngine keeps a window of finalized bars plus the single forming bar
// that ticks mutate in place.
type CandleEngine struct {
	params  CandleParams
	src     Source
	bars    *Ring[Bar]
	forming Bar
}

// NewCandleEngine returns an engine with an empty history and a flat
// forming bar at the base price.
func NewCandleEngine(p CandleParams, src Source) *CandleEngine {
	return &CandleEngine{
		params:  p,
		src:     src,
		bars:    NewRing[Bar](p.WindowSize),
		forming: flat(p.BasePrice),
	}
}

// Seed replaces the history with WindowSize independent bars walking from
// the base price, then opens the forming bar at the last close.
func (e *CandleEngine) Seed() {
	e.bars.Reset()
	price := e.params.BasePrice
	for i := 0; i < e.params.WindowSize; i++ {
		change := (e.src.Float64() - 0.5) * e.params.Volatility
		open := price
		closeP := price * (1 + change)
		high := math.Max(open, closeP) * (1 + e.src.Float64()*e.params.WickJitter)
		low := math.Min(open, closeP) * (1 - e.src.Float64()*e.params.WickJitter)
		e.bars.Push(Bar{Open: open, High: high, Low: low, Close: closeP})
		price = closeP
	}
	e.forming = flat(e.lastClose())
}

func (e *CandleEngine) lastClose() float64 {
	if b, ok := e.bars.Latest(); ok {
		return b.Close
	}
	return e.params.BasePrice
}

// Tick moves the forming bar's close by a micro step and widens its
// high/low to contain it. t drives the sinusoidal drift.
func (e *CandleEngine) Tick(t float64) Bar {
	rnd := (e.src.Float64() - 0.5) * e.params.TickVolatility
	change := rnd + e.params.Drift*math.Sin(t*e.params.DriftRate)
	next := e.forming.Close * (1 + change)
	e.forming.Close = next
	if next > e.forming.High {
		e.forming.High = next
	}
	if next < e.forming.Low {
		e.forming.Low = next
	}
	return e.forming
}

// Finalize commits the forming bar to history and opens a new flat one at
// its close. It returns the committed bar.
func (e *CandleEngine) Finalize() Bar {
	done := e.forming
	e.bars.Push(done)
	e.forming = flat(done.Close)
	return done
}

// Forming returns a copy of the in-progress bar.
func (e *CandleEngine) Forming() Bar { return e.forming }

// Bars returns the finalized history, oldest first.
func (e *CandleEngine) Bars() []Bar { return e.bars.All() }

func (e *CandleEngine) Len() int { return e.bars.Len() }

// Bounds returns the lowest low and highest high over the finalized bars.
// A flat history widens to [C-1, C+1]; an empty one falls back to the
// forming bar.
func (e *CandleEngine) Bounds() (lo, hi float64) {
	bars := e.bars.All()
	if len(bars) == 0 {
		bars = []Bar{e.forming}
	}
	return BarBounds(bars)
}

// BarBounds returns the lowest low and highest high of bars, widened to
// [C-1, C+1] when they coincide. No bars yields [-1, 1].
func BarBounds(bars []Bar) (lo, hi float64) {
	if len(bars) == 0 {
		return -1, 1
	}
	lo, hi = bars[0].Low, bars[0].High
	for _, b := range bars[1:] {
		lo = math.Min(lo, b.Low)
		hi = math.Max(hi, b.High)
	}
	if lo == hi {
		lo--
		hi++
	}
	return lo, hi
}
