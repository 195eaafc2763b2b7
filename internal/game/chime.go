package game

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/neon-charts/internal/series"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeDuration   = 180 * time.Millisecond
	chimeVolume     = 0.25
	chimeDecay      = 18.0

	bullPitch = 880.0
	bearPitch = 440.0
)

// chime plays a short decaying tone whenever a candle is committed: high
// for a bullish bar, low for a bearish one.
type chime struct {
	sampleRate beep.SampleRate
	initOnce   sync.Once
	initErr    error
}

func newChime() *chime {
	return &chime{sampleRate: chimeSampleRate}
}

// init opens the speaker once. Later calls return the first result.
func (c *chime) init() error {
	c.initOnce.Do(func() {
		c.initErr = speaker.Init(c.sampleRate, c.sampleRate.N(time.Second/20))
	})
	return c.initErr
}

func (c *chime) play(b series.Bar) error {
	if err := c.init(); err != nil {
		return err
	}
	speaker.Play(c.tone(b))
	return nil
}

// pitch maps a bar to a tone frequency. Larger bodies bend the pitch
// further from the base note.
func pitch(b series.Bar) float64 {
	base := bearPitch
	if b.Bullish() {
		base = bullPitch
	}
	if b.Open == 0 {
		return base
	}
	move := math.Min(math.Abs(b.Close-b.Open)/b.Open, 0.01)
	if b.Bullish() {
		return base * (1 + move*10)
	}
	return base * (1 - move*10)
}

// tone returns a finite stereo streamer for b.
func (c *chime) tone(b series.Bar) beep.Streamer {
	freq := pitch(b)
	total := c.sampleRate.N(chimeDuration)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(c.sampleRate)
			v := math.Sin(2*math.Pi*freq*t) * math.Exp(-t*chimeDecay) * chimeVolume
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
