package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// lerpColor blends a toward b by t (0-1) in non-premultiplied space.
func lerpColor(a, b color.Color, t float64) color.NRGBA {
	t = clamp01(t)
	ca := color.NRGBAModel.Convert(a).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(ca.R, cb.R), G: mix(ca.G, cb.G), B: mix(ca.B, cb.B), A: mix(ca.A, cb.A)}
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

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// framesToDuration converts a frame count at the given TPS to wall time.
func framesToDuration(frames uint64, tps int) time.Duration {
	if tps <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(tps)
}

// keyEdges reports key presses once per press rather than once per frame.
type keyEdges struct {
	prev map[ebiten.Key]bool
}

func newKeyEdges() *keyEdges {
	return &keyEdges{prev: map[ebiten.Key]bool{}}
}

func (k *keyEdges) justPressed(key ebiten.Key, pressed bool) bool {
	jp := pressed && !k.prev[key]
	k.prev[key] = pressed
	return jp
}
