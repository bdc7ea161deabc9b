package trackswipe

import (
	"math"
	"math/rand/v2"
)

// WaveformBars is the number of bars in a synthetic waveform.
const WaveformBars = 100

// Waveform is a synthetic amplitude profile shown behind the progress bar.
// It is decorative only; no audio is analyzed.
type Waveform struct {
	Bars []float64
}

// NewWaveform generates a waveform of WaveformBars bars from rng. A nil rng
// uses the global source.
func NewWaveform(rng *rand.Rand) Waveform {
	bars := make([]float64, WaveformBars)
	for i := range bars {
		r := 0.0
		if rng != nil {
			r = rng.Float64()
		} else {
			r = rand.Float64()
		}
		bars[i] = 0.3 + math.Sin(float64(i)*0.1)*0.4 + r*0.3
	}
	return Waveform{Bars: bars}
}

// WaveformBar is one bar laid out in a rectangle.
type WaveformBar struct {
	Rect   Rect
	Played bool
}

// Layout places the bars inside r. Bars at or before progress (a fraction in
// [0,1]) are marked played.
func (w Waveform) Layout(r Rect, progress float64, dst []WaveformBar) []WaveformBar {
	dst = dst[:0]
	n := len(w.Bars)
	if n == 0 || r.Width <= 0 || r.Height <= 0 {
		return dst
	}
	progress = clamp01(progress)
	barW := r.Width / float64(n)
	for i, v := range w.Bars {
		h := math.Max(v, 0) * r.Height * 0.8
		dst = append(dst, WaveformBar{
			Rect: Rect{
				X:      r.X + float64(i)*barW + 1,
				Y:      r.Y + (r.Height-h)/2,
				Width:  math.Max(barW-2, 1),
				Height: h,
			},
			Played: float64(i)/float64(n) <= progress,
		})
	}
	return dst
}
