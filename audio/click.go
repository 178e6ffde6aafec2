package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ClickGenerator produces a short exponentially decaying sine ping
type ClickGenerator struct {
	sr        beep.SampleRate
	freq      float64
	amplitude float64
	decay     float64 // seconds to fall to 1/e
	pos       int
}

// NewClickGenerator creates a click generator at freq Hz with peak amplitude in [0, 1]
func NewClickGenerator(sr beep.SampleRate, freq, amplitude float64) *ClickGenerator {
	return &ClickGenerator{
		sr:        sr,
		freq:      freq,
		amplitude: amplitude,
		decay:     0.012,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := g.amplitude * math.Exp(-t/g.decay) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// Click returns a bounded click stream
func Click(sr beep.SampleRate, freq, amplitude float64, length time.Duration) beep.Streamer {
	return beep.Take(sr.N(length), NewClickGenerator(sr, freq, amplitude))
}
