package effects

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	dustClicksPerLevel = 20.0
	dustTailSamples    = 10
)

var dustTail = func() [dustTailSamples]float64 {
	var t [dustTailSamples]float64
	for k := range t {
		t[k] = math.Exp(-float64(k) / 2)
	}
	return t
}()

// Dust adds sparse vinyl-style clicks. Each sample starts a click with
// probability 20·level/sampleRate (about 4 clicks per second at level 0.2).
// A click has peak level·(0.5 + 0.5·U), a random sign and a 10-sample
// exponential tail. Clicks are written identically to every channel.
type Dust struct {
	sampleRate float64
	level      float64
	rng        *rand.Rand
}

// NewDust creates a dust generator for level in [0, 1].
func NewDust(sampleRate, level float64, rng *rand.Rand) (*Dust, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dust sample rate must be > 0 and finite: %f", sampleRate)
	}
	if err := validLevel("dust level", level); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("dust: %w", errNilRNG)
	}

	return &Dust{sampleRate: sampleRate, level: level, rng: rng}, nil
}

// Level returns the dust level.
func (d *Dust) Level() float64 { return d.level }

// ClickRate returns the expected number of clicks per second.
func (d *Dust) ClickRate() float64 { return dustClicksPerLevel * d.level }

// Process adds clicks to equal-length channels in place and returns the
// number of clicks generated. A zero level consumes no random numbers.
func (d *Dust) Process(channels [][]float64) int {
	if d.level == 0 || len(channels) == 0 {
		return 0
	}

	n := len(channels[0])
	p := d.ClickRate() / d.sampleRate
	clicks := 0
	for i := 0; i < n; i++ {
		if d.rng.Float64() >= p {
			continue
		}
		clicks++

		peak := d.level * (0.5 + 0.5*d.rng.Float64())
		if d.rng.IntN(2) == 0 {
			peak = -peak
		}

		end := min(n, i+dustTailSamples)
		for _, ch := range channels {
			for j := i; j < end; j++ {
				ch[j] += peak * dustTail[j-i]
			}
		}
	}

	return clicks
}
