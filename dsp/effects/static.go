package effects

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	staticSwellHz        = 0.3
	staticBurstsPerLevel = 100.0
	staticBurstGain      = 4.0
	staticBurstMinMs     = 2.0
	staticBurstMaxMs     = 8.0
)

// StaticBursts models the interference of a handheld radio link:
//
//   - a Gaussian bed whose amplitude swells between 0 and level at 0.3 Hz of
//     wall-clock time, independent of the input length,
//   - short bursts of crackle, on average 100·level per second, each 2-8 ms
//     long with peak amplitude 4·level and a raised-cosine envelope.
//
// Bursts start at the same instants on every channel; the noise inside them
// is drawn per channel.
type StaticBursts struct {
	sampleRate float64
	level      float64
	rng        *rand.Rand
}

// NewStaticBursts creates a static generator for level in [0, 1].
func NewStaticBursts(sampleRate, level float64, rng *rand.Rand) (*StaticBursts, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("static sample rate must be > 0 and finite: %f", sampleRate)
	}
	if err := validLevel("static level", level); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("static: %w", errNilRNG)
	}

	return &StaticBursts{sampleRate: sampleRate, level: level, rng: rng}, nil
}

// Level returns the static level.
func (s *StaticBursts) Level() float64 { return s.level }

// BurstRate returns the expected number of bursts per second.
func (s *StaticBursts) BurstRate() float64 { return staticBurstsPerLevel * s.level }

// Process adds static to equal-length channels in place. A zero level adds
// nothing and consumes no random numbers.
func (s *StaticBursts) Process(channels [][]float64) {
	if s.level == 0 || len(channels) == 0 {
		return
	}

	n := len(channels[0])
	pStart := s.BurstRate() / s.sampleRate
	amp := staticBurstGain * s.level
	w := 2 * math.Pi * staticSwellHz / s.sampleRate

	burstLen, burstPos := 0, 0
	for i := 0; i < n; i++ {
		if burstPos >= burstLen && s.rng.Float64() < pStart {
			burstLen = s.burstSamples()
			burstPos = 0
		}

		bed := s.level * 0.5 * (1 + math.Sin(w*float64(i)))

		env := 0.0
		if burstPos < burstLen {
			x := math.Sin(math.Pi * (float64(burstPos) + 0.5) / float64(burstLen))
			env = amp * x * x
			burstPos++
		}

		for _, ch := range channels {
			ch[i] += bed * s.rng.NormFloat64()
			if env != 0 {
				ch[i] += env * s.rng.NormFloat64()
			}
		}
	}
}

func (s *StaticBursts) burstSamples() int {
	ms := staticBurstMinMs + (staticBurstMaxMs-staticBurstMinMs)*s.rng.Float64()
	return max(1, int(math.Round(ms*s.sampleRate/1000)))
}
