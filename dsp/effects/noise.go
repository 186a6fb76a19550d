package effects

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var errNilRNG = errors.New("random source must not be nil")

func validLevel(name string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return fmt.Errorf("%s must be in [0, 1]: %f", name, v)
	}

	return nil
}

// Noise adds zero-mean Gaussian noise with a fixed standard deviation.
type Noise struct {
	level float64
	rng   *rand.Rand
}

// NewNoise creates a noise source with standard deviation level in [0, 1]
// drawing from rng.
func NewNoise(level float64, rng *rand.Rand) (*Noise, error) {
	if err := validLevel("noise level", level); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("noise: %w", errNilRNG)
	}

	return &Noise{level: level, rng: rng}, nil
}

// Level returns the standard deviation.
func (n *Noise) Level() float64 { return n.level }

// ProcessInPlace adds one independent draw to every sample of buf. A zero
// level leaves buf untouched and consumes no random numbers.
func (n *Noise) ProcessInPlace(buf []float64) {
	if n.level == 0 {
		return
	}
	for i := range buf {
		buf[i] += n.level * n.rng.NormFloat64()
	}
}
