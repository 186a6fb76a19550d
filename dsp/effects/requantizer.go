package effects

import (
	"fmt"
	"math"
)

const (
	minRequantizerBitDepth = 2
	maxRequantizerBitDepth = 32
)

// Requantizer snaps samples to the grid of a signed integer format:
//
//	q = round(x·L) / L,  L = 2^(bits-1) - 1
//
// The grid is symmetric and contains zero, so silence stays silent. With 16
// or more bits the step is below 2^-15 and the effect is inaudible.
// Requantizer has no state; applying it twice equals applying it once.
type Requantizer struct {
	bitDepth int
	levels   float64
}

// NewRequantizer creates a requantizer for a bit depth in [2, 32].
// A depth of 1 is rejected because it leaves no level besides zero.
func NewRequantizer(bitDepth int) (*Requantizer, error) {
	if bitDepth < minRequantizerBitDepth || bitDepth > maxRequantizerBitDepth {
		return nil, fmt.Errorf("requantizer bit depth must be in [%d, %d]: %d",
			minRequantizerBitDepth, maxRequantizerBitDepth, bitDepth)
	}

	return &Requantizer{
		bitDepth: bitDepth,
		levels:   math.Exp2(float64(bitDepth-1)) - 1,
	}, nil
}

// BitDepth returns the configured bit depth.
func (r *Requantizer) BitDepth() int { return r.bitDepth }

// Levels returns L, the number of positive quantisation levels.
func (r *Requantizer) Levels() float64 { return r.levels }

// Step returns the distance between neighbouring levels, 1/L.
func (r *Requantizer) Step() float64 { return 1 / r.levels }

// ProcessSample quantises one sample.
func (r *Requantizer) ProcessSample(x float64) float64 {
	return math.Round(x*r.levels) / r.levels
}

// ProcessInPlace quantises buf in place.
func (r *Requantizer) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = math.Round(x*r.levels) / r.levels
	}
}
