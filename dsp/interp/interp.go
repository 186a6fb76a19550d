package interp

import "math"

// Mode selects the interpolation kernel used by [At].
type Mode int

const (
	// ModeLinear uses 2-point linear interpolation.
	ModeLinear Mode = iota
	// ModeHermite uses 4-point cubic Hermite interpolation.
	ModeHermite
)

// Linear2 interpolates between x0 and x1 at frac in [0,1].
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// At reads samples at the fractional index pos. Positions outside the slice
// hold the first/last sample. The Hermite kernel extends the edge segment
// linearly for its outer neighbour, so ramps are reproduced up to the edges.
func At(samples []float64, pos float64, mode Mode) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	if pos <= 0 {
		return samples[0]
	}
	if pos >= float64(n-1) {
		return samples[n-1]
	}

	i := int(math.Floor(pos))
	frac := pos - float64(i)

	if mode == ModeHermite {
		return Hermite4(frac, sampleAt(samples, i-1), samples[i], samples[i+1], sampleAt(samples, i+2))
	}

	return Linear2(frac, samples[i], samples[i+1])
}

// sampleAt needs len(samples) >= 2.
func sampleAt(samples []float64, i int) float64 {
	n := len(samples)
	if i < 0 {
		return 2*samples[0] - samples[1]
	}
	if i >= n {
		return 2*samples[n-1] - samples[n-2]
	}
	return samples[i]
}
