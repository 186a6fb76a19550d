package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-radiofx/dsp/core"
)

// PoleZeroPair stores the two poles and two zeros of one biquad section.
// For first-order sections, the second pole/zero is 0.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the z-plane poles of the section denominator:
//
//	1 + A1*z^-1 + A2*z^-2 = 0
func (c *Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c *Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns both poles and zeros for a single section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{
		Poles: c.Poles(),
		Zeros: c.Zeros(),
	}
}

// IsFinite reports whether every coefficient is a finite number.
func (c *Coefficients) IsFinite() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if !core.IsFinite(v) {
			return false
		}
	}
	return true
}

// MaxPoleRadius returns the largest pole magnitude of the section.
func (c *Coefficients) MaxPoleRadius() float64 {
	p := c.Poles()
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// IsStable reports whether the section has finite coefficients and all
// poles lie inside the unit circle with at least margin to spare.
func (c *Coefficients) IsStable(margin float64) bool {
	if !c.IsFinite() {
		return false
	}
	return c.MaxPoleRadius() < 1-margin
}

// PoleZeroPairs returns one pole/zero pair entry per chain section.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].PoleZeroPair()
	}
	return out
}

// IsStable reports whether every section of the cascade is stable.
func (c *Chain) IsStable(margin float64) bool {
	if !core.IsFinite(c.gain) {
		return false
	}
	for i := range c.sections {
		if !c.sections[i].IsStable(margin) {
			return false
		}
	}
	return true
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)
	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
