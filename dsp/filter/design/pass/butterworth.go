package pass

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-radiofx/dsp/filter/biquad"
)

// ErrInvalidBand is returned when a band edge is outside (0, Nyquist) or the
// edges are not strictly increasing.
var ErrInvalidBand = errors.New("pass: invalid band")

// ButterworthLP designs a lowpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, LowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderLP(freq, sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}
	sections := make([]biquad.Coefficients, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, HighpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, butterworthFirstOrderHP(freq, sampleRate))
	}
	return sections
}

// ButterworthBandpass designs a bandpass as a Butterworth highpass at low
// cascaded with a Butterworth lowpass at high, each of the given order.
// Edges must satisfy 0 < low < high < sampleRate/2.
func ButterworthBandpass(low, high float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("pass: bandpass order must be > 0: %d", order)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("pass: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if _, ok := bilinearK(low, sampleRate); !ok {
		return nil, fmt.Errorf("%w: low edge %g Hz outside (0, %g)", ErrInvalidBand, low, sampleRate/2)
	}
	if _, ok := bilinearK(high, sampleRate); !ok {
		return nil, fmt.Errorf("%w: high edge %g Hz outside (0, %g)", ErrInvalidBand, high, sampleRate/2)
	}
	if low >= high {
		return nil, fmt.Errorf("%w: low edge %g Hz must be below high edge %g Hz", ErrInvalidBand, low, high)
	}

	sections := ButterworthHP(low, order, sampleRate)
	sections = append(sections, ButterworthLP(high, order, sampleRate)...)

	return sections, nil
}
