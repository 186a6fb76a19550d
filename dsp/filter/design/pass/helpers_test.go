package pass

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-radiofx/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertStable(t *testing.T, coeffs []biquad.Coefficients) {
	t.Helper()
	for i := range coeffs {
		if !coeffs[i].IsStable(0) {
			t.Fatalf("section %d unstable: %+v (radius %v)", i, coeffs[i], coeffs[i].MaxPoleRadius())
		}
	}
}
