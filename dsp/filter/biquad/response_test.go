package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponse_Passthrough(t *testing.T) {
	c := Coefficients{B0: 1}
	for _, f := range []float64{0, 100, 1000, 20000} {
		if h := c.Response(f, 48000); !almostEqual(cmplx.Abs(h), 1, eps) {
			t.Fatalf("f=%v: |H| = %v, want 1", f, cmplx.Abs(h))
		}
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs, WithGain(0.5))

	for _, f := range []float64{10, 440, 5000} {
		want := 0.5 * cmplx.Abs(coeffs[0].Response(f, 48000)) * cmplx.Abs(coeffs[1].Response(f, 48000))
		got := cmplx.Abs(chain.Response(f, 48000))
		if !almostEqual(got, want, 1e-12) {
			t.Fatalf("f=%v: got %v want %v", f, got, want)
		}
		if db := chain.MagnitudeDB(f, 48000); !almostEqual(db, 20*math.Log10(want), 1e-9) {
			t.Fatalf("f=%v: MagnitudeDB %v", f, db)
		}
	}
}

func TestChain_ImpulseResponseKeepsState(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(0.4)
	before := c.State()

	ir := c.ImpulseResponse(16)
	if len(ir) != 16 {
		t.Fatalf("len = %d, want 16", len(ir))
	}
	if ir[0] != 0.25*0.1 {
		t.Fatalf("ir[0] = %v, want %v", ir[0], 0.25*0.1)
	}

	after := c.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("state changed by ImpulseResponse")
		}
	}

	if c.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}
