package biquad

import (
	"testing"
)

// twoSectionCoeffs returns two biquad sections for a 4th-order-like cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
	if c.Gain() != 1 {
		t.Fatalf("default gain: got %v, want 1", c.Gain())
	}
	if got := c.Coefficients(); len(got) != 2 || got[1] != twoSectionCoeffs()[1] {
		t.Fatalf("Coefficients() = %v", got)
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs, WithGain(0.5))

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8} {
		ref := section2.ProcessSample(section1.ProcessSample(0.5 * x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	in := testInput(77)

	ref := NewChain(twoSectionCoeffs(), WithGain(2))
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(twoSectionCoeffs(), WithGain(2))
	got := append([]float64(nil), in...)
	c.ProcessBlock(got)

	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("sample %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestChain_ResetAndState(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	saved := c.State()
	y1 := c.ProcessSample(0.3)

	c.SetState(saved)
	if y2 := c.ProcessSample(0.3); y1 != y2 {
		t.Fatalf("restore mismatch: %v vs %v", y1, y2)
	}

	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{0, 0} {
			t.Fatalf("section %d state after reset: %v", i, st)
		}
	}
}

func TestChain_Section_Access(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.Section(1).B0 = 9
	if c.Coefficients()[1].B0 != 9 {
		t.Fatal("Section() must return a live pointer")
	}
}
