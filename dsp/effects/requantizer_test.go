package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-radiofx/internal/testutil"
)

func TestRequantizerGrid(t *testing.T) {
	r, err := NewRequantizer(4)
	if err != nil {
		t.Fatalf("NewRequantizer() error = %v", err)
	}
	if r.Levels() != 7 {
		t.Fatalf("Levels()=%g, want 7", r.Levels())
	}

	buf := testutil.DeterministicNoise(3, 1, 4096)
	r.ProcessInPlace(buf)
	for i, v := range buf {
		k := v * 7
		if math.Abs(k-math.Round(k)) > 1e-9 {
			t.Fatalf("sample %d = %g is not on the k/7 grid", i, v)
		}
		if math.Abs(v) > 1 {
			t.Fatalf("sample %d = %g out of range", i, v)
		}
	}
}

func TestRequantizerIdempotent(t *testing.T) {
	for _, bits := range []int{2, 4, 8, 16, 24} {
		r, err := NewRequantizer(bits)
		if err != nil {
			t.Fatalf("NewRequantizer(%d) error = %v", bits, err)
		}

		once := testutil.DeterministicSine(997, 44100, 0.8, 1024)
		r.ProcessInPlace(once)
		twice := append([]float64(nil), once...)
		r.ProcessInPlace(twice)

		testutil.RequireSliceNearlyEqual(t, twice, once, 0)
	}
}

func TestRequantizer16BitNearTransparent(t *testing.T) {
	r, err := NewRequantizer(16)
	if err != nil {
		t.Fatalf("NewRequantizer() error = %v", err)
	}

	in := testutil.DeterministicSine(440, 44100, 0.7, 2048)
	out := append([]float64(nil), in...)
	r.ProcessInPlace(out)

	diff, err := testutil.MaxAbsDiff(out, in)
	if err != nil {
		t.Fatal(err)
	}
	if diff > 0.5/32767+1e-15 {
		t.Fatalf("max error %g exceeds half a 16-bit step", diff)
	}
}

func TestRequantizerZeroStaysZero(t *testing.T) {
	r, err := NewRequantizer(2)
	if err != nil {
		t.Fatalf("NewRequantizer() error = %v", err)
	}
	if got := r.ProcessSample(0); got != 0 {
		t.Fatalf("ProcessSample(0)=%g", got)
	}
	if got := r.ProcessSample(0.6); got != 1 {
		t.Fatalf("ProcessSample(0.6)=%g, want 1", got)
	}
}

func TestRequantizerRejectsBitDepth(t *testing.T) {
	for _, bits := range []int{-1, 0, 1, 33} {
		if _, err := NewRequantizer(bits); err == nil {
			t.Fatalf("NewRequantizer(%d) expected error", bits)
		}
	}
}
