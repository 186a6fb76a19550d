package band

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-radiofx/dsp/window"
	"github.com/cwbudde/algo-radiofx/internal/testutil"
)

func TestAnalyzePureToneInBand(t *testing.T) {
	sig := testutil.DeterministicSine(1000, 44100, 0.5, 44100)
	res, err := AnalyzeSignal(sig, Config{
		SampleRate: 44100,
		WindowType: window.TypeHann,
		LowHz:      300,
		HighHz:     3000,
	})
	if err != nil {
		t.Fatalf("AnalyzeSignal() error = %v", err)
	}

	if math.Abs(res.PeakFreq-1000) > 44100.0/4096 {
		t.Fatalf("PeakFreq = %v, want ~1000", res.PeakFreq)
	}
	if res.InBandRatio < 0.999 {
		t.Fatalf("InBandRatio = %v, want ~1", res.InBandRatio)
	}
	if res.RejectionDB < 40 {
		t.Fatalf("RejectionDB = %v, want > 40", res.RejectionDB)
	}
	if res.Frames < 2 {
		t.Fatalf("Frames = %d, want overlap averaging", res.Frames)
	}
}

func TestAnalyzePureToneOutOfBand(t *testing.T) {
	sig := testutil.DeterministicSine(8000, 44100, 0.5, 8192)
	res, err := AnalyzeSignal(sig, Config{SampleRate: 44100, WindowType: window.TypeHann, LowHz: 300, HighHz: 3000})
	if err != nil {
		t.Fatalf("AnalyzeSignal() error = %v", err)
	}
	if res.InBandRatio > 0.001 {
		t.Fatalf("InBandRatio = %v, want ~0", res.InBandRatio)
	}
	if res.RejectionDB > -40 {
		t.Fatalf("RejectionDB = %v, want < -40", res.RejectionDB)
	}
}

func TestAnalyzeWhiteNoiseSplitsByBandwidth(t *testing.T) {
	sig := testutil.DeterministicNoise(5, 0.5, 44100*2)
	res, err := AnalyzeSignal(sig, Config{SampleRate: 44100, WindowType: window.TypeHann, LowHz: 300, HighHz: 3000})
	if err != nil {
		t.Fatalf("AnalyzeSignal() error = %v", err)
	}

	want := 2700.0 / 22050
	if math.Abs(res.InBandRatio-want) > 0.02 {
		t.Fatalf("InBandRatio = %v, want ~%v", res.InBandRatio, want)
	}
}

func TestPowerSpectrumShortInputIsPadded(t *testing.T) {
	a, err := NewAnalyzer(Config{SampleRate: 8000, FFTSize: 256, LowHz: 100, HighHz: 1000})
	if err != nil {
		t.Fatalf("NewAnalyzer() error = %v", err)
	}

	ps, frames, err := a.PowerSpectrum([]float64{1, 0.5, 0.25})
	if err != nil {
		t.Fatalf("PowerSpectrum() error = %v", err)
	}
	if frames != 1 || len(ps) != 129 {
		t.Fatalf("frames=%d bins=%d, want 1 and 129", frames, len(ps))
	}
	testutil.RequireFinite(t, ps)
}

func TestAnalyzerRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"fft not power of two", Config{SampleRate: 8000, FFTSize: 1000, LowHz: 100, HighHz: 1000}},
		{"zero rate", Config{SampleRate: 0, LowHz: 100, HighHz: 1000}},
		{"inverted band", Config{SampleRate: 8000, LowHz: 1000, HighHz: 100}},
		{"above nyquist", Config{SampleRate: 8000, LowHz: 100, HighHz: 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	a, err := NewAnalyzer(Config{SampleRate: 8000, LowHz: 100, HighHz: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Analyze(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("Analyze(nil) error = %v, want ErrEmptyInput", err)
	}
}
