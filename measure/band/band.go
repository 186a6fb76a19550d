package band

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-radiofx/dsp/core"
	"github.com/cwbudde/algo-radiofx/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const defaultFFTSize = 4096

// ErrEmptyInput is returned when there is nothing to analyse.
var ErrEmptyInput = errors.New("band: empty input")

// Config holds band analysis parameters.
type Config struct {
	SampleRate float64
	FFTSize    int // power of two; 4096 when zero
	WindowType window.Type
	LowHz      float64
	HighHz     float64
}

// Result holds the energy split of a signal around a passband.
type Result struct {
	InBandPower    float64
	OutOfBandPower float64
	TotalPower     float64
	// InBandRatio is InBandPower / TotalPower in [0, 1].
	InBandRatio float64
	// RejectionDB is 10·log10(InBandPower / OutOfBandPower).
	RejectionDB float64
	PeakFreq    float64
	Frames      int
}

// Analyzer measures how a signal's power distributes inside and outside a
// frequency band. Spectra are averaged over 50 % overlapping windowed
// frames.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	coeffs []float64
}

// NewAnalyzer creates an analyzer for cfg.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}
	if cfg.FFTSize < 2 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return nil, fmt.Errorf("band: FFT size must be a power of two >= 2: %d", cfg.FFTSize)
	}
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("band: sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}
	if cfg.LowHz < 0 || cfg.HighHz <= cfg.LowHz || cfg.HighHz > cfg.SampleRate/2 {
		return nil, fmt.Errorf("band: band [%g, %g] Hz invalid for sample rate %g", cfg.LowHz, cfg.HighHz, cfg.SampleRate)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("band: %w", err)
	}

	return &Analyzer{
		cfg:    cfg,
		plan:   plan,
		coeffs: window.Generate(cfg.WindowType, cfg.FFTSize, window.WithPeriodic()),
	}, nil
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// BinFrequency returns the centre frequency of bin k.
func (a *Analyzer) BinFrequency(k int) float64 {
	return float64(k) * a.cfg.SampleRate / float64(a.cfg.FFTSize)
}

// PowerSpectrum returns the frame-averaged one-sided power spectrum
// (FFTSize/2+1 bins) and the number of frames averaged. Only whole frames
// are analysed; an input shorter than one frame is zero padded.
func (a *Analyzer) PowerSpectrum(signal []float64) ([]float64, int, error) {
	if len(signal) == 0 {
		return nil, 0, ErrEmptyInput
	}

	n := a.cfg.FFTSize
	bins := n/2 + 1
	hop := n / 2

	in := make([]complex128, n)
	out := make([]complex128, n)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)
	acc := make([]float64, bins)

	last := max(0, len(signal)-n)
	frames := 0
	for start := 0; start <= last; start += hop {
		for i := range in {
			v := 0.0
			if start+i < len(signal) {
				v = signal[start+i]
			}
			in[i] = complex(v*a.coeffs[i], 0)
		}

		if err := a.plan.Forward(out, in); err != nil {
			return nil, 0, fmt.Errorf("band: %w", err)
		}

		for k := 0; k < bins; k++ {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}
		vecmath.Power(pow, re, im)
		for k, p := range pow {
			acc[k] += p
		}
		frames++
	}

	scale := 1 / float64(frames)
	for k := range acc {
		acc[k] *= scale
	}

	return acc, frames, nil
}

// BandPower sums the bins of a power spectrum whose centre lies in [lo, hi].
func (a *Analyzer) BandPower(spectrum []float64, lo, hi float64) float64 {
	sum := 0.0
	for k, p := range spectrum {
		f := a.BinFrequency(k)
		if f >= lo && f <= hi {
			sum += p
		}
	}
	return sum
}

// Analyze splits the power of signal around the configured band. DC is
// excluded from both sums.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	spectrum, frames, err := a.PowerSpectrum(signal)
	if err != nil {
		return Result{}, err
	}

	res := Result{Frames: frames}
	peak := 0.0
	for k := 1; k < len(spectrum); k++ {
		p := spectrum[k]
		f := a.BinFrequency(k)
		if f >= a.cfg.LowHz && f <= a.cfg.HighHz {
			res.InBandPower += p
		} else {
			res.OutOfBandPower += p
		}
		if p > peak {
			peak = p
			res.PeakFreq = f
		}
	}

	res.TotalPower = res.InBandPower + res.OutOfBandPower
	if res.TotalPower > 0 {
		res.InBandRatio = res.InBandPower / res.TotalPower
	}
	switch {
	case res.OutOfBandPower > 0:
		res.RejectionDB = core.LinearPowerToDB(res.InBandPower / res.OutOfBandPower)
	case res.InBandPower > 0:
		res.RejectionDB = math.Inf(1)
	}

	return res, nil
}

// AnalyzeSignal is a one-shot band analysis.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}
	return a.Analyze(signal)
}
