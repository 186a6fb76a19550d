package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-radiofx/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() uint64 { return g.cfg.Seed }

// SetSeed sets the noise seed.
func (g *Generator) SetSeed(seed uint64) { g.cfg.Seed = seed }

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Multitone generates the sum of equal-amplitude sines at freqsHz, scaled so
// the sum never exceeds amplitude.
func (g *Generator) Multitone(freqsHz []float64, amplitude float64, samples int) ([]float64, error) {
	if len(freqsHz) == 0 {
		return nil, errors.New("multitone needs at least one frequency")
	}
	if samples <= 0 {
		return nil, fmt.Errorf("multitone samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	per := amplitude / float64(len(freqsHz))
	for _, f := range freqsHz {
		tone, err := g.Sine(f, per, samples)
		if err != nil {
			return nil, err
		}
		for i, v := range tone {
			out[i] += v
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewPCG(g.cfg.Seed, 0))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// NormalizePeak scales all channels in place by one common factor so the
// loudest sample reaches targetPeak, never by more than maxGain. Silent
// input is left untouched. It returns the applied gain.
func NormalizePeak(channels [][]float64, targetPeak, maxGain float64) (float64, error) {
	if targetPeak <= 0 || math.IsNaN(targetPeak) || math.IsInf(targetPeak, 0) {
		return 0, fmt.Errorf("normalize target peak must be > 0 and finite: %f", targetPeak)
	}
	if maxGain <= 0 || math.IsNaN(maxGain) {
		return 0, fmt.Errorf("normalize max gain must be > 0: %f", maxGain)
	}

	peak := 0.0
	for _, ch := range channels {
		peak = math.Max(peak, core.Peak(ch))
	}
	if peak == 0 {
		return 1, nil
	}

	gain := math.Min(targetPeak/peak, maxGain)
	for _, ch := range channels {
		for i := range ch {
			ch[i] *= gain
		}
	}
	return gain, nil
}
