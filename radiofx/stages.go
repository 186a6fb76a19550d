package radiofx

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-radiofx/dsp/audio"
	"github.com/cwbudde/algo-radiofx/dsp/core"
	"github.com/cwbudde/algo-radiofx/dsp/effects"
	"github.com/cwbudde/algo-radiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-radiofx/dsp/filter/biquad"
	"github.com/cwbudde/algo-radiofx/dsp/filter/design/pass"
	"github.com/cwbudde/algo-radiofx/dsp/interp"
	"github.com/cwbudde/algo-radiofx/dsp/signal"
)

// Stage names as reported in [StageReport] and to observers.
const (
	StageFilter     = "filter"
	StageCompressor = "compressor"
	StageDistortion = "distortion"
	StageNoise      = "noise"
	StageDust       = "dust"
	StageResample   = "resample"
	StageRequantize = "requantize"
)

const (
	compressorThreshold = 0.3
	makeupTargetPeak    = 0.95
	makeupMaxGain       = 2.0
	antiAliasFraction   = 0.45
)

// runContext is the state owned by a single Process call.
type runContext struct {
	cfg        ResolvedConfig
	sampleRate int
	length     int
	rng        *rand.Rand
	order      int
	zeroPhase  bool
}

// stageFunc transforms a signal in place or replaces its channels.
type stageFunc func(sig *audio.Signal) error

// stageSpec builds a stage for one run. A nil stageFunc with a nil error
// means the stage is disabled for this configuration.
type stageSpec struct {
	name  string
	build func(rc *runContext) (stageFunc, error)
}

var stagePlans = [numStyles][]stageSpec{
	StyleRadio: {
		{StageFilter, buildFilter},
		{StageDistortion, buildDistortion},
		{StageNoise, buildNoise},
		{StageDust, buildDust},
		{StageResample, buildResample},
	},
	StyleWalkie: {
		{StageFilter, buildFilter},
		{StageCompressor, buildCompressor},
		{StageDistortion, buildDistortion},
		{StageNoise, buildNoiseWithStatic},
		{StageRequantize, buildRequantize},
	},
}

// StageNames returns the stage sequence of style.
func StageNames(style Style) []string {
	if !style.Valid() {
		return nil
	}

	names := make([]string, len(stagePlans[style]))
	for i, s := range stagePlans[style] {
		names[i] = s.name
	}

	return names
}

func buildFilter(rc *runContext) (stageFunc, error) {
	low := rc.cfg.Float(ParamLowCutoff)
	high := rc.cfg.Float(ParamHighCutoff)
	nyquist := float64(rc.sampleRate) / 2

	if low >= high {
		return nil, rangeError(ParamLowCutoff, low, "must be below %s=%g", ParamHighCutoff, high)
	}
	if high >= nyquist {
		return nil, rangeError(ParamHighCutoff, high,
			"must be below the Nyquist frequency %g Hz of a %d Hz signal", nyquist, rc.sampleRate)
	}

	coeffs, err := pass.ButterworthBandpass(low, high, rc.order, float64(rc.sampleRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}
	if err := checkStable(coeffs); err != nil {
		return nil, err
	}

	return func(sig *audio.Signal) error {
		filterChannels(sig, coeffs, rc.zeroPhase)
		return nil
	}, nil
}

func buildDistortion(rc *runContext) (stageFunc, error) {
	w, err := effects.NewWaveshaper(rc.cfg.Float(ParamDistortionAmount))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}

	return func(sig *audio.Signal) error {
		for _, ch := range sig.Channels {
			w.ProcessInPlace(ch)
		}
		return nil
	}, nil
}

func buildNoise(rc *runContext) (stageFunc, error) {
	n, err := effects.NewNoise(rc.cfg.Float(ParamNoiseFactor), rc.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}

	return func(sig *audio.Signal) error {
		for _, ch := range sig.Channels {
			n.ProcessInPlace(ch)
		}
		return nil
	}, nil
}

func buildNoiseWithStatic(rc *runContext) (stageFunc, error) {
	noise, err := buildNoise(rc)
	if err != nil {
		return nil, err
	}

	s, err := effects.NewStaticBursts(float64(rc.sampleRate), rc.cfg.Float(ParamStaticLevel), rc.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}

	return func(sig *audio.Signal) error {
		if err := noise(sig); err != nil {
			return err
		}
		s.Process(sig.Channels)
		return nil
	}, nil
}

func buildDust(rc *runContext) (stageFunc, error) {
	if !rc.cfg.Bool(ParamUseDustEffect) {
		return nil, nil
	}

	d, err := effects.NewDust(float64(rc.sampleRate), rc.cfg.Float(ParamDustLevel), rc.rng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}

	return func(sig *audio.Signal) error {
		d.Process(sig.Channels)
		return nil
	}, nil
}

func buildCompressor(rc *runContext) (stageFunc, error) {
	c, err := dynamics.NewCompressor(float64(rc.sampleRate))
	if err != nil {
		return nil, err
	}

	for _, set := range []struct {
		p  Param
		fn func(float64) error
	}{
		{ParamCompressionRatio, c.SetRatio},
		{ParamAttackMs, c.SetAttack},
		{ParamReleaseMs, c.SetRelease},
	} {
		if err := set.fn(rc.cfg.Float(set.p)); err != nil {
			return nil, rangeError(set.p, rc.cfg.Float(set.p), "%v", err)
		}
	}
	if err := c.SetThreshold(compressorThreshold); err != nil {
		return nil, err
	}

	return func(sig *audio.Signal) error {
		c.Process(sig.Channels)
		_, err := signal.NormalizePeak(sig.Channels, makeupTargetPeak, makeupMaxGain)
		return err
	}, nil
}

func buildResample(rc *runContext) (stageFunc, error) {
	target := rc.cfg.Int(ParamSampleRate)
	if target >= rc.sampleRate {
		return func(*audio.Signal) error { return nil }, nil
	}

	aa := pass.ButterworthLP(antiAliasFraction*float64(target), rc.order, float64(rc.sampleRate))
	if err := checkStable(aa); err != nil {
		return nil, err
	}

	down := max(1, int(math.Round(float64(rc.length)*float64(target)/float64(rc.sampleRate))))

	return func(sig *audio.Signal) error {
		filterChannels(sig, aa, rc.zeroPhase)

		low, err := audio.ResampleLen(sig, target, down)
		if err != nil {
			return err
		}
		back, err := audio.ResampleLenMode(low, sig.SampleRate, sig.Len(), interp.ModeHermite)
		if err != nil {
			return err
		}

		sig.Channels = back.Channels
		return nil
	}, nil
}

func buildRequantize(rc *runContext) (stageFunc, error) {
	r, err := effects.NewRequantizer(rc.cfg.Int(ParamBitDepth))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameterRange, err)
	}

	return func(sig *audio.Signal) error {
		for _, ch := range sig.Channels {
			r.ProcessInPlace(ch)
		}
		return nil
	}, nil
}

func checkStable(coeffs []biquad.Coefficients) error {
	if len(coeffs) == 0 {
		return fmt.Errorf("%w: no filter sections", ErrUnstableFilterConfig)
	}
	for i := range coeffs {
		if !coeffs[i].IsFinite() {
			return fmt.Errorf("%w: section %d has non-finite coefficients", ErrUnstableFilterConfig, i)
		}
		if !coeffs[i].IsStable(0) {
			return fmt.Errorf("%w: section %d pole radius %g", ErrUnstableFilterConfig, i, coeffs[i].MaxPoleRadius())
		}
	}

	return nil
}

// filterChannels runs each channel through a fresh copy of the cascade.
// zeroPhase adds a second pass over the time-reversed output, cancelling the
// phase response and squaring the magnitude response.
func filterChannels(sig *audio.Signal, coeffs []biquad.Coefficients, zeroPhase bool) {
	chain := biquad.NewChain(coeffs)
	for _, ch := range sig.Channels {
		chain.Reset()
		chain.ProcessBlock(ch)
		if !zeroPhase {
			continue
		}

		chain.Reset()
		core.Reverse(ch)
		chain.ProcessBlock(ch)
		core.Reverse(ch)
	}
}
