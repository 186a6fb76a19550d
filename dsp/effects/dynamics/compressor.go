package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-radiofx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultCompressorThreshold = 0.3
	defaultCompressorRatio     = 4.0
	defaultCompressorAttackMs  = 5.0
	defaultCompressorReleaseMs = 150.0

	minCompressorRatio     = 1.0
	maxCompressorRatio     = 100.0
	minCompressorAttackMs  = 0.1
	maxCompressorAttackMs  = 1000.0
	minCompressorReleaseMs = 1.0
	maxCompressorReleaseMs = 5000.0
)

// CompressorMetrics holds metering information collected since the last reset.
type CompressorMetrics struct {
	InputPeak     float64 // Maximum detector level
	OutputPeak    float64 // Maximum absolute output sample
	GainReduction float64 // Minimum applied gain (linear)
}

// Compressor is a hard-knee downward compressor driven by a peak envelope
// follower. The follower moves towards the detector level with
//
//	coef = exp(-1 / (t·sampleRate))
//
// using the attack time constant while the level rises and the release time
// constant while it falls. Above the threshold T the gain is
//
//	gain_dB = (T_dB - env_dB)·(1 - 1/ratio)
//
// so a steady level L settles at T_dB + (L_dB - T_dB)/ratio.
//
// [Compressor.Process] links all channels: one envelope follows the loudest
// channel and the same gain is applied everywhere, which keeps the stereo
// image stable. A Compressor is stateful and not safe for concurrent use.
type Compressor struct {
	sampleRate float64
	threshold  float64
	ratio      float64
	attackMs   float64
	releaseMs  float64

	attackCoef  float64
	releaseCoef float64
	thresholdDB float64
	slope       float64

	env     float64
	gains   []float64
	metrics CompressorMetrics
}

// NewCompressor creates a compressor with threshold 0.3, ratio 4:1, 5 ms
// attack and 150 ms release.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("compressor sample rate must be > 0 and finite: %f", sampleRate)
	}

	c := &Compressor{
		sampleRate: sampleRate,
		threshold:  defaultCompressorThreshold,
		ratio:      defaultCompressorRatio,
		attackMs:   defaultCompressorAttackMs,
		releaseMs:  defaultCompressorReleaseMs,
	}
	c.updateCoefficients()
	c.Reset()

	return c, nil
}

// SetThreshold sets the linear threshold in (0, 1].
func (c *Compressor) SetThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 || math.IsNaN(threshold) {
		return fmt.Errorf("compressor threshold must be in (0, 1]: %f", threshold)
	}

	c.threshold = threshold
	c.updateCoefficients()

	return nil
}

// SetRatio sets the compression ratio in [1, 100].
func (c *Compressor) SetRatio(ratio float64) error {
	if ratio < minCompressorRatio || ratio > maxCompressorRatio || math.IsNaN(ratio) {
		return fmt.Errorf("compressor ratio must be in [%g, %g]: %f",
			minCompressorRatio, maxCompressorRatio, ratio)
	}

	c.ratio = ratio
	c.updateCoefficients()

	return nil
}

// SetAttack sets the attack time constant in milliseconds, [0.1, 1000].
func (c *Compressor) SetAttack(ms float64) error {
	if ms < minCompressorAttackMs || ms > maxCompressorAttackMs || math.IsNaN(ms) {
		return fmt.Errorf("compressor attack must be in [%g, %g] ms: %f",
			minCompressorAttackMs, maxCompressorAttackMs, ms)
	}

	c.attackMs = ms
	c.updateCoefficients()

	return nil
}

// SetRelease sets the release time constant in milliseconds, [1, 5000].
func (c *Compressor) SetRelease(ms float64) error {
	if ms < minCompressorReleaseMs || ms > maxCompressorReleaseMs || math.IsNaN(ms) {
		return fmt.Errorf("compressor release must be in [%g, %g] ms: %f",
			minCompressorReleaseMs, maxCompressorReleaseMs, ms)
	}

	c.releaseMs = ms
	c.updateCoefficients()

	return nil
}

// Threshold returns the linear threshold.
func (c *Compressor) Threshold() float64 { return c.threshold }

// Ratio returns the compression ratio.
func (c *Compressor) Ratio() float64 { return c.ratio }

// Attack returns the attack time in milliseconds.
func (c *Compressor) Attack() float64 { return c.attackMs }

// Release returns the release time in milliseconds.
func (c *Compressor) Release() float64 { return c.releaseMs }

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Envelope returns the current detector envelope.
func (c *Compressor) Envelope() float64 { return c.env }

// Reset clears the envelope and the metrics.
func (c *Compressor) Reset() {
	c.env = 0
	c.ResetMetrics()
}

// Metrics returns the metering collected since the last reset.
func (c *Compressor) Metrics() CompressorMetrics { return c.metrics }

// ResetMetrics clears the metering only.
func (c *Compressor) ResetMetrics() {
	c.metrics = CompressorMetrics{GainReduction: 1}
}

// Gain returns the static linear gain for an envelope level.
func (c *Compressor) Gain(env float64) float64 {
	if env <= c.threshold {
		return 1
	}

	return core.DBToLinear((c.thresholdDB - core.LinearToDB(env)) * c.slope)
}

// ProcessSample compresses one mono sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	g := c.detect(math.Abs(x))
	y := x * g
	c.metrics.OutputPeak = math.Max(c.metrics.OutputPeak, math.Abs(y))

	return y
}

// ProcessInPlace compresses a mono buffer in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	c.Process([][]float64{buf})
}

// Process compresses equal-length channels in place with a linked detector.
func (c *Compressor) Process(channels [][]float64) {
	if len(channels) == 0 {
		return
	}

	n := len(channels[0])
	c.gains = core.EnsureLen(c.gains, n)
	for i := 0; i < n; i++ {
		level := 0.0
		for _, ch := range channels {
			level = math.Max(level, math.Abs(ch[i]))
		}
		c.gains[i] = c.detect(level)
	}

	for _, ch := range channels {
		vecmath.MulBlockInPlace(ch, c.gains[:n])
		c.metrics.OutputPeak = math.Max(c.metrics.OutputPeak, core.Peak(ch))
	}
}

func (c *Compressor) detect(level float64) float64 {
	if level > c.env {
		c.env = c.attackCoef*c.env + (1-c.attackCoef)*level
	} else {
		c.env = core.FlushDenormals(c.releaseCoef*c.env + (1-c.releaseCoef)*level)
	}

	g := c.Gain(c.env)
	c.metrics.InputPeak = math.Max(c.metrics.InputPeak, level)
	c.metrics.GainReduction = math.Min(c.metrics.GainReduction, g)

	return g
}

func (c *Compressor) updateCoefficients() {
	c.attackCoef = timeConstantCoef(c.attackMs, c.sampleRate)
	c.releaseCoef = timeConstantCoef(c.releaseMs, c.sampleRate)
	c.thresholdDB = core.LinearToDB(c.threshold)
	c.slope = 1 - 1/c.ratio
}

func timeConstantCoef(ms, sampleRate float64) float64 {
	return math.Exp(-1 / (ms / 1000 * sampleRate))
}
