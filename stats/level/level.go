package level

import (
	"math"

	"github.com/cwbudde/algo-radiofx/dsp/core"
)

// Stats holds level statistics of one or more channels.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakDB        float64
	CrestFactorDB float64 // peak / RMS
	ZeroCrossings int
	// Clipped counts samples at or beyond full scale.
	Clipped int
}

func emptyStats() Stats {
	return Stats{
		RMSdB:         math.Inf(-1),
		PeakDB:        math.Inf(-1),
		CrestFactorDB: math.Inf(-1),
	}
}

// Calculate computes level statistics over all channels as if they were one
// sequence. Zero crossings are counted within each channel.
func Calculate(channels ...[]float64) Stats {
	var acc Accumulator
	for _, ch := range channels {
		acc.Update(ch)
		acc.prevSet = false
	}
	return acc.Result()
}

// Accumulator computes Stats incrementally over consecutive blocks of one
// stream. The zero value is ready to use.
type Accumulator struct {
	n       int
	sum     float64
	sumSq   float64
	peak    float64
	zc      int
	clipped int
	prev    float64
	prevSet bool
}

// Update feeds the next block.
func (a *Accumulator) Update(block []float64) {
	for _, x := range block {
		a.sum += x
		a.sumSq += x * x
		ax := math.Abs(x)
		if ax > a.peak {
			a.peak = ax
		}
		if ax >= 1 {
			a.clipped++
		}
		if a.prevSet && a.prev*x < 0 {
			a.zc++
		}
		a.prev, a.prevSet = x, true
	}
	a.n += len(block)
}

// Result returns the statistics of everything fed so far.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return emptyStats()
	}

	n := float64(a.n)
	rms := math.Sqrt(a.sumSq / n)
	s := Stats{
		Length:        a.n,
		DC:            a.sum / n,
		RMS:           rms,
		RMSdB:         core.LinearToDB(rms),
		Peak:          a.peak,
		PeakDB:        core.LinearToDB(a.peak),
		ZeroCrossings: a.zc,
		Clipped:       a.clipped,
	}
	switch {
	case rms > 0:
		s.CrestFactorDB = core.LinearToDB(a.peak / rms)
	default:
		s.CrestFactorDB = math.Inf(-1)
	}
	return s
}

// Reset clears the accumulator.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
