package audio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-radiofx/dsp/interp"
)

// Resample converts s to targetRate with linear interpolation. The result
// has round(Len * targetRate / SampleRate) samples per channel. s is not
// modified.
func Resample(s *Signal, targetRate int) (*Signal, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if targetRate <= 0 {
		return nil, fmt.Errorf("audio: resample target rate must be > 0: %d", targetRate)
	}

	n := int(math.Round(float64(s.Len()) * float64(targetRate) / float64(s.SampleRate)))

	return ResampleLen(s, targetRate, n)
}

// ResampleLen is like [Resample] but forces the output length to n. It is
// used to return to an original rate without drifting by a sample.
func ResampleLen(s *Signal, targetRate, n int) (*Signal, error) {
	return ResampleLenMode(s, targetRate, n, interp.ModeLinear)
}

// ResampleLenMode is [ResampleLen] with an explicit interpolation kernel.
func ResampleLenMode(s *Signal, targetRate, n int, mode interp.Mode) (*Signal, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if targetRate <= 0 {
		return nil, fmt.Errorf("audio: resample target rate must be > 0: %d", targetRate)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: resampling to %d Hz leaves no samples", ErrEmptySignal, targetRate)
	}

	out := &Signal{SampleRate: targetRate, Channels: make([][]float64, len(s.Channels))}
	step := float64(s.Len()) / float64(n)

	for c, ch := range s.Channels {
		dst := make([]float64, n)
		for i := range dst {
			dst[i] = interp.At(ch, float64(i)*step, mode)
		}
		out.Channels[c] = dst
	}

	return out, nil
}
