package audio

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-radiofx/dsp/core"
)

var (
	// ErrInvalidSignal indicates a malformed signal: non-positive sample rate,
	// no channels, or channels of different length.
	ErrInvalidSignal = errors.New("audio: invalid signal")
	// ErrEmptySignal indicates a well-formed signal with zero samples per channel.
	ErrEmptySignal = errors.New("audio: empty signal")
)

// Signal is a decoded, in-memory multichannel buffer. Channels hold
// nominally [-1, 1] samples; all channels have the same length.
type Signal struct {
	SampleRate int
	Channels   [][]float64
}

// New wraps channels into a Signal without copying and validates it.
func New(sampleRate int, channels ...[]float64) (*Signal, error) {
	s := &Signal{SampleRate: sampleRate, Channels: channels}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the structural invariants of the signal.
func (s *Signal) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil signal", ErrInvalidSignal)
	}
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidSignal, s.SampleRate)
	}
	if len(s.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidSignal)
	}

	n := len(s.Channels[0])
	for i, ch := range s.Channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrInvalidSignal, i+1, len(ch), n)
		}
	}

	if n == 0 {
		return ErrEmptySignal
	}

	return nil
}

// Len returns the number of samples per channel.
func (s *Signal) Len() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// NumChannels returns the channel count.
func (s *Signal) NumChannels() int { return len(s.Channels) }

// Channel returns the samples of channel i for reading and writing.
func (s *Signal) Channel(i int) []float64 { return s.Channels[i] }

// Duration returns the playback length.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(s.Len()) / float64(s.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy.
func (s *Signal) Clone() *Signal {
	out := &Signal{SampleRate: s.SampleRate, Channels: make([][]float64, len(s.Channels))}
	for i, ch := range s.Channels {
		out.Channels[i] = append([]float64(nil), ch...)
	}
	return out
}

// Clamp hard-limits every sample to [-1, 1] in place and returns the number
// of samples that were out of range.
func (s *Signal) Clamp() int {
	n := 0
	for _, ch := range s.Channels {
		n += core.ClampBlock(ch, 1)
	}
	return n
}

// MaxAbs returns the peak absolute sample value across all channels.
func (s *Signal) MaxAbs() float64 {
	peak := 0.0
	for _, ch := range s.Channels {
		peak = max(peak, core.Peak(ch))
	}
	return peak
}

// Scale multiplies every sample by gain.
func (s *Signal) Scale(gain float64) {
	for _, ch := range s.Channels {
		for i := range ch {
			ch[i] *= gain
		}
	}
}
