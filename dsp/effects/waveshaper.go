package effects

import (
	"fmt"
	"math"
)

const (
	defaultWaveshaperDrive = 1.0
	minWaveshaperDrive     = 1.0
	maxWaveshaperDrive     = 50.0
)

// Waveshaper applies the memoryless transfer function
//
//	y = tanh(d·x) / tanh(d)
//
// where d is the drive. Full scale maps to full scale, so |y| <= 1 whenever
// |x| <= 1, and the small-signal gain is d/tanh(d).
type Waveshaper struct {
	drive float64
	norm  float64
}

// NewWaveshaper creates a waveshaper with the given drive in [1, 50].
func NewWaveshaper(drive float64) (*Waveshaper, error) {
	w := &Waveshaper{}
	if err := w.SetDrive(drive); err != nil {
		return nil, err
	}

	return w, nil
}

// SetDrive sets the drive in [1, 50].
func (w *Waveshaper) SetDrive(drive float64) error {
	if drive < minWaveshaperDrive || drive > maxWaveshaperDrive ||
		math.IsNaN(drive) || math.IsInf(drive, 0) {
		return fmt.Errorf("waveshaper drive must be in [%g, %g]: %f",
			minWaveshaperDrive, maxWaveshaperDrive, drive)
	}

	w.drive = drive
	w.norm = 1 / math.Tanh(drive)

	return nil
}

// Drive returns the current drive.
func (w *Waveshaper) Drive() float64 { return w.drive }

// SmallSignalGain returns the slope of the transfer curve at the origin.
func (w *Waveshaper) SmallSignalGain() float64 { return w.drive * w.norm }

// ProcessSample shapes one sample.
func (w *Waveshaper) ProcessSample(x float64) float64 {
	return math.Tanh(w.drive*x) * w.norm
}

// ProcessInPlace shapes buf in place.
func (w *Waveshaper) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = math.Tanh(w.drive*x) * w.norm
	}
}
