// Package band measures how the power of a signal splits between a
// passband and the rest of the spectrum.
//
// It is used to verify band-limiting processors: a bandpass should raise
// [Result.RejectionDB] and [Result.InBandRatio] relative to its input.
package band
