// Package interp provides fractional-index interpolation used by the
// resampler.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite
//   - [At]:       edge-clamped read at a fractional position
package interp
