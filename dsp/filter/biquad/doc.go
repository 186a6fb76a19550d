// Package biquad runs cascades of second-order IIR sections.
//
// [Section] holds one Direct Form II Transposed stage; [Chain] cascades them
// for the band-limiting filters. Designs come from dsp/filter/design/pass and
// are checked with [Coefficients.IsStable] before they process audio.
package biquad
