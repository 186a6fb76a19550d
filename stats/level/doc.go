// Package level computes time-domain level statistics (RMS, peak, crest
// factor, zero crossings and full-scale counts) of audio blocks.
package level
