// Package audio defines [Signal], the decoded multichannel buffer every
// processing stage consumes and produces, together with validation,
// clamping and linear-interpolation sample-rate conversion.
//
// Decoding and encoding are left to callers; a Signal is plain float64
// channels plus a sample rate.
package audio
