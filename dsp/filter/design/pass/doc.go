// Package pass designs lowpass, highpass and bandpass IIR filters as
// cascades of biquad sections: RBJ cookbook second-order sections and
// Butterworth cascades of arbitrary order built from them.
package pass
