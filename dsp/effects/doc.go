// Package effects provides the sample-level degradation kernels used to
// colour a recording like a vintage broadcast or a two-way radio link.
//
// Subpackages:
//   - github.com/cwbudde/algo-radiofx/dsp/effects/dynamics
//
// Effects in this package:
//   - Waveshaper: normalised tanh saturation.
//   - Requantizer: mid-tread amplitude quantisation to a signed bit depth.
//   - Noise: additive Gaussian hiss.
//   - StaticBursts: swelling static bed plus short crackling bursts.
//   - Dust: sparse vinyl-style clicks shared by all channels.
//
// Kernels that draw random numbers take a caller-owned *rand.Rand so a run
// can be reproduced from its seed. None of the kernels clamp their output.
package effects
