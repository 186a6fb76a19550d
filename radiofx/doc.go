// Package radiofx turns a clean recording into one that sounds as if it
// came over a vintage AM broadcast (StyleRadio) or a handheld two-way radio
// (StyleWalkie).
//
// A [Pipeline] resolves caller overrides against the defaults of a style,
// builds the style's fixed stage sequence and runs it over a copy of the
// input:
//
//	radio:  filter → distortion → noise → dust → resample round trip
//	walkie: filter → compressor → distortion → noise + static → requantize
//
// Samples are clamped to [-1, 1] after every stage. A run either returns a
// complete [Result] or an error; parameter problems are reported as
// [*ParamError] values that unwrap to the package's sentinel errors.
//
// Each run draws from its own random stream. Use [WithSeed] for
// reproducible output; otherwise the seed is taken from the runtime's
// global source and reported in [Result.Seed].
package radiofx
