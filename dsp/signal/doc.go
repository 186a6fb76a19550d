// Package signal generates deterministic test signals (sines, multitones,
// seeded white noise) and provides peak normalisation helpers.
package signal
