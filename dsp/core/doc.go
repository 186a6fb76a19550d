// Package core holds the small numeric and slice helpers shared by every
// processing stage: clamping, dB conversion, peak search and buffer reuse.
package core
