package core

import "math"

// ClampBlock hard-limits every sample in buf to [-limit, limit] in place and
// returns the number of samples that were changed. NaN samples become 0.
func ClampBlock(buf []float64, limit float64) int {
	limit = math.Abs(limit)
	changed := 0

	for i, v := range buf {
		switch {
		case math.IsNaN(v):
			buf[i] = 0
		case v > limit:
			buf[i] = limit
		case v < -limit:
			buf[i] = -limit
		default:
			continue
		}

		changed++
	}

	return changed
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Envelope followers decay towards zero for a long time; flushing keeps the
// hot loop off the slow path.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
