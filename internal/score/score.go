// Package score holds the numeric helpers shared by the scoring components.
package score

import "math"

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Ratio returns n/d, or 0 when d is zero.
func Ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Clamp100 bounds v to [0,100].
func Clamp100(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Percent converts a [0,1] ratio into a percentage in [0,100] rounded to two
// decimals.
func Percent(ratio float64) float64 {
	return Round2(Clamp100(ratio * 100))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
