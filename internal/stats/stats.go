// Package stats provides the small set of descriptive statistics the summary
// builder needs. It is not a general statistics library.
package stats

import (
	"math"
	"sort"
)

// Median returns the median of values, or false when the input is empty.
// Uses linear interpolation between the two middle ranks for even-length input.
func Median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, 0.5), true
}

// Quantile returns the q-th quantile (0-1) of values, or false when the
// input is empty. q is clamped to [0, 1].
func Quantile(values []float64, q float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantileSorted(sorted, q), true
}

// quantileSorted interpolates the q-th quantile of an already-sorted slice.
func quantileSorted(sorted []float64, q float64) float64 {
	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Round2 rounds to two decimal places, matching the summary artifact's
// percentage and median precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
