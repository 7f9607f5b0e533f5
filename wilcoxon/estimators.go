package wilcoxon

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// PseudoMedian is the one-sample Hodges-Lehmann estimator: the median of the
// Walsh averages (x[i]+x[j])/2 for i <= j. It is 0 for an empty sample.
func PseudoMedian(x []float64) float64 {
	switch len(x) {
	case 0:
		return 0
	case 1:
		return x[0]
	}

	walsh := make(stats.Float64Data, 0, len(x)*(len(x)+1)/2)
	for i := range x {
		for j := i; j < len(x); j++ {
			walsh = append(walsh, (x[i]+x[j])/2)
		}
	}

	// Median only fails on empty input
	med, _ := walsh.Median()
	return med
}

// MedianDifference is the two-sample Hodges-Lehmann estimator: the median of
// x[i]-y[j] over all pairs.
func MedianDifference(x, y []float64) (float64, error) {
	if len(x) == 0 || len(y) == 0 {
		return 0, fmt.Errorf("median difference with sample sizes %d and %d: %w", len(x), len(y), ErrInvalidArgument)
	}

	diffs := make(stats.Float64Data, 0, len(x)*len(y))
	for _, xi := range x {
		for _, yj := range y {
			diffs = append(diffs, xi-yj)
		}
	}

	return stats.Median(diffs)
}
