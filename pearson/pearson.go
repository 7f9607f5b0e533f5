// Package pearson computes Pearson product-moment correlations.
package pearson

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrLengthMismatch is returned when paired samples differ in length.
var ErrLengthMismatch = errors.New("pearson: samples differ in length")

// Log10 is a transform for log-scale intensities.
func Log10(x float64) float64 {
	return math.Log10(x)
}

// Correlation returns the Pearson correlation of x and y after applying
// transform, which may be nil, to every element. It is NaN when there are
// fewer than two pairs or either sample has zero variance.
func Correlation(x, y []float64, transform func(float64) float64) (float64, error) {
	if len(x) != len(y) {
		return math.NaN(), fmt.Errorf("%d and %d values: %w", len(x), len(y), ErrLengthMismatch)
	}
	if len(x) < 2 {
		return math.NaN(), nil
	}

	tx, ty := apply(x, transform), apply(y, transform)

	n := float64(len(tx))
	floats.AddConst(-floats.Sum(tx)/n, tx)
	floats.AddConst(-floats.Sum(ty)/n, ty)

	crossProduct := floats.Dot(tx, ty)
	ssq1 := floats.Dot(tx, tx)
	ssq2 := floats.Dot(ty, ty)
	if ssq1 == 0 || ssq2 == 0 {
		return math.NaN(), nil
	}

	return crossProduct / (math.Sqrt(ssq1) * math.Sqrt(ssq2)), nil
}

// apply returns a transformed copy of x.
func apply(x []float64, transform func(float64) float64) []float64 {
	out := make([]float64, len(x))
	if transform == nil {
		copy(out, x)
		return out
	}

	for i, v := range x {
		out[i] = transform(v)
	}
	return out
}
