// Package dist holds the distribution helpers used by the genotyping and
// copy-number callers: upper-tail normal and chi-square probabilities, the
// Student's t density and the copy-number density scorer built on it.
package dist

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDegreesOfFreedom is returned when a density or combined test has fewer
// degrees of freedom than it needs.
var ErrDegreesOfFreedom = errors.New("dist: too few degrees of freedom")

// NormalUpperTail is P(Z > x) for a standard normal Z.
func NormalUpperTail(x float64) float64 {
	return distuv.UnitNormal.Survival(x)
}

// ChiSquareUpperTail is P(X > x) for X chi-square with df degrees of freedom.
// It is 1 for x <= 0.
func ChiSquareUpperTail(df int, x float64) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: float64(df)}.Survival(x)
}

// TDensity is the density of Student's t distribution with df degrees of
// freedom at x.
func TDensity(x, df float64) float64 {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Prob(x)
}

// MinCopyNumberDegreesOfFreedom is the smallest df CopyNumberDensity accepts.
const MinCopyNumberDegreesOfFreedom = 3

// CopyNumberDensity scores a copy-number estimate x against a cluster with
// the given mean and standard deviation. The cluster is modeled as a t
// distribution with max(3, df-1) degrees of freedom, rescaled so that its
// variance is sd*sd.
func CopyNumberDensity(x, mean, sd, df float64) (float64, error) {
	if df < MinCopyNumberDegreesOfFreedom {
		return 0, fmt.Errorf("df %v below %d: %w", df, MinCopyNumberDegreesOfFreedom, ErrDegreesOfFreedom)
	}

	df = math.Max(MinCopyNumberDegreesOfFreedom, df-1)
	scale := math.Sqrt(df/(df-2)) / sd

	return scale * TDensity(scale*(x-mean), df), nil
}

// FisherCombined combines independent p-values with Fisher's method:
// -2 sum(log p) is chi-square with 2k degrees of freedom under the null,
// reduced here by dofAdjustment.
func FisherCombined(pvals []float64, dofAdjustment int) (float64, error) {
	df := 2*len(pvals) - dofAdjustment
	if df < 1 {
		return 0, fmt.Errorf("%d p-values with adjustment %d: %w", len(pvals), dofAdjustment, ErrDegreesOfFreedom)
	}

	logProduct := 0.0
	for _, p := range pvals {
		logProduct += math.Log(p)
	}

	return ChiSquareUpperTail(df, -2*logProduct), nil
}
