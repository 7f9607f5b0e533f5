package hwe

import (
	"github.com/BenLubar/memoize"
	"github.com/tokenme/probab/dst"
)

var memoizedApproximate = memoize.Memoize(approximate).(func(int64, int64, int64) float64)

// Approximate is the chi-square HWE p-value evaluated with the general
// chi-square distribution from probab rather than the genotyping pipeline's
// own incomplete gamma. Monomorphic sites have p-value 1.
func Approximate(g GenotypeCounts) (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	return memoizedApproximate(int64(g.AA), int64(g.AB), int64(g.BB)), nil
}

func approximate(AA, Aa, aa int64) (p float64) {
	// probab panics on some out-of-range inputs; treat those as
	// uninformative.
	p = 1
	defer func() { recover() }()

	g := GenotypeCounts{AA: int(AA), AB: int(Aa), BB: int(aa)}
	p = clamp(1.0 - dst.ChiSquareCDF(1)(g.ChiSquare()))

	return
}

// Fast uses the chi-square approximation. If the approximate p-value is below
// cutoff, the exact p-value is computed and returned instead.
func Fast(g GenotypeCounts, cutoff float64) (float64, error) {
	p, err := Approximate(g)
	if err != nil {
		return 0, err
	}

	if p < cutoff {
		return Exact(g)
	}

	return p, nil
}
