package wilcoxon

import (
	"fmt"

	"github.com/carbocation/genostat/rank"
	"github.com/carbocation/genostat/specfun"
)

// SignedRankTest tests whether the distribution of x is centered on zero and
// returns only the p-value.
func SignedRankTest(x []float64, tail TailType, scale specfun.Scale) (float64, error) {
	return std.SignedRankTest(x, tail, scale)
}

// SignedRankTestFull is SignedRankTest reporting ties and excluded zeros.
func SignedRankTestFull(x []float64, tail TailType, scale specfun.Scale) (Result, error) {
	return std.SignedRankTestFull(x, tail, scale)
}

// SignedRankTestLegacy returns the logged lower-tail p-value and the
// pseudo-median of x, adding any tie and zero warnings to counts.
func SignedRankTestLegacy(x []float64, counts *TieCounts) (pval, pseudoMedian float64, err error) {
	return std.SignedRankTestLegacy(x, counts)
}

// SignedRankTest is SignedRankTestFull reduced to its p-value.
func (e *Engine) SignedRankTest(x []float64, tail TailType, scale specfun.Scale) (float64, error) {
	res, err := e.SignedRankTestFull(x, tail, scale)
	if err != nil {
		return 0, err
	}
	return res.PValue, nil
}

// SignedRankTestLegacy returns the logged lower-tail p-value and the
// pseudo-median, adding the test's tie flags to counts.
func (e *Engine) SignedRankTestLegacy(x []float64, counts *TieCounts) (float64, float64, error) {
	res, err := e.SignedRankTestFull(x, OneSidedLower, specfun.Log)
	if err != nil {
		return 0, 0, err
	}
	counts.Add(res)

	return res.PValue, PseudoMedian(x), nil
}

// SignedRankTestFull runs the signed-rank test of x against a zero median,
// using the exact distribution when the sample is small and free of ties and
// zeros.
func (e *Engine) SignedRankTestFull(x []float64, tail TailType, scale specfun.Scale) (Result, error) {
	if err := tail.valid(); err != nil {
		return Result{}, err
	}
	if len(x) == 0 {
		return Result{}, fmt.Errorf("signed rank test of an empty sample: %w", ErrInvalidArgument)
	}

	sr := rank.SignedRankStatistic(x)

	res := Result{
		Statistic: sr.Statistic,
		Tail:      tail,
		Scale:     scale,
		N:         sr.NonZero,
		Ties:      sr.Ties,
	}
	switch {
	case sr.Ties.Tied() && sr.Zeros > 0:
		res.TiedAndZero = true
	case sr.Ties.Tied():
		res.Tied = true
	case sr.Zeros > 0:
		res.Zero = true
	}

	var err error
	if res.Tied || res.Zero || res.TiedAndZero || len(x) >= SignRankCutoff {
		res.Method = Approximate
		res.PValue, err = ApproxSignRank(sr.Statistic, sr.NonZero, sr.Ties.SumCubesMinusN, tail, scale)
	} else {
		res.Method = Exact
		res.PValue, err = e.exactSignRank(int(sr.Statistic), sr.NonZero, tail, scale)
	}
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

// exactSignRank turns the exact distribution into a test p-value. The upper
// tail is P(W >= w), which is PSignRank's P(W > w-1).
func (e *Engine) exactSignRank(w, n int, tail TailType, scale specfun.Scale) (float64, error) {
	switch tail {
	case OneSidedLower:
		return e.PSignRank(w, n, specfun.LowerTail, scale)
	case OneSidedUpper:
		return e.PSignRank(w-1, n, specfun.UpperTail, scale)
	}

	var (
		p   float64
		err error
	)
	median := float64(n) * float64(n+1) / 4
	switch fw := float64(w); {
	case fw > median:
		p, err = e.PSignRank(w-1, n, specfun.UpperTail, scale)
	case fw < median:
		p, err = e.PSignRank(w, n, specfun.LowerTail, scale)
	default:
		p = scale.Half()
	}
	if err != nil {
		return 0, err
	}

	return twoSided(p, scale), nil
}
