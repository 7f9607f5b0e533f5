package wilcoxon

import (
	"fmt"

	"github.com/carbocation/genostat/rank"
	"github.com/carbocation/genostat/specfun"
)

// RankSumTest tests whether x and y come from the same distribution, using
// the rank sum of x, and returns only the p-value.
func RankSumTest(x, y []float64, tail TailType, scale specfun.Scale) (float64, error) {
	return std.RankSumTest(x, y, tail, scale)
}

// RankSumTestFull is RankSumTest reporting ties.
func RankSumTestFull(x, y []float64, tail TailType, scale specfun.Scale) (Result, error) {
	return std.RankSumTestFull(x, y, tail, scale)
}

// RankSumTestLegacy returns the linear p-value and the Hodges-Lehmann median
// difference of x and y, counting a tied test in counts.
func RankSumTestLegacy(x, y []float64, tail TailType, counts *TieCounts) (pval, medianDifference float64, err error) {
	return std.RankSumTestLegacy(x, y, tail, counts)
}

// RankSumTest is RankSumTestFull reduced to its p-value.
func (e *Engine) RankSumTest(x, y []float64, tail TailType, scale specfun.Scale) (float64, error) {
	res, err := e.RankSumTestFull(x, y, tail, scale)
	if err != nil {
		return 0, err
	}
	return res.PValue, nil
}

// RankSumTestLegacy returns the linear p-value and the median of pairwise
// differences, counting a tied test in counts.
func (e *Engine) RankSumTestLegacy(x, y []float64, tail TailType, counts *TieCounts) (float64, float64, error) {
	res, err := e.RankSumTestFull(x, y, tail, specfun.Linear)
	if err != nil {
		return 0, 0, err
	}
	counts.Add(res)

	diff, err := MedianDifference(x, y)
	if err != nil {
		return 0, 0, err
	}

	return res.PValue, diff, nil
}

// RankSumTestFull compares x with y by the rank sum of x, using the exact
// distribution when both samples are small and there are no ties.
func (e *Engine) RankSumTestFull(x, y []float64, tail TailType, scale specfun.Scale) (Result, error) {
	if err := tail.valid(); err != nil {
		return Result{}, err
	}
	if len(x) == 0 || len(y) == 0 {
		return Result{}, fmt.Errorf("rank sum test with sample sizes %d and %d: %w", len(x), len(y), ErrInvalidArgument)
	}

	w, ties := rank.RankSumStatistic(x, y)

	res := Result{
		Statistic: w,
		Tail:      tail,
		Scale:     scale,
		N:         len(x),
		Ties:      ties,
		Tied:      ties.Tied(),
	}

	var err error
	if res.Tied || len(x) >= RankSumCutoff || len(y) >= RankSumCutoff {
		res.Method = Approximate
		res.PValue, err = ApproxRankSum(w, len(x), len(y), ties.SumCubesMinusN, tail, scale)
	} else {
		res.Method = Exact
		res.PValue, err = e.exactRankSum(int(w), len(x), len(y), tail, scale)
	}
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

func (e *Engine) exactRankSum(w, n1, n2 int, tail TailType, scale specfun.Scale) (float64, error) {
	switch tail {
	case OneSidedLower:
		return e.PWilcox(w, n1, n2, specfun.LowerTail, scale)
	case OneSidedUpper:
		return e.PWilcox(w-1, n1, n2, specfun.UpperTail, scale)
	}

	var (
		p   float64
		err error
	)
	median := (float64(n1)*float64(n2) + float64(n1)*float64(n1+1)) / 2
	switch fw := float64(w); {
	case fw > median:
		p, err = e.PWilcox(w-1, n1, n2, specfun.UpperTail, scale)
	case fw < median:
		p, err = e.PWilcox(w, n1, n2, specfun.LowerTail, scale)
	default:
		p = scale.Half()
	}
	if err != nil {
		return 0, err
	}

	return twoSided(p, scale), nil
}
