// Package rank converts samples to average ranks and summarizes their ties,
// producing the statistics consumed by the Wilcoxon tests.
package rank

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ZeroEpsilon is the tolerance under which two values are tied, and under
// which a value counts as zero in the signed-rank test.
const ZeroEpsilon = 1e-8

// Value is one observation with its rank. Rank is the average of the 1-based
// positions its tie group occupies after sorting.
type Value struct {
	// Sample is the index of the sample the observation came from when
	// several samples are ranked together.
	Sample int
	Index  int
	Value  float64
	Rank   float64
}

// TieSummary summarizes the tie groups of a ranking.
type TieSummary struct {
	// SumCubesMinusN is the sum over tie groups of size^3 - size. Singleton
	// groups contribute nothing, so it is 0 exactly when there are no ties.
	SumCubesMinusN int
}

// Tied reports whether any two values were tied.
func (t TieSummary) Tied() bool {
	return t.SumCubesMinusN != 0
}

// Sort sorts values ascending and assigns average ranks in place. Values are
// tied when they are within ZeroEpsilon of their predecessor in sorted order.
func Sort(values []Value) TieSummary {
	sort.Slice(values, func(i, j int) bool {
		return values[i].Value < values[j].Value
	})

	var ties TieSummary
	groupStart := 0
	for i := 1; i <= len(values); i++ {
		if i < len(values) && math.Abs(values[i].Value-values[i-1].Value) < ZeroEpsilon {
			continue
		}

		size := i - groupStart
		ties.SumCubesMinusN += size*size*size - size

		// Positions groupStart+1 ... i
		avg := float64(groupStart+1+i) / 2
		for j := groupStart; j < i; j++ {
			values[j].Rank = avg
		}
		groupStart = i
	}

	return ties
}

// Rank ranks a single sample. The result is in ascending value order; each
// Value carries its original index.
func Rank(x []float64) ([]Value, TieSummary) {
	values := make([]Value, len(x))
	for i, v := range x {
		values[i] = Value{Index: i, Value: v}
	}

	ties := Sort(values)
	return values, ties
}

// Ranks returns the rank of each element of x, in the order of x.
func Ranks(x []float64) ([]float64, TieSummary) {
	out, ties := MultiRank(x)
	return out[0], ties
}

// MultiRank ranks several samples together and returns each sample's ranks
// in its original order.
func MultiRank(samples ...[]float64) ([][]float64, TieSummary) {
	total := 0
	for _, s := range samples {
		total += len(s)
	}

	values := make([]Value, 0, total)
	out := make([][]float64, len(samples))
	for i, s := range samples {
		out[i] = make([]float64, len(s))
		for j, v := range s {
			values = append(values, Value{Sample: i, Index: j, Value: v})
		}
	}

	ties := Sort(values)
	for _, v := range values {
		out[v.Sample][v.Index] = v.Rank
	}

	return out, ties
}

// SignedRank is the Wilcoxon signed-rank statistic of a sample.
type SignedRank struct {
	// Statistic is the sum of the ranks of |x| over positive x.
	Statistic float64

	// NonZero is the number of observations with |x| > ZeroEpsilon; it is
	// the effective sample size.
	NonZero int

	// Zeros is the number of observations excluded as zero.
	Zeros int

	Ties TieSummary
}

// SignedRankStatistic drops observations within ZeroEpsilon of zero, ranks
// the absolute values of the rest, and sums the ranks of the positive ones.
func SignedRankStatistic(x []float64) SignedRank {
	abs := make([]float64, 0, len(x))
	positive := make([]bool, 0, len(x))
	for _, v := range x {
		if math.Abs(v) > ZeroEpsilon {
			abs = append(abs, math.Abs(v))
			positive = append(positive, v > 0)
		}
	}

	ranks, ties := Ranks(abs)

	out := SignedRank{
		NonZero: len(abs),
		Zeros:   len(x) - len(abs),
		Ties:    ties,
	}
	for i, r := range ranks {
		if positive[i] {
			out.Statistic += r
		}
	}

	return out
}

// RankSumStatistic ranks x and y together and returns the sum of the ranks
// of x.
func RankSumStatistic(x, y []float64) (float64, TieSummary) {
	ranks, ties := MultiRank(x, y)
	return floats.Sum(ranks[0]), ties
}
