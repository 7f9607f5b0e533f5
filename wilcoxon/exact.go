package wilcoxon

import (
	"fmt"
	"math"

	"github.com/carbocation/genostat/nways"
	"github.com/carbocation/genostat/specfun"
)

func checkSize(name string, n int) error {
	if n < 1 {
		return fmt.Errorf("%s=%d must be positive: %w", name, n, ErrInvalidArgument)
	}
	if n >= MaxN {
		return fmt.Errorf("%s=%d must be below %d: %w", name, n, MaxN, ErrInvalidArgument)
	}
	return nil
}

// PSignRank is the distribution function of the signed-rank statistic for n
// observations: P(W <= t) for the lower tail, P(W > t) for the upper tail.
func PSignRank(t, n int, tail specfun.Tail, scale specfun.Scale) (float64, error) {
	return std.PSignRank(t, n, tail, scale)
}

// PWilcox is the distribution function of the rank sum of the first of two
// samples of sizes n1 and n2: P(W <= t) for the lower tail, P(W > t) for the
// upper tail. Sizes whose count table exceeds nways.MaxRankSumCells return
// nways.ErrTableTooLarge.
func PWilcox(t, n1, n2 int, tail specfun.Tail, scale specfun.Scale) (float64, error) {
	return std.PWilcox(t, n1, n2, tail, scale)
}

func bound(lowerValue float64, tail specfun.Tail, scale specfun.Scale) float64 {
	if tail == specfun.UpperTail {
		lowerValue = 1 - lowerValue
	}
	return scale.Apply(lowerValue)
}

// PSignRank sums the count table over whichever side of the distribution is
// shorter, then flips to the requested tail.
func (e *Engine) PSignRank(t, n int, tail specfun.Tail, scale specfun.Scale) (float64, error) {
	if err := checkSize("n", n); err != nil {
		return 0, err
	}

	max := nways.SignRankMax(n)
	if t < 0 {
		return bound(0, tail, scale), nil
	}
	if t >= max {
		return bound(1, tail, scale), nil
	}

	divisor := math.Exp(float64(n) * logTwo) // 2^n

	pval := 0.0
	if t <= max/2 {
		for i := 0; i <= t; i++ {
			w, err := e.cache.SignRank(n, i)
			if err != nil {
				return 0, err
			}
			pval += w / divisor
		}
		if tail == specfun.UpperTail {
			pval = 1 - pval
		}
	} else {
		for i := t + 1; i <= max; i++ {
			w, err := e.cache.SignRank(n, i)
			if err != nil {
				return 0, err
			}
			pval += w / divisor
		}
		if tail == specfun.LowerTail {
			pval = 1 - pval
		}
	}

	return scale.Apply(pval), nil
}

// PWilcox sums the count table normalized by C(n1+n2, n1).
func (e *Engine) PWilcox(t, n1, n2 int, tail specfun.Tail, scale specfun.Scale) (float64, error) {
	if err := checkSize("n1", n1); err != nil {
		return 0, err
	}
	if err := checkSize("n2", n2); err != nil {
		return 0, err
	}

	max := nways.RankSumMax(n1, n2)
	if t <= 0 {
		return bound(0, tail, scale), nil
	}
	if t >= max {
		return bound(1, tail, scale), nil
	}

	divisor := choose(n1+n2, n1)

	pval := 0.0
	if t <= max/2 {
		for i := 1; i <= t; i++ {
			w, err := e.cache.RankSum(n1, n2, i)
			if err != nil {
				return 0, err
			}
			pval += w / divisor
		}
		if tail == specfun.UpperTail {
			pval = 1 - pval
		}
	} else {
		for i := t + 1; i <= max; i++ {
			w, err := e.cache.RankSum(n1, n2, i)
			if err != nil {
				return 0, err
			}
			pval += w / divisor
		}
		if tail == specfun.LowerTail {
			pval = 1 - pval
		}
	}

	return scale.Apply(pval), nil
}

// choose is C(n, k) as a running product of ratios. k must be in [1, n-1].
func choose(n, k int) float64 {
	if k > n/2 {
		k = n - k
	}

	ans := float64(n) / float64(k)
	for k--; k > 0; k-- {
		n--
		ans *= float64(n) / float64(k)
	}

	return ans
}
