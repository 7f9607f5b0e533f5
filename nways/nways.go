// Package nways counts the ways a Wilcoxon rank statistic can take a given
// value. The counts are tabulated bottom-up and memoized for the life of a
// Cache; tables only grow and are never invalidated.
//
// A Cache is safe for concurrent use. Concurrent first-time requests for the
// same two-sample table share a single build.
package nways

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// MaxN bounds every sample size accepted by a Cache.
const MaxN = 1000

// MaxRankSumCells bounds the working table tabulated for one pair of
// rank-sum sample sizes. Building (n1, n2) takes (min(n1,n2)+1)*(n1*n2+1)
// cells, so sizes near MaxN on both sides are refused rather than allocated.
const MaxRankSumCells = 1 << 25

var (
	// ErrInvalidArgument is returned for sample sizes outside [0, MaxN).
	ErrInvalidArgument = errors.New("nways: invalid argument")

	// ErrTableTooLarge is returned when a rank-sum table would exceed
	// MaxRankSumCells.
	ErrTableTooLarge = errors.New("nways: rank-sum table too large")
)

// Default is the process-wide cache.
var Default = NewCache()

// Cache memoizes signed-rank and rank-sum count tables.
type Cache struct {
	mu sync.RWMutex

	// signRank[n] holds the count for each rank sum t in [0, n(n+1)/4], the
	// lower half of the symmetric distribution over integers 1..n.
	signRank [][]float64

	// rankSum[{n1,n2}] holds the count for each Mann-Whitney U in
	// [0, n1*n2], keyed with n1 <= n2 since the U distribution is the same
	// for (n2, n1). The rank sum is U + n1(n1+1)/2.
	rankSum map[[2]int][]float64

	group singleflight.Group
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		signRank: [][]float64{{1}},
		rankSum:  make(map[[2]int][]float64),
	}
}

// SignRankMax is the largest signed-rank sum for n observations.
func SignRankMax(n int) int {
	return n * (n + 1) / 2
}

// RankSumMax is the largest rank sum of the first sample when n1 and n2
// observations are ranked together.
func RankSumMax(n1, n2 int) int {
	return n1*n2 + n1*(n1+1)/2
}

// RankSumMin is the smallest rank sum of the first sample.
func RankSumMin(n1 int) int {
	return n1 * (n1 + 1) / 2
}

func checkN(name string, n int) error {
	if n < 0 || n >= MaxN {
		return fmt.Errorf("%s=%d outside [0, %d): %w", name, n, MaxN, ErrInvalidArgument)
	}
	return nil
}

// SignRank returns the number of subsets of {1, ..., n} summing to t. It is
// 0 for t outside [0, n(n+1)/2].
func (c *Cache) SignRank(n, t int) (float64, error) {
	if err := checkN("n", n); err != nil {
		return 0, err
	}

	max := SignRankMax(n)
	if t < 0 || t > max {
		return 0, nil
	}
	if t > max/2 {
		t = max - t
	}

	c.mu.RLock()
	if n < len(c.signRank) {
		v := c.signRank[n][t]
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.growSignRank(n)

	return c.signRank[n][t], nil
}

// growSignRank extends the signed-rank tables through n with
//
//	ways(k, t) = ways(k-1, t) + ways(k-1, t-k)
//
// Callers must hold the write lock.
func (c *Cache) growSignRank(n int) {
	for k := len(c.signRank); k <= n; k++ {
		prevMax := SignRankMax(k - 1)
		prev := c.signRank[k-1]
		full := func(t int) float64 {
			if t < 0 || t > prevMax {
				return 0
			}
			if t > prevMax/2 {
				t = prevMax - t
			}
			return prev[t]
		}

		half := SignRankMax(k) / 2
		row := make([]float64, half+1)
		for t := range row {
			row[t] = full(t) + full(t-k)
		}

		c.signRank = append(c.signRank, row)
	}
}

// RankSum returns the number of ways the first of two samples, of sizes n1
// and n2 ranked together without ties, can have rank sum t:
//
//	ways(n1, n2, t) = ways(n1, n2-1, t) + ways(n1-1, n2, t-n1-n2)
//	ways(0, n2, t)  = [t == 0]
//	ways(n1, 0, t)  = [t == n1(n1+1)/2]
func (c *Cache) RankSum(n1, n2, t int) (float64, error) {
	if err := checkN("n1", n1); err != nil {
		return 0, err
	}
	if err := checkN("n2", n2); err != nil {
		return 0, err
	}

	u := t - RankSumMin(n1)
	if u < 0 || u > n1*n2 {
		return 0, nil
	}

	table, err := c.rankSumTable(n1, n2)
	if err != nil {
		return 0, err
	}

	return table[u], nil
}

func (c *Cache) rankSumTable(n1, n2 int) ([]float64, error) {
	if n1 > n2 {
		n1, n2 = n2, n1
	}
	if cells := (n1 + 1) * (n1*n2 + 1); cells > MaxRankSumCells {
		return nil, fmt.Errorf("n1=%d n2=%d needs %d cells: %w", n1, n2, cells, ErrTableTooLarge)
	}

	key := [2]int{n1, n2}

	c.mu.RLock()
	table, exists := c.rankSum[key]
	c.mu.RUnlock()
	if exists {
		return table, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%d,%d", n1, n2), func() (interface{}, error) {
		table := buildRankSum(n1, n2)

		c.mu.Lock()
		c.rankSum[key] = table
		c.mu.Unlock()

		return table, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]float64), nil
}

// buildRankSum tabulates the U distribution counts for (n1, n2), keeping
// n1+1 rows of n1*n2+1 counts. Row a of f
// holds the counts for a first sample of size a; adding one observation to
// the second sample shifts every U of a first sample of size a-1 by the new
// second-sample size:
//
//	f(a, b, u) = f(a, b-1, u) + f(a-1, b, u-b)
func buildRankSum(n1, n2 int) []float64 {
	width := n1*n2 + 1

	f := make([][]float64, n1+1)
	for a := range f {
		f[a] = make([]float64, width)
		f[a][0] = 1
	}

	for b := 1; b <= n2; b++ {
		for a := 1; a <= n1; a++ {
			prev, cur := f[a-1], f[a]
			for u := width - 1; u >= b; u-- {
				cur[u] += prev[u-b]
			}
		}
	}

	return f[n1]
}
