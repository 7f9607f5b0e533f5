// Package wilcoxon implements the Wilcoxon signed-rank and rank-sum tests.
//
// A test ranks its input, computes the statistic, and then either sums the
// exact null distribution or uses a continuity-corrected normal
// approximation. The normal approximation is used whenever ties are present,
// zeros were dropped (signed-rank only), or a sample reaches the cutoff size.
package wilcoxon

import (
	"errors"
	"fmt"

	"github.com/carbocation/genostat/nways"
	"github.com/carbocation/genostat/rank"
	"github.com/carbocation/genostat/specfun"
)

const (
	// SignRankCutoff is the sample size from which the signed-rank test uses
	// the normal approximation.
	SignRankCutoff = 50

	// RankSumCutoff is the size of either sample from which the rank-sum
	// test uses the normal approximation.
	RankSumCutoff = 50

	// MaxN bounds the sample sizes of the exact distribution functions.
	MaxN = nways.MaxN

	logTwo = 0.69314718055994528623
)

var (
	// ErrInvalidArgument is returned for empty samples and sizes outside
	// [1, MaxN).
	ErrInvalidArgument = errors.New("wilcoxon: invalid argument")

	// ErrInvalidTail is returned for a TailType other than the three
	// declared alternatives.
	ErrInvalidTail = errors.New("wilcoxon: invalid tail type")
)

// TailType is the alternative hypothesis of a test.
type TailType int

const (
	OneSidedLower TailType = iota
	OneSidedUpper
	TwoSided
)

func (t TailType) String() string {
	switch t {
	case OneSidedLower:
		return "lower"
	case OneSidedUpper:
		return "upper"
	case TwoSided:
		return "two-sided"
	}
	return fmt.Sprintf("TailType(%d)", int(t))
}

// ParseTailType accepts the names produced by String.
func ParseTailType(s string) (TailType, error) {
	for _, t := range []TailType{OneSidedLower, OneSidedUpper, TwoSided} {
		if s == t.String() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidTail)
}

func (t TailType) valid() error {
	if t < OneSidedLower || t > TwoSided {
		return fmt.Errorf("%v: %w", t, ErrInvalidTail)
	}
	return nil
}

// Method records how a p-value was obtained.
type Method int

const (
	Exact Method = iota
	Approximate
)

func (m Method) String() string {
	if m == Exact {
		return "exact"
	}
	return "normal approximation"
}

// Result is the outcome of a test.
type Result struct {
	Statistic float64
	PValue    float64
	Tail      TailType
	Scale     specfun.Scale
	Method    Method

	// N is the effective sample size: the number of non-zero observations
	// for the signed-rank test, the first sample's size for the rank-sum
	// test.
	N    int
	Ties rank.TieSummary

	// Tied, Zero and TiedAndZero are mutually exclusive. TiedAndZero is set
	// when the signed-rank input had both ties and zeros.
	Tied        bool
	Zero        bool
	TiedAndZero bool
}

// UsedExactMethod reports whether the p-value came from the exact
// distribution.
func (r Result) UsedExactMethod() bool {
	return r.Method == Exact
}

// TieCounts accumulates tie and zero warnings across many tests.
type TieCounts struct {
	Tied        int
	Zero        int
	TiedAndZero int
}

// Add counts the warnings of one result.
func (c *TieCounts) Add(r Result) {
	if c == nil {
		return
	}
	if r.Tied {
		c.Tied++
	}
	if r.Zero {
		c.Zero++
	}
	if r.TiedAndZero {
		c.TiedAndZero++
	}
}

// Engine runs tests against a particular count cache.
type Engine struct {
	cache *nways.Cache
}

// NewEngine returns an engine backed by cache, or by nways.Default when
// cache is nil.
func NewEngine(cache *nways.Cache) *Engine {
	if cache == nil {
		cache = nways.Default
	}
	return &Engine{cache: cache}
}

var std = NewEngine(nil)

// twoSided doubles a one-sided p-value in the requested scale, capping it at
// probability 1.
func twoSided(p float64, scale specfun.Scale) float64 {
	p = scale.Double(p)
	if one := scale.One(); p > one {
		return one
	}
	return p
}
