package hwe

import (
	"math"

	"github.com/BenLubar/memoize"
)

var memoizedExactFor = memoize.Memoize(exactFor).(func(int64, int64, int64) float64)

// Configurations within this relative distance of the observed probability
// count as equally extreme.
const exactTolerance = 1e-7

// Exact computes an exact Hardy-Weinberg equilibrium P-value, based on the
// Abecasis paper, itself based on RA Fisher's method: the sum of the
// probabilities of every heterozygote count, at fixed allele counts, that is
// no more likely than the observed one. Exact is safe to call from concurrent
// goroutines. See
// http://courses.washington.edu/b516/lectures_2009/HWE_Lecture.pdf slides
// 21-22.
func Exact(g GenotypeCounts) (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}

	AA, Aa, aa := int64(g.AA), int64(g.AB), int64(g.BB)

	// Enforce AA common, aa rare
	if aa > AA {
		AA, aa = aa, AA
	}

	baseP := memoizedExactFor(AA, Aa, aa)
	bound := baseP * (1 + exactTolerance)
	sumP := baseP

	// More hets: walk toward the heterozygote-excess extreme.
	for nAA, nAa, naa := AA-1, Aa+2, aa-1; naa >= 0; nAA, nAa, naa = nAA-1, nAa+2, naa-1 {
		newest := memoizedExactFor(nAA, nAa, naa)
		if newest > bound {
			continue
		}
		if newest <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += newest
	}

	// Fewer hets: walk toward the homozygote-excess extreme.
	for nAA, nAa, naa := AA+1, Aa-2, aa+1; nAa >= 0; nAA, nAa, naa = nAA+1, nAa-2, naa+1 {
		newest := memoizedExactFor(nAA, nAa, naa)
		if newest > bound {
			continue
		}
		if newest <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += newest
	}

	if sumP > 1 {
		sumP = 1
	}
	return sumP, nil
}

// exactFor yields the probability of observing exactly Aa heterozygotes in a
// sample of AA+Aa+aa individuals with Aa+2*aa minor alleles:
//
//	2^Aa N! A! a! / (AA! Aa! aa! (2N)!)
//
// evaluated in log space.
func exactFor(AA, Aa, aa int64) float64 {
	A := AA*2 + Aa
	a := aa*2 + Aa
	N := AA + Aa + aa

	logP := float64(Aa)*math.Ln2 +
		logFactorial(N) + logFactorial(A) + logFactorial(a) -
		logFactorial(AA) - logFactorial(Aa) - logFactorial(aa) - logFactorial(2*N)

	return math.Exp(logP)
}

func logFactorial(n int64) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}
