// Package hwe tests genotype counts for Hardy-Weinberg equilibrium.
//
// ChiSquarePValue is the one degree of freedom chi-square test used for
// genotype QC. It evaluates the chi-square distribution through its own
// rational log-gamma and incomplete gamma, independent of package specfun, so
// that its p-values match the genotyping pipeline's historical output. Exact
// is the Fisher/Abecasis exact test and Fast chooses between the two.
package hwe

import (
	"errors"
	"fmt"
)

// ErrNegativeCount is returned for genotype counts below zero.
var ErrNegativeCount = errors.New("hwe: negative genotype count")

// GenotypeCounts holds the number of samples called homozygous for allele A,
// heterozygous, and homozygous for allele B at one biallelic site.
type GenotypeCounts struct {
	AA int
	AB int
	BB int
}

func (g GenotypeCounts) String() string {
	return fmt.Sprintf("%d/%d/%d", g.AA, g.AB, g.BB)
}

func (g GenotypeCounts) Total() int {
	return g.AA + g.AB + g.BB
}

func (g GenotypeCounts) validate() error {
	if g.AA < 0 || g.AB < 0 || g.BB < 0 {
		return fmt.Errorf("%v: %w", g, ErrNegativeCount)
	}
	return nil
}

// AlleleFrequencies returns the frequencies of alleles A and B. Both are 0
// when there are no samples.
func (g GenotypeCounts) AlleleFrequencies() (p, q float64) {
	total := float64(g.Total())
	if total <= 0 {
		return 0, 0
	}

	// Allele frequencies depend on the number of observed alleles of each
	// type, not the number of samples carrying them.
	p = float64(g.AA)/total + 0.5*(float64(g.AB)/total)
	q = float64(g.BB)/total + 0.5*(float64(g.AB)/total)
	return p, q
}

// Expected returns the genotype counts expected under Hardy-Weinberg
// equilibrium given the observed allele frequencies.
func (g GenotypeCounts) Expected() (eAA, eAB, eBB float64) {
	total := float64(g.Total())
	p, q := g.AlleleFrequencies()

	return total * p * p, 2 * total * p * q, total * q * q
}

// ChiSquare returns the chi-square statistic (1 degree of freedom) between the
// observed and expected genotypes. A site that is not biallelic in this
// population has statistic 0, since every sample is then expected to be
// homozygous for the one observed allele.
func (g GenotypeCounts) ChiSquare() float64 {
	p, q := g.AlleleFrequencies()
	if p <= 0 || q <= 0 {
		return 0
	}

	eAA, eAB, eBB := g.Expected()
	dAA := eAA - float64(g.AA)
	dAB := eAB - float64(g.AB)
	dBB := eBB - float64(g.BB)

	return dAA*dAA/eAA + dAB*dAB/eAB + dBB*dBB/eBB
}

// ChiSquarePValue returns the upper-tail chi-square p-value of g, clamped to
// [0, 1]. Empty and monomorphic sites have p-value 1.
func (g GenotypeCounts) ChiSquarePValue() (float64, error) {
	if err := g.validate(); err != nil {
		return 0, err
	}
	if g.Total() <= 0 {
		return 1, nil
	}
	if p, q := g.AlleleFrequencies(); p <= 0 || q <= 0 {
		return 1, nil
	}

	cdf, err := chiSquareCDF(g.ChiSquare(), 1)
	if err != nil {
		return 1, fmt.Errorf("%v: %w", g, err)
	}

	return clamp(1 - cdf), nil
}

// CalcHWEquilibriumPValue is the chi-square HWE p-value of the given counts.
// Any input it cannot evaluate yields 1, the value that never fails a site.
func CalcHWEquilibriumPValue(nAA, nAB, nBB int) float64 {
	p, err := GenotypeCounts{AA: nAA, AB: nAB, BB: nBB}.ChiSquarePValue()
	if err != nil {
		return 1
	}
	return p
}

func clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
