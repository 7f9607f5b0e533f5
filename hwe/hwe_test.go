package hwe

import (
	"math"
	"testing"

	"github.com/carbocation/genostat/specfun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectations struct {
	AA int
	Aa int
	aa int

	P float64
}

// Truth values calculated by https://www.cog-genomics.org/software/stats
func TestExact(t *testing.T) {
	for _, v := range []expectations{
		{5000, 0, 5000, 0},
		{500, 0, 500, 1.319669097657e-301},
		{83, 13, 4, 0.010293},
		{50, 57, 14, 0.8422797565708},
		{2, 1, 3, 0.15151515151515},
		{500, 2, 0, 1},
		{500, 0, 4, 1.033376916931e-10},
		{500, 0, 2, 0.000002988038880362},
		{500, 1, 2, 0.0000148807309415},
		{500, 4, 2, 0.0002050449518921},
		{500, 2, 2, 0.00004443531076574},
	} {
		p, err := Exact(GenotypeCounts{AA: v.AA, AB: v.Aa, BB: v.aa})
		require.NoError(t, err)
		if expected := v.P; math.Abs(p-expected) > 1e-6 {
			t.Fatalf("\nError with input: %+v\nP: %.12f\nExpected: %.12f\nDiff: %.12f\n", v, p, expected, p-expected)
		}
	}
}

func TestExactIsSymmetric(t *testing.T) {
	a, err := Exact(GenotypeCounts{AA: 83, AB: 13, BB: 4})
	require.NoError(t, err)
	b, err := Exact(GenotypeCounts{AA: 4, AB: 13, BB: 83})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// Expected values from the genotyping pipeline's own unit test, which calls
// the test over every combination of AA in {0,1}, BB in {1,2} and AB in {0,1}.
func TestCalcHWEquilibriumPValue(t *testing.T) {
	expected := []float64{
		1.0,
		0.63735188823393707,
		1.0000000000000000,
		0.72903448953880390,
		0.15729920705028488,
		0.56370286165077310,
		0.083264516663550503,
		0.35064788970445893,
	}

	index := 0
	for ia := 0; ia < 2; ia++ {
		for ib := 1; ib < 3; ib++ {
			for iab := 0; iab < 2; iab++ {
				hw := CalcHWEquilibriumPValue(ia, iab, ib)
				assert.InDelta(t, expected[index], hw, 1e-6, "AA=%d AB=%d BB=%d", ia, iab, ib)
				index++
			}
		}
	}
}

func TestChiSquarePValue(t *testing.T) {
	for _, c := range []struct {
		name   string
		counts GenotypeCounts
		want   float64
	}{
		{"empty", GenotypeCounts{}, 1},
		{"monomorphic", GenotypeCounts{AA: 100}, 1},
		{"monomorphic minor", GenotypeCounts{BB: 7}, 1},
		{"equilibrium", GenotypeCounts{AA: 25, AB: 50, BB: 25}, 1},
		{"chi square 4", GenotypeCounts{AA: 30, AB: 40, BB: 30}, 0.04550026389635853},
		{"no hets", GenotypeCounts{AA: 50, BB: 50}, 0},
	} {
		t.Run(c.name, func(t *testing.T) {
			p, err := c.counts.ChiSquarePValue()
			require.NoError(t, err)
			assert.InDelta(t, c.want, p, 1e-9)
		})
	}

	assert.Less(t, CalcHWEquilibriumPValue(50, 0, 50), 0.05)
	assert.Equal(t, 1.0, CalcHWEquilibriumPValue(100, 0, 0))
	assert.Equal(t, 1.0, CalcHWEquilibriumPValue(0, 0, 0))
}

func TestNegativeCounts(t *testing.T) {
	g := GenotypeCounts{AA: 3, AB: -1, BB: 2}

	_, err := g.ChiSquarePValue()
	assert.ErrorIs(t, err, ErrNegativeCount)

	_, err = Exact(g)
	assert.ErrorIs(t, err, ErrNegativeCount)

	_, err = Fast(g, 0.05)
	assert.ErrorIs(t, err, ErrNegativeCount)

	assert.Equal(t, 1.0, CalcHWEquilibriumPValue(3, -1, 2))
}

func TestExpected(t *testing.T) {
	g := GenotypeCounts{AA: 30, AB: 40, BB: 30}
	assert.Equal(t, 100, g.Total())

	p, q := g.AlleleFrequencies()
	assert.InDelta(t, 0.5, p, 1e-15)
	assert.InDelta(t, 0.5, q, 1e-15)

	eAA, eAB, eBB := g.Expected()
	assert.InDelta(t, 25, eAA, 1e-12)
	assert.InDelta(t, 50, eAB, 1e-12)
	assert.InDelta(t, 25, eBB, 1e-12)
	assert.InDelta(t, 4, g.ChiSquare(), 1e-12)
}

func TestApproximateAgreesWithChiSquarePValue(t *testing.T) {
	for _, g := range []GenotypeCounts{
		{AA: 83, AB: 13, BB: 4},
		{AA: 50, AB: 57, BB: 14},
		{AA: 30, AB: 40, BB: 30},
		{AA: 1, AB: 1, BB: 2},
		{AA: 400, AB: 180, BB: 25},
	} {
		want, err := g.ChiSquarePValue()
		require.NoError(t, err)

		got, err := Approximate(g)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-5, g.String())
	}

	p, err := Approximate(GenotypeCounts{AA: 100})
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestFast(t *testing.T) {
	g := GenotypeCounts{AA: 83, AB: 13, BB: 4}

	exact, err := Exact(g)
	require.NoError(t, err)
	approx, err := Approximate(g)
	require.NoError(t, err)

	p, err := Fast(g, 0.05)
	require.NoError(t, err)
	assert.Equal(t, exact, p)

	p, err = Fast(g, 1e-10)
	require.NoError(t, err)
	assert.Equal(t, approx, p)
}

func TestLogGamma(t *testing.T) {
	for _, x := range []float64{1e-3, 0.3, 0.5, 0.6, 0.9, 1, 1.2, 2, 3.5, 7, 11.5, 12, 12.5, 50, 1000} {
		want, _ := math.Lgamma(x)
		assert.InDelta(t, want, logGamma(x), 1e-12*(1+math.Abs(want)), "x=%v", x)
	}

	// Below machine epsilon only the pole term remains.
	assert.Equal(t, -math.Log(1e-30), logGamma(1e-30))
}

func TestChiSquareCDF(t *testing.T) {
	// Two degrees of freedom is exponential with rate 1/2.
	for _, x := range []float64{0.5, 2, 5, 20} {
		p, err := chiSquareCDF(x, 2)
		require.NoError(t, err)
		assert.InDelta(t, 1-math.Exp(-x/2), p, 1e-12, "x=%v", x)
	}

	for _, c := range []struct{ x, want float64 }{
		{0.5, 0.5204998778130466},
		{1, 0.682689492137086},
		{3, 0.9167354833364493},
		{10, 0.9984345977419975},
	} {
		p, err := chiSquareCDF(c.x, 1)
		require.NoError(t, err)
		assert.InDelta(t, c.want, p, 1e-12, "x=%v", c.x)
	}

	p, err := chiSquareCDF(-1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestIncompleteGammaReportsNonConvergence(t *testing.T) {
	// With x close to a the series terms decay like exp(-k*k/2a).
	_, err := incompleteGamma(1e6, 1e6)
	assert.ErrorIs(t, err, specfun.ErrConvergence)
}
