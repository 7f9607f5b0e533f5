package specfun

import "math"

// convergents holds the last two numerators (or denominators) of a continued
// fraction.
type convergents struct {
	cur, prev float64
}

// step advances the three-term recurrence
//
//	A_j = d*A_{j-1} + n*A_{j-2}
//
// for numerators p and denominators q, then renormalizes both by the new
// denominator so p.cur is the current value of the fraction.
func step(p, q *convergents, n, d float64) float64 {
	p.prev, p.cur = p.cur, p.cur*d+p.prev*n
	q.prev, q.cur = q.cur, q.cur*d+q.prev*n

	norm := q.cur
	p.cur /= norm
	p.prev /= norm
	q.cur /= norm
	q.prev /= norm

	return p.cur
}

// IncompleteBeta returns the regularized incomplete beta function I_x(a, b).
// It is 0 for x <= 0 and 1 for x >= 1. The continued fraction is evaluated on
// (a, b, x) when x(a+b+2) < a+1, and on (b, a, 1-x) otherwise, reflecting the
// result.
func IncompleteBeta(a, b, x float64) (float64, error) {
	if x <= 0 {
		return 0, nil
	}
	if x >= 1 {
		return 1, nil
	}

	if x*(a+b+2) < a+1 {
		return incompleteBetaContinuedFraction(a, b, x)
	}

	v, err := incompleteBetaContinuedFraction(b, a, 1-x)
	return 1 - v, err
}

// incompleteBetaContinuedFraction computes
//
//	I_x(a,b) = x^a (1-x)^b / (a B(a,b)) * 1/(1+ d1/(1+ d2/(1+ ...)))
//
// with d_2m = m(b-m)x/((a+2m-1)(a+2m)) and
// d_2m+1 = -(a+m)(a+b+m)x/((a+2m)(a+2m+1)).
func incompleteBetaContinuedFraction(a, b, x float64) (float64, error) {
	var an, bn convergents
	an.prev, an.cur = 1, 1-((a+b)*x)/(a+1)
	bn.prev, bn.cur = 1, 1

	converged := false
	j := 1
	for j < MaxIterations {
		old := 1 / an.cur
		fj := float64(j)

		even := fj * (b - fj) * x / ((a + 2*fj - 1) * (a + 2*fj))
		step(&an, &bn, even, 1)

		odd := -(a + fj) * (a + b + fj) * x / ((a + 2*fj) * (a + 2*fj + 1))
		step(&an, &bn, odd, 1)

		j++
		if math.Abs(1-an.cur*old) < Epsilon {
			converged = true
			break
		}
	}

	lbeta, err := LogBeta(a, b)
	if err != nil {
		return math.NaN(), err
	}

	ans := math.Exp(a*math.Log(x)+b*math.Log(1-x)-lbeta) / (a * an.cur)
	if !converged {
		return ans, &ConvergenceError{Func: "IncompleteBeta continued fraction", Iterations: j}
	}

	return ans, nil
}

// FTest returns the upper-tail probability of an F statistic with vone and
// vtwo degrees of freedom.
func FTest(f, vone, vtwo float64) (float64, error) {
	x := vtwo / (vtwo + vone*f)
	return IncompleteBeta(vtwo/2, vone/2, x)
}
