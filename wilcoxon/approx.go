package wilcoxon

import (
	"math"

	"github.com/carbocation/genostat/specfun"
)

const (
	// Beyond this size the variance is assembled in log space.
	approxLogSpaceN = 1000

	log24 = 3.1780538303479457518
	log48 = 3.8712010109078911491
	log12 = 2.4849066497880003546
)

// signRankSigma is the null standard deviation of the signed-rank statistic
// for n observations, reduced for ties.
func signRankSigma(n, sumTies int) float64 {
	fn := float64(n)
	if n <= approxLogSpaceN {
		return math.Sqrt(fn*(fn+1)*(2*fn+1)/24 - float64(sumTies)/48)
	}

	logBase := math.Log(fn) + math.Log(fn+1) + math.Log(2*fn+1) - log24
	if sumTies <= 0 {
		return math.Exp(0.5 * logBase)
	}
	logTies := math.Log(float64(sumTies)) - log48
	return math.Exp(0.5 * (logBase + math.Log(1-math.Exp(logTies-logBase))))
}

// rankSumSigma is the null standard deviation of the rank sum of the first of
// two samples of sizes n and m, reduced for ties.
func rankSumSigma(n, m, sumTies int) float64 {
	nm := float64(n) * float64(m)
	npm := float64(n + m)
	if n <= approxLogSpaceN && m <= approxLogSpaceN {
		return math.Sqrt(nm * (npm + 1 - float64(sumTies)/(npm*(npm-1))) / 12)
	}

	logBase := math.Log(nm) + math.Log(npm+1) - log12
	if sumTies <= 0 {
		return math.Exp(0.5 * logBase)
	}
	logTies := math.Log(nm) + math.Log(float64(sumTies)) - math.Log(npm) - math.Log(npm+1) - log12
	return math.Exp(0.5 * (logBase + math.Log(1-math.Exp(logTies-logBase))))
}

// approxPValue evaluates a centered statistic z, already shifted by its
// continuity correction, against N(0, sigma). The two-sided tail follows the
// sign of the corrected z.
func approxPValue(z, sigma float64, tail TailType, scale specfun.Scale) (float64, error) {
	switch tail {
	case OneSidedLower:
		return specfun.Pnorm(z, 0, sigma, specfun.LowerTail, scale), nil
	case OneSidedUpper:
		return specfun.Pnorm(z, 0, sigma, specfun.UpperTail, scale), nil
	case TwoSided:
		var p float64
		if z > 0 {
			p = specfun.Pnorm(z, 0, sigma, specfun.UpperTail, scale)
		} else {
			p = specfun.Pnorm(z, 0, sigma, specfun.LowerTail, scale)
		}
		return twoSided(p, scale), nil
	}
	return 0, tail.valid()
}

// ApproxSignRank is the normal approximation to the signed-rank p-value of
// statistic w over n non-zero observations.
func ApproxSignRank(w float64, n, sumTies int, tail TailType, scale specfun.Scale) (float64, error) {
	if err := tail.valid(); err != nil {
		return 0, err
	}
	if n < 1 {
		return scale.One(), nil
	}

	z := w - float64(n)*float64(n+1)/4
	switch tail {
	case OneSidedLower:
		z += 0.5
	case OneSidedUpper:
		z -= 0.5
	case TwoSided:
		// A statistic at its mean is pushed up, so the two-sided test then
		// reads the upper tail.
		if z > 0 {
			z -= 0.5
		} else {
			z += 0.5
		}
	}

	return approxPValue(z, signRankSigma(n, sumTies), tail, scale)
}

// ApproxRankSum is the normal approximation to the rank-sum p-value of
// statistic w for samples of sizes n and m.
func ApproxRankSum(w float64, n, m, sumTies int, tail TailType, scale specfun.Scale) (float64, error) {
	if err := tail.valid(); err != nil {
		return 0, err
	}

	fn, fm := float64(n), float64(m)
	z := w - (fn*fm+fn*(fn+1))/2
	switch tail {
	case OneSidedLower:
		z += 0.5
	case OneSidedUpper:
		z -= 0.5
	case TwoSided:
		// A rank sum that sits exactly at its mean gets no correction.
		if z < 0 {
			z += 0.5
		} else if z > 0 {
			z -= 0.5
		}
	}

	return approxPValue(z, rankSumSigma(n, m, sumTies), tail, scale)
}
