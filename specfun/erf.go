package specfun

import "math"

// Rational approximations after W. J. Cody, "Rational Chebyshev
// approximations for the error function" (1969), in three regimes split at
// |x| = 0.46875 and |x| = 4.
var (
	erfA1 = [...]float64{
		1.85777706184603153e-1,
		3.16112374387056560, 1.13864154151050156e2,
		3.77485237685302021e2, 3.20937758913846947e3,
	}
	erfB1 = [...]float64{
		2.36012909523441209e1,
		2.44024637934444173e2, 1.28261652607737228e3,
		2.84423683343917062e3,
	}
	erfA2 = [...]float64{
		2.15311535474403846e-8,
		5.64188496988670089e-1, 8.88314979438837594,
		6.61191906371416295e1, 2.98635138197400131e2,
		8.81952221241769090e2, 1.71204761263407058e3,
		2.05107837782607147e3, 1.23033935479799725e3,
	}
	erfB2 = [...]float64{
		1.57449261107098347e1,
		1.17693950891312499e2, 5.37181101862009858e2,
		1.62138957456669019e3, 3.29079923573345963e3,
		4.36261909014324716e3, 3.43936767414372164e3,
		1.23033935480374942e3,
	}
	erfA3 = [...]float64{
		1.63153871373020978e-2,
		3.05326634961232344e-1, 3.60344899949804439e-1,
		1.25781726111229246e-1, 1.60837851487422766e-2,
		6.58749161529837803e-4,
	}
	erfB3 = [...]float64{
		2.56852019228982242,
		1.87295284992346047, 5.27905102951428412e-1,
		6.05183413124413191e-2, 2.33520497626869185e-3,
	}
)

const (
	erfSmall  = 0.46875
	erfLarge  = 4.0
	invSqrtPi = 0.56418958354775627928

	erfLast1 = len(erfB1)
	erfLast2 = len(erfB2)
	erfLast3 = len(erfB3)
)

// Erf returns the error function of x. It is odd: Erf(-x) == -Erf(x).
func Erf(x float64) float64 {
	absX := math.Abs(x)
	xSquared := absX * absX

	if absX <= erfSmall {
		num := erfA1[0] * xSquared
		den := xSquared
		for i := 1; i < erfLast1; i++ {
			num = (num + erfA1[i]) * xSquared
			den = (den + erfB1[i-1]) * xSquared
		}
		return x * (num + erfA1[erfLast1]) / (den + erfB1[erfLast1-1])
	}

	var temp float64
	if absX <= erfLarge {
		num := erfA2[0] * absX
		den := absX
		for i := 1; i < erfLast2; i++ {
			num = (num + erfA2[i]) * absX
			den = (den + erfB2[i-1]) * absX
		}
		temp = (num + erfA2[erfLast2]) / (den + erfB2[erfLast2-1])
	} else {
		xInvSquared := 1.0 / xSquared
		num := erfA3[0] * xInvSquared
		den := xInvSquared
		for i := 1; i < erfLast3; i++ {
			num = (num + erfA3[i]) * xInvSquared
			den = (den + erfB3[i-1]) * xInvSquared
		}
		temp = xInvSquared * (num + erfA3[erfLast3]) / (den + erfB3[erfLast3-1])
		temp = (invSqrtPi - temp) / absX
	}

	temp = 1 - math.Exp(-xSquared)*temp
	if x > 0 {
		return temp
	}
	return -temp
}

// Pnorm returns the normal distribution function with mean mu and standard
// deviation sigma at x, for the requested tail and scale. At x == mu it is
// exactly 0.5 for either tail.
func Pnorm(x, mu, sigma float64, tail Tail, scale Scale) float64 {
	x = (x - mu) / (sqrtTwo * sigma)
	e := Erf(math.Abs(x)) / 2

	var prob float64
	if (tail == LowerTail && x > 0) || (tail == UpperTail && x < 0) {
		prob = 0.5 + e
	} else {
		prob = 0.5 - e
	}

	return scale.Apply(prob)
}
