package hwe

import (
	"math"

	"github.com/carbocation/genostat/specfun"
)

const (
	machineEpsilon = 2.220446049250313e-16
	tiny           = 1e-20
	relativeBound  = 5 * machineEpsilon
	maxIterations  = 5000
)

// Rational approximation coefficients for log-gamma on (0, 12], and the
// Stirling series beyond.
var (
	stirling = [8]float64{
		5.7083835261e-03, -1.910444077728e-03,
		8.4171387781295e-04, -5.952379913043012e-04,
		7.93650793500350248e-04, -2.777777777777681622553e-03,
		8.333333333333333331554247e-02, 0.9189385332046727417803297,
	}

	lgC1 = [9]float64{
		4.945235359296727046734888e0, 2.018112620856775083915565e2,
		2.290838373831346393026739e3, 1.131967205903380828685045e4,
		2.855724635671635335736389e4, 3.848496228443793359990269e4,
		2.637748787624195437963534e4, 7.225813979700288197698961e3,
		-5.772156649015328605195174e-1,
	}
	lgD1 = [8]float64{
		6.748212550303777196073036e1, 1.113332393857199323513008e3,
		7.738757056935398733233834e3, 2.763987074403340708898585e4,
		5.499310206226157329794414e4, 6.161122180066002127833352e4,
		3.635127591501940507276287e4, 8.785536302431013170870835e3,
	}

	lgC2 = [9]float64{
		4.974607845568932035012064e0, 5.424138599891070494101986e2,
		1.550693864978364947665077e4, 1.847932904445632425417223e5,
		1.088204769468828767498470e6, 3.338152967987029735917223e6,
		5.106661678927352456275255e6, 3.074109054850539556250927e6,
		4.227843350984671393993777e-1,
	}
	lgD2 = [8]float64{
		1.830328399370592604055942e2, 7.765049321445005871323047e3,
		1.331903827966074194402448e5, 1.136705821321969608938755e6,
		5.267964117437946917577538e6, 1.346701454311101692290052e7,
		1.782736530353274213975932e7, 9.533095591844353613395747e6,
	}

	lgC4 = [9]float64{
		-1.474502166059939948905062e4, -2.426813369486704502836312e6,
		-1.214755574045093227939592e8, -2.663432449630976949898078e9,
		-2.940378956634553899906876e10, -1.702665737765398868392998e11,
		-4.926125793377430887588120e11, -5.606251856223951465078242e11,
		1.791759469228055000094023e0,
	}
	lgD4 = [8]float64{
		-2.690530175870899333379843e3, -6.393885654300092398984238e5,
		-4.135599930241388052042842e7, -1.120872109616147941376570e9,
		-1.488613728678813811542398e10, -1.016803586272438228077304e11,
		-3.417476345507377132798597e11, -4.463158187419713286462081e11,
	}
)

// rational evaluates the degree 8 numerator and denominator polynomials at z.
func rational(z float64, c *[9]float64, d *[8]float64) float64 {
	num, den := 0.0, 1.0
	for i := range d {
		num = z*num + c[i]
		den = z*den + d[i]
	}
	return num / den
}

// logGamma is log(Gamma(x)) for x > 0.
func logGamma(x float64) float64 {
	switch {
	case x <= machineEpsilon:
		return -math.Log(x)
	case x <= 0.5:
		return -math.Log(x) + x*(x*rational(x, &lgC1, &lgD1)+lgC1[8])
	case x <= 0.6796875:
		z := x - 1
		return -math.Log(x) + z*(z*rational(z, &lgC2, &lgD2)+lgC2[8])
	case x <= 1.5:
		z := x - 1
		return z * (z*rational(z, &lgC1, &lgD1) + lgC1[8])
	case x <= 4:
		z := x - 2
		return z * (z*rational(z, &lgC2, &lgD2) + lgC2[8])
	case x <= 12:
		z := x - 4
		return z*rational(z, &lgC4, &lgD4) + lgC4[8]
	}

	z := x * x
	sum := stirling[0]
	for i := 1; i <= 6; i++ {
		sum = sum/z + stirling[i]
	}
	sum /= x

	return sum + math.Log(x)*(x-0.5) - x + stirling[7]
}

// incompleteGamma is the lower regularized incomplete gamma function P(a, x).
func incompleteGamma(x, a float64) (float64, error) {
	if x == 0 {
		return 0, nil
	}

	logGammaA := logGamma(a)
	if a < tiny {
		logGammaA = logGamma(a + machineEpsilon)
	}
	prefactor := math.Exp(a*math.Log(x) - x - logGammaA)

	if x < a+1 {
		sum := 1 / a
		term := sum
		ap := a
		for i := 0; i < maxIterations; i++ {
			if math.Abs(term) < relativeBound*math.Abs(sum) {
				return sum * prefactor, nil
			}
			ap++
			term *= x / ap
			sum += term
		}
		return sum * prefactor, &specfun.ConvergenceError{Func: "hwe series", Iterations: maxIterations}
	}

	p0, p1, q0, q1 := 1.0, x, 0.0, 1.0
	c, fold, fnew := 1.0, q0, q1
	for i := 1; i < maxIterations; i++ {
		if math.Abs(fnew-fold) < relativeBound*math.Abs(fnew) {
			return 1 - fnew*prefactor, nil
		}
		fold = fnew

		iMinusA := float64(i) - a
		p0 = (p0*iMinusA + p1) * c
		q0 = (q0*iMinusA + q1) * c

		iTimesC := float64(i) * c
		p1 = p1*iTimesC + p0*x
		q1 = q1*iTimesC + q0*x

		c = 1 / p1
		fnew = q1 * c
	}
	return 1 - fnew*prefactor, &specfun.ConvergenceError{Func: "hwe continued fraction", Iterations: maxIterations}
}

// chiSquareCDF is P(X <= x) for X chi-square with df degrees of freedom,
// clamped to [0, 1].
func chiSquareCDF(x float64, df int) (float64, error) {
	if x <= 0 {
		return 0, nil
	}

	y, err := incompleteGamma(x/2, float64(df)/2)
	if err != nil {
		return 0, err
	}

	return clamp(y), nil
}
