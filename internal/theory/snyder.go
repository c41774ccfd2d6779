package theory

import "math"

// Finite geometry asymmetry of Compton scattered annihilation radiation,
// rho = N(90)/N(0), after Snyder, Pasternack & Hornbostel 1948
// (Phys. Rev. 73, 440). All angles are in radians.
//
// Nothing here guards against division by zero: non-finite values are
// returned as they come out of the arithmetic and are reported by the caller.

// X is the Compton kinematic factor, X in [1, 3] for any real theta,
// so the logarithms and reciprocals below never see zero.
func X(theta float64) float64 {
	return 2. - math.Cos(theta)
}

func JLim(theta float64) float64 {
	x := X(theta)
	return math.Log(x) - 1./(2.*x*x)
}

// J integrates over the polar acceptance [theta-semiSpan, theta+semiSpan].
func J(theta, semiSpan float64) float64 {
	return JLim(theta+semiSpan) - JLim(theta-semiSpan)
}

func JdashLim(theta float64) float64 {
	x := X(theta)
	return -x + 4.*math.Log(x) + 3./x
}

func Jdash(theta, semiSpan float64) float64 {
	return JdashLim(theta+semiSpan) - JdashLim(theta-semiSpan)
}

// Rho1 is the asymmetry for finite theta only;
// semiSpan is half the size of the detector in theta.
// theta = 0 gives J = Jdash = 0 and NaN.
func Rho1(theta, semiSpan float64) float64 {
	return rhoOfRatio(J(theta, semiSpan) / Jdash(theta, semiSpan))
}

// rhoOfRatio maps r = J/Jdash to the asymmetry; r in {0, 2} divides by zero and yields +Inf.
func rhoOfRatio(r float64) float64 {
	return 1. + 1./(0.5*r*r-r)
}

func U(alpha float64) float64 {
	s := math.Sin(2. * alpha)
	return 2.*alpha*alpha - 0.5*s*s
}

func W(alpha float64) float64 {
	s := math.Sin(2. * alpha)
	return 2.*alpha*alpha + 0.5*s*s
}

// Z is the azimuthal acceptance correction, Z -> 0 as alpha -> 0
// (Z(0) itself is 0/0 = NaN) and Z -> 1 as alpha -> pi/2.
func Z(alpha float64) float64 {
	return U(alpha) / W(alpha)
}

// Rho2 is the asymmetry for finite theta and finite phi;
// alpha is half the size of the detector in phi.
func Rho2(theta, semiSpan, alpha float64) float64 {
	z := Z(alpha)
	rho := Rho1(theta, semiSpan)
	return (z + rho) / (1 + z*rho)
}
