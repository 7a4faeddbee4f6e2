package spectral

import (
	"github.com/chewxy/math32"
)

// SigmoidPolynomial is the compact analytic curve behind RGB derived
// spectra: a quadratic in the raw nanometer wavelength squashed
// through a sigmoid so the result always lands in [0, 1].
type SigmoidPolynomial struct {
	c0, c1, c2 float32
}

// NewSigmoidPolynomial returns the curve for a fitted coefficient
// triple ordered highest degree first.
func NewSigmoidPolynomial(c0, c1, c2 float32) SigmoidPolynomial {
	return SigmoidPolynomial{c0: c0, c1: c1, c2: c2}
}

func sigmoid(x float32) float32 {
	// Infinite inputs come from the closed form fit of uniform RGB
	// triples at 0 and 1; they pin the curve to the matching bound.
	if math32.IsInf(x, 0) {
		if x > 0 {
			return 1
		}
		return 0
	}
	return 0.5 + x/(2*math32.Sqrt(1+x*x))
}

func (p SigmoidPolynomial) Value(lambda float32) float32 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	return sigmoid(p.c0*lambda*lambda + p.c1*lambda + p.c2)
}

// MaxValue scans the domain at whole nanometer steps. The bound is
// coarse but cheap and good enough for rejection sampling.
func (p SigmoidPolynomial) MaxValue() float32 {
	var max float32
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		if v := p.Value(lambda); v > max {
			max = v
		}
	}
	return max
}
