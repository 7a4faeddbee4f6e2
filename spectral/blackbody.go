package spectral

import (
	"math"
)

// Physical constants for Planck's law, SI units.
const (
	speedOfLight = 2.99792458e8
	planckConst  = 6.62606957e-34
	boltzmann    = 1.3806488e-23
)

// Blackbody emits according to Planck's law at a fixed temperature.
// The emission is normalized so its peak inside the visible domain is
// one; callers scale it to the radiance they need. Non positive
// temperatures emit nothing.
type Blackbody struct {
	temperature float32
	norm        float64
}

// NewBlackbody returns the normalized emission spectrum of an ideal
// radiator at the given temperature in Kelvin.
func NewBlackbody(kelvin float32) Blackbody {
	b := Blackbody{temperature: kelvin}
	if kelvin <= 0 {
		return b
	}

	// The peak can sit outside the visible range for low or very high
	// temperatures, so normalize against a whole nanometer scan of the
	// domain rather than Wien's displacement law.
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		if v := planck(float64(lambda), float64(kelvin)); v > b.norm {
			b.norm = v
		}
	}
	return b
}

// planck evaluates Planck's law for a wavelength in nanometers,
// returning the spectral radiance in SI units.
func planck(lambdaNm, kelvin float64) float64 {
	l := lambdaNm * 1e-9
	num := 2 * planckConst * speedOfLight * speedOfLight
	den := l * l * l * l * l * (math.Exp(planckConst*speedOfLight/(l*boltzmann*kelvin)) - 1)
	return num / den
}

func (b Blackbody) Value(lambda float32) float32 {
	if b.temperature <= 0 || lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	return float32(planck(float64(lambda), float64(b.temperature)) / b.norm)
}

// MaxValue scans the domain at whole nanometer steps.
func (b Blackbody) MaxValue() float32 {
	var max float32
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		if v := b.Value(lambda); v > max {
			max = v
		}
	}
	return max
}
