package spectral

import (
	"sync"

	"github.com/achilleasa/prism/cie"
)

// observerTable adapts a 5 nm CIE data table to the Spectrum
// interface so it can be densified.
type observerTable struct {
	table *[cie.NSamples]float64
}

func (s observerTable) Value(lambda float32) float32 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	return float32(cie.Interp(s.table, float64(lambda)))
}

func (s observerTable) MaxValue() float32 {
	var max float32
	for lambda := LambdaMin; lambda <= LambdaMax; lambda++ {
		if v := s.Value(lambda); v > max {
			max = v
		}
	}
	return max
}

// The shared observer and illuminant presets are densified once and
// treated as read-only afterwards.
var presets struct {
	sync.Once
	x, y, z   *DenselySampled
	d65       *DenselySampled
	yIntegral float32
}

func initPresets() {
	presets.x = NewDenselySampledFrom(observerTable{table: &cie.X})
	presets.y = NewDenselySampledFrom(observerTable{table: &cie.Y})
	presets.z = NewDenselySampledFrom(observerTable{table: &cie.Z})

	for _, v := range presets.y.values {
		presets.yIntegral += v
	}

	d65 := NewDenselySampledFrom(observerTable{table: &cie.D65})
	var norm float32
	for i, v := range d65.values {
		norm += v * presets.y.values[i]
	}
	d65.max = 0
	for i, v := range d65.values {
		d65.values[i] = v / norm
		if d65.values[i] > d65.max {
			d65.max = d65.values[i]
		}
	}
	presets.d65 = d65
}

// X returns the densely sampled CIE 1931 x matching function.
func X() *DenselySampled {
	presets.Do(initPresets)
	return presets.x
}

// Y returns the densely sampled CIE 1931 y matching function, which
// doubles as the luminous efficiency curve.
func Y() *DenselySampled {
	presets.Do(initPresets)
	return presets.y
}

// Z returns the densely sampled CIE 1931 z matching function.
func Z() *DenselySampled {
	presets.Do(initPresets)
	return presets.z
}

// YIntegral returns the whole nanometer sum of the y matching
// function over the domain. Spectrum to XYZ conversions divide by it
// so a unit reflectance maps to unit luminance.
func YIntegral() float32 {
	presets.Do(initPresets)
	return presets.yIntegral
}

// D65Illuminant returns the CIE D65 daylight illuminant scaled so its
// luminance integrates to one.
func D65Illuminant() *DenselySampled {
	presets.Do(initPresets)
	return presets.d65
}
