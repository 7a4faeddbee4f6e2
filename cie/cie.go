// Package cie bundles the CIE 1931 2 degree standard observer curves
// and the D65 illuminant power distribution tabulated at 5nm intervals
// over the visible range. Both the offline spectrum fitter and the
// runtime spectral presets interpolate these tables.
package cie

// Tabulation range in nanometers.
const (
	LambdaMin = 360.0
	LambdaMax = 830.0

	// NSamples is the number of 5nm table entries in [LambdaMin, LambdaMax].
	NSamples = 95
)

// Interp samples a table at an arbitrary wavelength using linear
// interpolation. Wavelengths outside the tabulated range clamp to the
// edge entries.
func Interp(table *[NSamples]float64, lambda float64) float64 {
	x := (lambda - LambdaMin) * ((NSamples - 1) / (LambdaMax - LambdaMin))
	if x <= 0 {
		return table[0]
	}
	if x >= NSamples-1 {
		return table[NSamples-1]
	}

	offset := int(x)
	weight := x - float64(offset)
	return (1-weight)*table[offset] + weight*table[offset+1]
}
