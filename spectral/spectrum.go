// Package spectral models light as continuous spectral power
// distributions over the visible wavelength range and provides the
// hero wavelength machinery that carries stochastic spectral samples
// through a render.
package spectral

import (
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/log"
)

var logger = log.New("spectral")

const (
	// LambdaMin and LambdaMax bound the visible wavelength domain in
	// nanometers. Every Spectrum is total: wavelengths outside the
	// domain yield zero.
	LambdaMin float32 = 360
	LambdaMax float32 = 830

	// NSamples is the number of hero wavelengths carried per path
	// sample.
	NSamples = 4
)

// Spectrum is a continuous spectral distribution over [LambdaMin,
// LambdaMax] nanometers. Implementations are immutable once
// constructed and safe to share between render workers.
type Spectrum interface {
	// Value returns the spectral intensity at a wavelength in nm.
	Value(lambda float32) float32

	// MaxValue returns an upper bound of Value over the domain, tight
	// enough for rejection style sampling.
	MaxValue() float32
}

// InnerProduct integrates the product of two spectra with a 1 nm
// Riemann sum over the spectral domain.
func InnerProduct(a, b Spectrum) float32 {
	var sum float32
	for lambda := LambdaMin; lambda < LambdaMax; lambda++ {
		sum += a.Value(lambda) * b.Value(lambda)
	}
	return sum
}

// XYZOf integrates a spectrum against the standard observer. The
// result is normalized by the observer luminance integral so a unit
// reflectance maps to unit luminance.
func XYZOf(s Spectrum) colorspace.XYZ {
	yInt := YIntegral()
	return colorspace.XYZ{
		X: InnerProduct(s, X()) / yInt,
		Y: InnerProduct(s, Y()) / yInt,
		Z: InnerProduct(s, Z()) / yInt,
	}
}

// Sample evaluates a spectrum at each hero wavelength. Terminated
// sets only evaluate the primary wavelength; the remaining entries
// stay zero and carry no weight in downstream estimators.
func Sample(s Spectrum, wl *SampledWavelengths) SampledSpectrum {
	var out SampledSpectrum
	if wl.terminated {
		out[0] = s.Value(wl.lambda[0])
		return out
	}
	for i := 0; i < NSamples; i++ {
		out[i] = s.Value(wl.lambda[i])
	}
	return out
}
