package spectral

import (
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/types"
	"github.com/chewxy/math32"
)

// SampledSpectrum holds one spectral intensity per hero wavelength.
// Values are plain data: they are combined elementwise and only gain
// meaning together with the SampledWavelengths they were evaluated at.
type SampledSpectrum [NSamples]float32

// NewSampledSpectrum returns a sample set with every entry set to v.
func NewSampledSpectrum(v float32) SampledSpectrum {
	var out SampledSpectrum
	for i := range out {
		out[i] = v
	}
	return out
}

func (s SampledSpectrum) Add(o SampledSpectrum) SampledSpectrum {
	for i := range s {
		s[i] += o[i]
	}
	return s
}

func (s SampledSpectrum) Sub(o SampledSpectrum) SampledSpectrum {
	for i := range s {
		s[i] -= o[i]
	}
	return s
}

func (s SampledSpectrum) Mul(o SampledSpectrum) SampledSpectrum {
	for i := range s {
		s[i] *= o[i]
	}
	return s
}

func (s SampledSpectrum) MulScalar(v float32) SampledSpectrum {
	for i := range s {
		s[i] *= v
	}
	return s
}

// Div divides elementwise; entries with a zero divisor yield zero.
// Zero divisors are routine, not exceptional: terminated wavelength
// sets carry zero pdfs for their secondary entries.
func (s SampledSpectrum) Div(o SampledSpectrum) SampledSpectrum {
	for i := range s {
		if o[i] == 0 {
			s[i] = 0
			continue
		}
		s[i] /= o[i]
	}
	return s
}

// DivScalar divides every sample by v; a zero divisor yields a zero
// sample set.
func (s SampledSpectrum) DivScalar(v float32) SampledSpectrum {
	if v == 0 {
		return SampledSpectrum{}
	}
	for i := range s {
		s[i] /= v
	}
	return s
}

// TerminateSecondary zeroes every sample but the primary one. It is
// the value-side counterpart of SampledWavelengths.TerminateSecondary
// for spectra that were evaluated before the set collapsed.
func (s SampledSpectrum) TerminateSecondary() SampledSpectrum {
	for i := 1; i < NSamples; i++ {
		s[i] = 0
	}
	return s
}

// Average returns the arithmetic mean of the sample values.
func (s SampledSpectrum) Average() float32 {
	var sum float32
	for _, v := range s {
		sum += v
	}
	return sum / NSamples
}

func (s SampledSpectrum) MaxComponent() float32 {
	out := s[0]
	for _, v := range s[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func (s SampledSpectrum) IsZero() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

func (s SampledSpectrum) Lerp(o SampledSpectrum, t float32) SampledSpectrum {
	for i := range s {
		s[i] = types.Lerp(s[i], o[i], t)
	}
	return s
}

func (s SampledSpectrum) Sqrt() SampledSpectrum {
	for i := range s {
		s[i] = math32.Sqrt(s[i])
	}
	return s
}

func (s SampledSpectrum) Clamp(min, max float32) SampledSpectrum {
	for i := range s {
		s[i] = types.Clamp(s[i], min, max)
	}
	return s
}

func (s SampledSpectrum) Exp() SampledSpectrum {
	for i := range s {
		s[i] = math32.Exp(s[i])
	}
	return s
}

func (s SampledSpectrum) Pow(e float32) SampledSpectrum {
	for i := range s {
		s[i] = math32.Pow(s[i], e)
	}
	return s
}

// Check reports whether every sample is finite. Offending entries are
// logged as warnings tagged with label so data quality problems
// surface without aborting the render.
func (s SampledSpectrum) Check(label string) bool {
	ok := true
	for i, v := range s {
		switch {
		case math32.IsNaN(v):
			logger.Warningf("%s: NaN spectral sample at index %d", label, i)
			ok = false
		case math32.IsInf(v, 0):
			logger.Warningf("%s: infinite spectral sample (%v) at index %d", label, v, i)
			ok = false
		}
	}
	return ok
}

// XYZ converts the samples to a tristimulus value using the Monte
// Carlo estimator Sum(s[i]*CMF(lambda[i])/pdf[i])/N, normalized by the
// observer luminance integral. Terminated sets need no special case:
// their zeroed secondary pdfs drop out of the sum and the rescaled
// primary pdf already accounts for the 1/N weight.
func (s SampledSpectrum) XYZ(wl *SampledWavelengths) colorspace.XYZ {
	x, y, z := X(), Y(), Z()

	var out types.Vec3
	for i := 0; i < NSamples; i++ {
		if wl.pdf[i] == 0 {
			continue
		}
		w := s[i] / wl.pdf[i]
		out[0] += w * x.Value(wl.lambda[i])
		out[1] += w * y.Value(wl.lambda[i])
		out[2] += w * z.Value(wl.lambda[i])
	}

	scale := 1 / (NSamples * YIntegral())
	return colorspace.XYZ{X: out[0] * scale, Y: out[1] * scale, Z: out[2] * scale}
}

// SampledWavelengths is the ordered set of hero wavelengths one path
// sample is traced at, together with their sampling pdfs. A set is
// created per primary ray and owned by that path's call stack.
type SampledWavelengths struct {
	lambda     [NSamples]float32
	pdf        [NSamples]float32
	terminated bool
}

// SampleUniform stratifies NSamples hero wavelengths over the visible
// domain from a single uniform random number in [0, 1).
func SampleUniform(u float32) SampledWavelengths {
	return SampleUniformRange(u, LambdaMin, LambdaMax)
}

// SampleUniformRange stratifies NSamples hero wavelengths over
// [min, max).
func SampleUniformRange(u, min, max float32) SampledWavelengths {
	var wl SampledWavelengths
	pdf := 1 / (max - min)
	for i := range wl.lambda {
		v := u + float32(i)/NSamples
		if v >= 1 {
			v--
		}
		wl.lambda[i] = types.Lerp(min, max, v)
		wl.pdf[i] = pdf
	}
	return wl
}

// Lambda returns the wavelength at index i in nanometers.
func (wl *SampledWavelengths) Lambda(i int) float32 {
	return wl.lambda[i]
}

// PDF returns the sampling density of the wavelength at index i.
func (wl *SampledWavelengths) PDF(i int) float32 {
	return wl.pdf[i]
}

// PDFs returns the sampling densities as a SampledSpectrum so
// estimators can divide by them elementwise.
func (wl *SampledWavelengths) PDFs() SampledSpectrum {
	return SampledSpectrum(wl.pdf)
}

// SecondaryTerminated reports whether the secondary wavelengths have
// been dropped from this set.
func (wl *SampledWavelengths) SecondaryTerminated() bool {
	return wl.terminated
}

// TerminateSecondary collapses the set to its primary wavelength.
// The primary pdf absorbs the 1/NSamples selection weight so
// estimators stay unbiased without reweighting; calling it again is a
// no-op.
func (wl *SampledWavelengths) TerminateSecondary() {
	if wl.terminated {
		return
	}
	wl.terminated = true
	wl.pdf[0] /= NSamples
	for i := 1; i < NSamples; i++ {
		wl.pdf[i] = 0
	}
}

// MaybeTerminateSecondary terminates the secondary wavelengths with
// probability p, consuming the uniform random number u. Probabilities
// of zero or less disable termination entirely.
func (wl *SampledWavelengths) MaybeTerminateSecondary(u, p float32) {
	if p <= 0 || wl.terminated {
		return
	}
	if u < p {
		wl.TerminateSecondary()
	}
}
