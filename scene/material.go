package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/achilleasa/prism/spectral"
	"github.com/achilleasa/prism/types"
)

// Material decides how light paths continue after a hit. All spectral
// answers are evaluated at the hero wavelengths of the current path.
type Material interface {
	// Scatter samples an outgoing ray at the hit point. The weight is
	// the path throughput multiplier for the sampled direction; ok
	// reports false when the path is absorbed.
	Scatter(in Ray, h Hit, wl *spectral.SampledWavelengths, rng *rand.Rand) (out Ray, weight spectral.SampledSpectrum, ok bool)

	// Emitted returns the radiance a path picks up when it hits the
	// material.
	Emitted(h Hit, wl *spectral.SampledWavelengths) spectral.SampledSpectrum
}

// Lambert is an ideal diffuse reflector.
type Lambert struct {
	Albedo spectral.Spectrum
}

func (m Lambert) Scatter(in Ray, h Hit, wl *spectral.SampledWavelengths, rng *rand.Rand) (Ray, spectral.SampledSpectrum, bool) {
	// Cosine weighted hemisphere sample; the cos/pi factors cancel
	// against the sampling pdf so the weight is the plain albedo.
	dir := h.Normal.Add(randomUnitVector(rng))
	if nearZero(dir) {
		dir = h.Normal
	}
	return Ray{Origin: h.Point, Dir: dir}, spectral.Sample(m.Albedo, wl), true
}

func (m Lambert) Emitted(Hit, *spectral.SampledWavelengths) spectral.SampledSpectrum {
	return spectral.SampledSpectrum{}
}

// Emissive turns a primitive into an area light. Radiance is emitted
// from the front face only and multiplied by Scale.
type Emissive struct {
	Radiance spectral.Spectrum
	Scale    float32
}

func (m Emissive) Scatter(Ray, Hit, *spectral.SampledWavelengths, *rand.Rand) (Ray, spectral.SampledSpectrum, bool) {
	return Ray{}, spectral.SampledSpectrum{}, false
}

func (m Emissive) Emitted(h Hit, wl *spectral.SampledWavelengths) spectral.SampledSpectrum {
	if !h.Front {
		return spectral.SampledSpectrum{}
	}
	return spectral.Sample(m.Radiance, wl).MulScalar(m.Scale)
}

// Metal is a mirror with an optional fuzz term that perturbs the
// reflected direction.
type Metal struct {
	Reflectance spectral.Spectrum
	Fuzz        float32
}

func (m Metal) Scatter(in Ray, h Hit, wl *spectral.SampledWavelengths, rng *rand.Rand) (Ray, spectral.SampledSpectrum, bool) {
	dir := in.Dir.Normalize().Reflect(h.Normal)
	if m.Fuzz > 0 {
		dir = dir.Add(randomInUnitSphere(rng).Mul(m.Fuzz))
	}
	if dir.Dot(h.Normal) <= 0 {
		// Fuzz pushed the ray below the surface.
		return Ray{}, spectral.SampledSpectrum{}, false
	}
	return Ray{Origin: h.Point, Dir: dir}, spectral.Sample(m.Reflectance, wl), true
}

func (m Metal) Emitted(Hit, *spectral.SampledWavelengths) spectral.SampledSpectrum {
	return spectral.SampledSpectrum{}
}

// Dielectric is clear glass following Snell's law. A positive CauchyB
// makes the index of refraction wavelength dependent via Cauchy's
// equation; such paths collapse to their primary hero wavelength
// since the secondary ones would refract along different directions.
type Dielectric struct {
	// Index of refraction at the reference wavelength.
	IOR float32

	// Cauchy dispersion coefficient in squared micrometers. Zero
	// disables dispersion.
	CauchyB float32
}

func (m Dielectric) Scatter(in Ray, h Hit, wl *spectral.SampledWavelengths, rng *rand.Rand) (Ray, spectral.SampledSpectrum, bool) {
	eta := m.IOR
	if m.CauchyB > 0 {
		wl.TerminateSecondary()
		lambda := wl.Lambda(0)
		eta = m.IOR + m.CauchyB*1e6/(lambda*lambda)
	}

	ratio := eta
	if h.Front {
		ratio = 1 / eta
	}

	unit := in.Dir.Normalize()
	cos := -unit.Dot(h.Normal)
	if cos > 1 {
		cos = 1
	}

	dir, canRefract := unit.Refract(h.Normal, ratio)
	if !canRefract || schlick(cos, ratio) > rng.Float32() {
		dir = unit.Reflect(h.Normal)
	}
	return Ray{Origin: h.Point, Dir: dir}, spectral.NewSampledSpectrum(1), true
}

func (m Dielectric) Emitted(Hit, *spectral.SampledWavelengths) spectral.SampledSpectrum {
	return spectral.SampledSpectrum{}
}

// schlick approximates the Fresnel reflectance for unpolarized light.
func schlick(cos, etaRatio float32) float32 {
	r0 := (1 - etaRatio) / (1 + etaRatio)
	r0 *= r0
	return r0 + (1-r0)*math32.Pow(1-cos, 5)
}

func randomInUnitSphere(rng *rand.Rand) types.Vec3 {
	for {
		v := types.Vec3{
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
			2*rng.Float32() - 1,
		}
		if v.Dot(v) < 1 {
			return v
		}
	}
}

func randomUnitVector(rng *rand.Rand) types.Vec3 {
	return randomInUnitSphere(rng).Normalize()
}

func nearZero(v types.Vec3) bool {
	const eps = 1e-6
	return math32.Abs(v[0]) < eps && math32.Abs(v[1]) < eps && math32.Abs(v[2]) < eps
}
