package scene

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/prism/spectral"
	"github.com/achilleasa/prism/types"
)

func TestLambertScattersAboveSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	wl := spectral.SampleUniform(0.5)
	mat := &Lambert{Albedo: spectral.NewConstant(0.5)}
	h := Hit{Point: types.Vec3{0, 1, 0}, Normal: types.Vec3{0, 1, 0}, Front: true}

	for i := 0; i < 100; i++ {
		out, weight, ok := mat.Scatter(Ray{Dir: types.Vec3{0, -1, 0}}, h, &wl, rng)
		require.True(t, ok)
		assert.Equal(t, h.Point, out.Origin)
		assert.Positive(t, out.Dir.Dot(h.Normal), "sample %d left the hemisphere", i)
		assert.Equal(t, spectral.NewSampledSpectrum(0.5), weight)
	}
	assert.True(t, mat.Emitted(h, &wl).IsZero())
}

func TestEmissiveMaterial(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	wl := spectral.SampleUniform(0.2)
	mat := &Emissive{Radiance: spectral.NewConstant(2), Scale: 3}

	_, _, ok := mat.Scatter(Ray{}, Hit{}, &wl, rng)
	assert.False(t, ok)

	assert.Equal(t, spectral.NewSampledSpectrum(6), mat.Emitted(Hit{Front: true}, &wl))
	assert.True(t, mat.Emitted(Hit{Front: false}, &wl).IsZero())
}

func TestMetalMirrorsPerfectly(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	wl := spectral.SampleUniform(0.5)
	mat := &Metal{Reflectance: spectral.NewConstant(0.9)}
	h := Hit{Point: types.Vec3{}, Normal: types.Vec3{0, 1, 0}, Front: true}

	out, weight, ok := mat.Scatter(Ray{Origin: types.Vec3{-1, 1, 0}, Dir: types.Vec3{1, -1, 0}}, h, &wl, rng)
	require.True(t, ok)
	assert.Equal(t, spectral.NewSampledSpectrum(0.9), weight)

	want := types.Vec3{1, 1, 0}.Normalize()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], out.Dir[i], 1e-6, "component %d", i)
	}
}

func TestMetalFuzzAbsorbsGrazingRays(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	wl := spectral.SampleUniform(0.5)
	mat := &Metal{Reflectance: spectral.NewConstant(0.9), Fuzz: 1}
	h := Hit{Normal: types.Vec3{0, 1, 0}, Front: true}
	in := Ray{Origin: types.Vec3{-10, 0.01, 0}, Dir: types.Vec3{1, -0.001, 0}}

	var absorbed int
	for i := 0; i < 50; i++ {
		out, _, ok := mat.Scatter(in, h, &wl, rng)
		if !ok {
			absorbed++
			continue
		}
		assert.Positive(t, out.Dir.Dot(h.Normal), "sample %d went below the surface", i)
	}
	assert.Positive(t, absorbed)
}

func TestDielectricHeadOnRefractsStraight(t *testing.T) {
	// The first draw from this seed exceeds the 4% Fresnel term, so
	// the head-on ray passes straight through.
	rng := rand.New(rand.NewSource(1))
	wl := spectral.SampleUniform(0.5)
	mat := &Dielectric{IOR: 1.5}
	h := Hit{Point: types.Vec3{0, 0, 1}, Normal: types.Vec3{0, 0, 1}, Front: true}

	out, weight, ok := mat.Scatter(Ray{Origin: types.Vec3{0, 0, 3}, Dir: types.Vec3{0, 0, -1}}, h, &wl, rng)
	require.True(t, ok)
	assert.Equal(t, spectral.NewSampledSpectrum(1), weight)
	for i, want := range (types.Vec3{0, 0, -1}) {
		assert.InDelta(t, want, out.Dir[i], 1e-6, "component %d", i)
	}
	assert.False(t, wl.SecondaryTerminated())
}

func TestDielectricFresnelReflectionRate(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	wl := spectral.SampleUniform(0.5)
	mat := &Dielectric{IOR: 1.5}
	h := Hit{Point: types.Vec3{0, 0, 1}, Normal: types.Vec3{0, 0, 1}, Front: true}
	in := Ray{Origin: types.Vec3{0, 0, 3}, Dir: types.Vec3{0, 0, -1}}

	const draws = 1000
	var reflected int
	for i := 0; i < draws; i++ {
		out, _, ok := mat.Scatter(in, h, &wl, rng)
		require.True(t, ok)
		if out.Dir[2] > 0 {
			reflected++
		}
	}

	// Schlick reflectance at normal incidence for glass is 4%.
	assert.InDelta(t, 0.04, float64(reflected)/draws, 0.025)
}

func TestDielectricDispersionCollapsesWavelengths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := Hit{Point: types.Vec3{0, 0, 1}, Normal: types.Vec3{0, 0, 1}, Front: true}
	in := Ray{Origin: types.Vec3{0, 0, 3}, Dir: types.Vec3{0, 0, -1}}

	wl := spectral.SampleUniform(0.5)
	dispersive := &Dielectric{IOR: 1.5046, CauchyB: 0.0042}
	_, _, ok := dispersive.Scatter(in, h, &wl, rng)
	require.True(t, ok)
	assert.True(t, wl.SecondaryTerminated())

	wl = spectral.SampleUniform(0.5)
	clear := &Dielectric{IOR: 1.5046}
	_, _, ok = clear.Scatter(in, h, &wl, rng)
	require.True(t, ok)
	assert.False(t, wl.SecondaryTerminated())
}
