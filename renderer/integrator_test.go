package renderer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/spectral"
	"github.com/achilleasa/prism/types"
)

func TestTracePathGathersEmission(t *testing.T) {
	light := &scene.Emissive{Radiance: spectral.NewConstant(2), Scale: 3}
	sc := &scene.Scene{
		Camera: scene.NewCamera(45),
		Primitives: []scene.Primitive{
			scene.NewQuad(types.Vec3{-1, -1, -2}, types.Vec3{2, 0, 0}, types.Vec3{0, 2, 0}, light),
		},
	}

	rng := rand.New(rand.NewSource(1))
	opts := Options{NumBounces: 0, MinBouncesForRR: 99}

	wl := spectral.SampleUniform(0.5)
	got := tracePath(sc, scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, -1}}, &wl, &opts, rng)
	assert.Equal(t, spectral.NewSampledSpectrum(6), got)

	// The light emits from its front face only.
	wl = spectral.SampleUniform(0.5)
	got = tracePath(sc, scene.Ray{Origin: types.Vec3{0, 0, -4}, Dir: types.Vec3{0, 0, 1}}, &wl, &opts, rng)
	assert.True(t, got.IsZero())
}

func TestTracePathEscapesToBackground(t *testing.T) {
	sc := &scene.Scene{
		Camera:     scene.NewCamera(45),
		Background: spectral.NewConstant(0.75),
	}

	rng := rand.New(rand.NewSource(1))
	opts := Options{NumBounces: 4, MinBouncesForRR: 99}

	wl := spectral.SampleUniform(0.5)
	got := tracePath(sc, scene.Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 1, 0}}, &wl, &opts, rng)
	assert.Equal(t, spectral.NewSampledSpectrum(0.75), got)
}

func TestTracePathBouncesOffDiffuseFloor(t *testing.T) {
	// One bounce off a half albedo floor into a unit background must
	// carry exactly half the background radiance; the cosine sampling
	// pdf cancels against the brdf.
	floor := &scene.Lambert{Albedo: spectral.NewConstant(0.5)}
	sc := &scene.Scene{
		Camera:     scene.NewCamera(45),
		Background: spectral.NewConstant(1),
		Primitives: []scene.Primitive{
			scene.NewQuad(types.Vec3{-5, 0, -5}, types.Vec3{10, 0, 0}, types.Vec3{0, 0, 10}, floor),
		},
	}

	rng := rand.New(rand.NewSource(42))
	opts := Options{NumBounces: 3, MinBouncesForRR: 99}

	for i := 0; i < 10; i++ {
		wl := spectral.SampleUniform(0.5)
		got := tracePath(sc, scene.Ray{Origin: types.Vec3{0, 1, 0}, Dir: types.Vec3{0.2, -1, 0.1}}, &wl, &opts, rng)
		assert.Equal(t, spectral.NewSampledSpectrum(0.5), got, "sample %d", i)
	}
}

func TestTracePathRussianRouletteStaysUnbiased(t *testing.T) {
	floor := &scene.Lambert{Albedo: spectral.NewConstant(0.5)}
	sc := &scene.Scene{
		Camera:     scene.NewCamera(45),
		Background: spectral.NewConstant(1),
		Primitives: []scene.Primitive{
			scene.NewQuad(types.Vec3{-5, 0, -5}, types.Vec3{10, 0, 0}, types.Vec3{0, 0, 10}, floor),
		},
	}

	// Roulette from the first bounce kills half the paths and boosts
	// the survivors; the mean must match the no-roulette value.
	rng := rand.New(rand.NewSource(7))
	opts := Options{NumBounces: 3, MinBouncesForRR: 1}

	const paths = 2000
	var sum float64
	for i := 0; i < paths; i++ {
		wl := spectral.SampleUniform(0.5)
		got := tracePath(sc, scene.Ray{Origin: types.Vec3{0, 1, 0}, Dir: types.Vec3{0.2, -1, 0.1}}, &wl, &opts, rng)
		sum += float64(got.Average())
	}
	assert.InDelta(t, 0.5, sum/paths, 0.05)
}

func TestTracePathSecondaryTermination(t *testing.T) {
	floor := &scene.Lambert{Albedo: spectral.NewConstant(0.5)}
	sc := &scene.Scene{
		Camera:     scene.NewCamera(45),
		Background: spectral.NewConstant(1),
		Primitives: []scene.Primitive{
			scene.NewQuad(types.Vec3{-5, 0, -5}, types.Vec3{10, 0, 0}, types.Vec3{0, 0, 10}, floor),
		},
	}

	rng := rand.New(rand.NewSource(3))
	opts := Options{NumBounces: 3, MinBouncesForRR: 99, SecondaryTermination: 1}

	wl := spectral.SampleUniform(0.5)
	got := tracePath(sc, scene.Ray{Origin: types.Vec3{0, 1, 0}, Dir: types.Vec3{0.2, -1, 0.1}}, &wl, &opts, rng)

	assert.True(t, wl.SecondaryTerminated())
	assert.InDelta(t, 1.0/(470*4), wl.PDF(0), 1e-7)
	for i := 1; i < spectral.NSamples; i++ {
		assert.Zero(t, wl.PDF(i), "pdf %d", i)
	}
	assert.EqualValues(t, 0.5, got[0])
}
