package renderer

import "github.com/achilleasa/prism/colorspace"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of indirect bounces.
	NumBounces uint32

	// Min bounces before applying russian roulette for path elimination.
	// Zero disables path elimination.
	MinBouncesForRR uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Tone map applied while developing pixels.
	ToneMap colorspace.ToneMap

	// Probability of collapsing a path to its primary hero wavelength
	// at each bounce. Zero keeps all hero wavelengths alive to the end
	// of the path.
	SecondaryTermination float32

	// Number of render workers. Zero selects one per logical CPU.
	NumWorkers uint32

	// Seed for the per-row sample streams.
	Seed int64
}
