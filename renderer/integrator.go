package renderer

import (
	"math"
	"math/rand"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/spectral"
)

// Offset applied to ray start distances to avoid self intersection.
const rayEpsilon = 1e-3

// tracePath integrates the radiance arriving along r at the hero
// wavelengths in wl. Emission is gathered by hitting lights directly;
// paths that leave the scene pick up the background spectrum.
func tracePath(sc *scene.Scene, r scene.Ray, wl *spectral.SampledWavelengths, opts *Options, rng *rand.Rand) spectral.SampledSpectrum {
	var radiance spectral.SampledSpectrum
	throughput := spectral.NewSampledSpectrum(1)

	for bounce := uint32(0); ; bounce++ {
		hit, found := sc.Intersect(r, rayEpsilon, math.MaxFloat32)
		if !found {
			if sc.Background != nil {
				radiance = radiance.Add(throughput.Mul(spectral.Sample(sc.Background, wl)))
			}
			break
		}

		radiance = radiance.Add(throughput.Mul(hit.Mat.Emitted(hit, wl)))
		if bounce == opts.NumBounces {
			break
		}

		out, weight, ok := hit.Mat.Scatter(r, hit, wl, rng)
		if !ok {
			break
		}
		throughput = throughput.Mul(weight)

		if opts.SecondaryTermination > 0 && !wl.SecondaryTerminated() {
			wl.MaybeTerminateSecondary(rng.Float32(), opts.SecondaryTermination)
		}

		// Russian roulette path elimination.
		if bounce+1 >= opts.MinBouncesForRR {
			q := throughput.MaxComponent()
			if q > 1 {
				q = 1
			}
			if rng.Float32() >= q {
				break
			}
			throughput = throughput.DivScalar(q)
		}

		r = out
	}
	return radiance
}
