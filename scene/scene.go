// Package scene models the world handed to the renderer: a pinhole
// camera, a flat list of analytic primitives and materials that
// answer in spectral terms. Scenes are immutable once built and are
// shared between render workers without locking.
package scene

import (
	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/spectral"
)

var logger = log.New("scene")

// Scene groups a camera with the primitives it observes. Background
// is the emission spectrum for rays that escape the scene; a nil
// background is black.
type Scene struct {
	Camera     *Camera
	Primitives []Primitive
	Background spectral.Spectrum

	bvh *BVH
}

// Finalize builds the bounding volume hierarchy consulted by
// Intersect. The renderer calls it once before sharing the scene
// between its workers; further calls are no-ops.
func (s *Scene) Finalize() {
	if s.bvh != nil || len(s.Primitives) == 0 {
		return
	}
	s.bvh = NewBVH(s.Primitives)
	logger.Debugf("built bvh over %d primitives", len(s.Primitives))
}

// Intersect finds the nearest primitive hit along r within
// (tMin, tMax). Scenes that have not been finalized fall back to a
// linear scan over the primitive list.
func (s *Scene) Intersect(r Ray, tMin, tMax float32) (Hit, bool) {
	if s.bvh != nil {
		return s.bvh.Intersect(r, tMin, tMax)
	}

	var (
		nearest Hit
		found   bool
	)

	for _, prim := range s.Primitives {
		if hit, ok := prim.Intersect(r, tMin, tMax); ok {
			nearest = hit
			tMax = hit.T
			found = true
		}
	}
	return nearest, found
}
