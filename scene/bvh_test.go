package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/prism/types"
)

func TestAABBHit(t *testing.T) {
	box := AABB{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}

	assert.True(t, box.Hit(Ray{Origin: types.Vec3{0, 0, -5}, Dir: types.Vec3{0, 0, 1}}, 1e-3, math.MaxFloat32))
	assert.True(t, box.Hit(Ray{Origin: types.Vec3{}, Dir: types.Vec3{1, 0, 0}}, 1e-3, math.MaxFloat32))

	// Offset past the box extent.
	assert.False(t, box.Hit(Ray{Origin: types.Vec3{0, 2, -5}, Dir: types.Vec3{0, 0, 1}}, 1e-3, math.MaxFloat32))

	// Box behind the ray origin.
	assert.False(t, box.Hit(Ray{Origin: types.Vec3{0, 0, 5}, Dir: types.Vec3{0, 0, 1}}, 1e-3, math.MaxFloat32))

	// Entry point beyond tMax.
	assert.False(t, box.Hit(Ray{Origin: types.Vec3{0, 0, -5}, Dir: types.Vec3{0, 0, 1}}, 1e-3, 3))
}

func TestPrimitiveBounds(t *testing.T) {
	s := NewSphere(types.Vec3{1, 2, 3}, 0.5, nil)
	b := s.Bounds()
	assert.Equal(t, types.Vec3{0.5, 1.5, 2.5}, b.Min)
	assert.Equal(t, types.Vec3{1.5, 2.5, 3.5}, b.Max)

	// A planar quad gets its flat axis padded.
	q := NewQuad(types.Vec3{-1, 0, -1}, types.Vec3{2, 0, 0}, types.Vec3{0, 0, 2}, nil)
	b = q.Bounds()
	assert.Less(t, b.Min[1], float32(0))
	assert.Greater(t, b.Max[1], float32(0))
	assert.InDelta(t, -1.0, b.Min[0], 1e-5)
	assert.InDelta(t, 1.0, b.Max[2], 1e-5)
}

func TestBVHMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randCoord := func(scale float32) float32 {
		return (2*rng.Float32() - 1) * scale
	}

	var prims []Primitive
	for i := 0; i < 64; i++ {
		center := types.Vec3{randCoord(10), randCoord(10), randCoord(10)}
		prims = append(prims, NewSphere(center, 0.2+rng.Float32(), nil))
	}
	for i := 0; i < 16; i++ {
		corner := types.Vec3{randCoord(10), randCoord(10), randCoord(10)}
		prims = append(prims, NewQuad(corner, types.Vec3{1.5, 0, 0}, types.Vec3{0, 1.5, 0}, nil))
	}

	bvh := NewBVH(prims)

	for i := 0; i < 512; i++ {
		r := Ray{
			Origin: types.Vec3{randCoord(15), randCoord(15), randCoord(15)},
			Dir:    types.Vec3{randCoord(1), randCoord(1), randCoord(1)},
		}
		if r.Dir.Len() < 1e-3 {
			continue
		}

		var (
			want      Hit
			wantFound bool
		)
		tMax := float32(math.MaxFloat32)
		for _, prim := range prims {
			if hit, ok := prim.Intersect(r, 1e-3, tMax); ok {
				want = hit
				tMax = hit.T
				wantFound = true
			}
		}

		got, found := bvh.Intersect(r, 1e-3, math.MaxFloat32)
		require.Equal(t, wantFound, found, "ray %d", i)
		if found {
			assert.Equal(t, want.T, got.T, "ray %d", i)
			assert.Equal(t, want.Point, got.Point, "ray %d", i)
		}
	}
}

func TestBVHRespectsInterval(t *testing.T) {
	bvh := NewBVH([]Primitive{NewSphere(types.Vec3{0, 0, -5}, 1, nil)})
	toward := Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, -1}}

	hit, ok := bvh.Intersect(toward, 1e-3, math.MaxFloat32)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.T, 1e-5)

	_, ok = bvh.Intersect(toward, 1e-3, 3)
	assert.False(t, ok)

	// Only the far wall of the sphere is in range.
	hit, ok = bvh.Intersect(toward, 4.5, math.MaxFloat32)
	require.True(t, ok)
	assert.InDelta(t, 6.0, hit.T, 1e-5)
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil)
	_, ok := bvh.Intersect(Ray{Dir: types.Vec3{0, 0, -1}}, 1e-3, math.MaxFloat32)
	assert.False(t, ok)
	assert.Equal(t, AABB{}, bvh.Bounds())
}

func TestSceneFinalize(t *testing.T) {
	sc := &Scene{
		Primitives: []Primitive{
			NewSphere(types.Vec3{0, 0, -10}, 1, nil),
			NewSphere(types.Vec3{0, 0, -5}, 1, nil),
			NewSphere(types.Vec3{3, 0, -5}, 1, nil),
		},
	}
	sc.Finalize()
	sc.Finalize()

	hit, ok := sc.Intersect(Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 0, -1}}, 1e-3, math.MaxFloat32)
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.T, 1e-5)

	_, ok = sc.Intersect(Ray{Origin: types.Vec3{}, Dir: types.Vec3{0, 1, 0}}, 1e-3, math.MaxFloat32)
	assert.False(t, ok)
}
