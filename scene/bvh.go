package scene

import (
	"sort"

	"github.com/achilleasa/prism/types"
)

// AABB is an axis aligned bounding box.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Extend grows the box so that it also encloses other.
func (b AABB) Extend(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Center returns the box centroid.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Hit runs a slab test and reports whether r crosses the box within
// (tMin, tMax). The test is conservative; rays that graze a box edge
// may be reported as crossing.
func (b AABB) Hit(r Ray, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Dir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// bvhNode is a node in the flattened hierarchy. Interior nodes store
// the indices of their children; leaves set left to -1 and store a
// range into the primitive list instead.
type bvhNode struct {
	bounds AABB
	left   int32
	right  int32
	first  int32
	count  int32
}

// leafSize caps the number of primitives stored per leaf.
const leafSize = 2

// BVH is a bounding volume hierarchy over a primitive list. It is
// immutable once built and is shared between render workers without
// locking.
type BVH struct {
	prims []Primitive
	nodes []bvhNode
}

// NewBVH builds a hierarchy over prims by recursively splitting the
// primitive list at the median of its longest bounding axis. The input
// slice is copied and left unmodified.
func NewBVH(prims []Primitive) *BVH {
	b := &BVH{
		prims: append([]Primitive(nil), prims...),
		nodes: make([]bvhNode, 0, 2*len(prims)),
	}
	if len(b.prims) > 0 {
		b.build(0, int32(len(b.prims)))
	}
	return b
}

func (b *BVH) build(first, count int32) int32 {
	node := bvhNode{left: -1, first: first, count: count}
	node.bounds = b.prims[first].Bounds()
	for i := first + 1; i < first+count; i++ {
		node.bounds = node.bounds.Extend(b.prims[i].Bounds())
	}

	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	if count <= leafSize {
		return idx
	}

	size := node.bounds.Max.Sub(node.bounds.Min)
	axis := 0
	if size[1] > size[axis] {
		axis = 1
	}
	if size[2] > size[axis] {
		axis = 2
	}

	seg := b.prims[first : first+count]
	sort.Slice(seg, func(i, j int) bool {
		return seg[i].Bounds().Center()[axis] < seg[j].Bounds().Center()[axis]
	})

	half := count / 2
	left := b.build(first, half)
	right := b.build(first+half, count-half)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	b.nodes[idx].count = 0
	return idx
}

// Bounds returns the box enclosing every primitive in the hierarchy.
func (b *BVH) Bounds() AABB {
	if len(b.nodes) == 0 {
		return AABB{}
	}
	return b.nodes[0].bounds
}

// Intersect implements Primitive, reporting the nearest hit within
// (tMin, tMax).
func (b *BVH) Intersect(r Ray, tMin, tMax float32) (Hit, bool) {
	if len(b.nodes) == 0 {
		return Hit{}, false
	}

	var (
		nearest Hit
		found   bool
		stack   [64]int32
	)

	sp := 0
	stack[sp] = 0
	for sp >= 0 {
		node := &b.nodes[stack[sp]]
		sp--

		if !node.bounds.Hit(r, tMin, tMax) {
			continue
		}
		if node.left < 0 {
			for i := node.first; i < node.first+node.count; i++ {
				if hit, ok := b.prims[i].Intersect(r, tMin, tMax); ok {
					nearest = hit
					tMax = hit.T
					found = true
				}
			}
			continue
		}

		sp++
		stack[sp] = node.left
		sp++
		stack[sp] = node.right
	}
	return nearest, found
}
