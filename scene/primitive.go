package scene

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/prism/types"
)

// Ray is a half line in world space. Dir is not required to be unit
// length; hit distances are expressed in multiples of it.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// At returns the point a distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit describes the nearest surface interaction found for a ray. The
// normal always faces against the incoming ray; Front records whether
// the ray arrived from the outside of the surface.
type Hit struct {
	T      float32
	Point  types.Vec3
	Normal types.Vec3
	Front  bool
	Mat    Material
}

func (h *Hit) setFaceNormal(r Ray, outward types.Vec3) {
	h.Front = r.Dir.Dot(outward) < 0
	if h.Front {
		h.Normal = outward
	} else {
		h.Normal = outward.Mul(-1)
	}
}

// Primitive is an analytic surface that can be intersected by rays.
type Primitive interface {
	// Intersect reports the nearest hit within (tMin, tMax).
	Intersect(r Ray, tMin, tMax float32) (Hit, bool)

	// Bounds returns a box enclosing the surface.
	Bounds() AABB
}

// Sphere is a full sphere described by its center and radius.
type Sphere struct {
	Center types.Vec3
	Radius float32
	Mat    Material
}

// NewSphere creates a sphere primitive.
func NewSphere(center types.Vec3, radius float32, mat Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

func (s *Sphere) Intersect(r Ray, tMin, tMax float32) (Hit, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return Hit{}, false
	}

	sqrtDisc := math32.Sqrt(disc)
	root := (-halfB - sqrtDisc) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtDisc) / a
		if root <= tMin || root >= tMax {
			return Hit{}, false
		}
	}

	hit := Hit{T: root, Point: r.At(root), Mat: s.Mat}
	hit.setFaceNormal(r, hit.Point.Sub(s.Center).Div(s.Radius))
	return hit, true
}

// Bounds implements Primitive.
func (s *Sphere) Bounds() AABB {
	ext := types.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(ext), Max: s.Center.Add(ext)}
}

// Quad is a parallelogram spanned by two edge vectors out of a corner
// point.
type Quad struct {
	Corner types.Vec3
	EdgeU  types.Vec3
	EdgeV  types.Vec3
	Mat    Material

	// Plane and edge projection terms precomputed by NewQuad.
	normal types.Vec3
	d      float32
	w      types.Vec3
}

// NewQuad creates a parallelogram primitive. The edges must not be
// parallel.
func NewQuad(corner, edgeU, edgeV types.Vec3, mat Material) *Quad {
	n := edgeU.Cross(edgeV)
	q := &Quad{
		Corner: corner,
		EdgeU:  edgeU,
		EdgeV:  edgeV,
		Mat:    mat,

		normal: n.Normalize(),
		w:      n.Div(n.Dot(n)),
	}
	q.d = q.normal.Dot(corner)
	return q
}

func (q *Quad) Intersect(r Ray, tMin, tMax float32) (Hit, bool) {
	denom := q.normal.Dot(r.Dir)
	if math32.Abs(denom) < 1e-8 {
		return Hit{}, false
	}

	t := (q.d - q.normal.Dot(r.Origin)) / denom
	if t <= tMin || t >= tMax {
		return Hit{}, false
	}

	// Project the planar hit onto the edge basis and reject points
	// outside the parallelogram.
	p := r.At(t).Sub(q.Corner)
	alpha := q.w.Dot(p.Cross(q.EdgeV))
	beta := q.w.Dot(q.EdgeU.Cross(p))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return Hit{}, false
	}

	hit := Hit{T: t, Point: r.At(t), Mat: q.Mat}
	hit.setFaceNormal(r, q.normal)
	return hit, true
}

// Bounds implements Primitive. Flat axes are padded so the box keeps
// a usable slab interval.
func (q *Quad) Bounds() AABB {
	a := q.Corner
	b := q.Corner.Add(q.EdgeU)
	c := q.Corner.Add(q.EdgeV)
	d := b.Add(q.EdgeV)

	box := AABB{
		Min: types.MinVec3(types.MinVec3(a, b), types.MinVec3(c, d)),
		Max: types.MaxVec3(types.MaxVec3(a, b), types.MaxVec3(c, d)),
	}

	const pad = 1e-4
	for axis := 0; axis < 3; axis++ {
		if box.Max[axis]-box.Min[axis] < pad {
			box.Min[axis] -= pad
			box.Max[axis] += pad
		}
	}
	return box
}
