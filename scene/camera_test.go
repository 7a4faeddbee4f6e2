package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/achilleasa/prism/types"
)

func TestCameraCenterRayPointsAtTarget(t *testing.T) {
	c := NewCamera(45)
	c.Position = types.Vec3{0, 1, 3}
	c.LookAt = types.Vec3{0, 1, 0}
	c.SetupProjection(2)

	r := c.Ray(0.5, 0.5)
	assert.Equal(t, c.Position, r.Origin)

	dir := r.Dir.Normalize()
	want := c.LookAt.Sub(c.Position).Normalize()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], dir[i], 1e-6, "component %d", i)
	}
}

func TestCameraFOVSpansImagePlane(t *testing.T) {
	c := NewCamera(90)
	c.SetupProjection(1)

	axis := c.LookAt.Sub(c.Position).Normalize()
	top := c.Ray(0.5, 1).Dir.Normalize()
	bottom := c.Ray(0.5, 0).Dir.Normalize()

	// The edge rays lean half the vertical field of view off axis.
	assert.InDelta(t, math32.Cos(math32.Pi/4), top.Dot(axis), 1e-5)
	assert.InDelta(t, math32.Cos(math32.Pi/4), bottom.Dot(axis), 1e-5)
	assert.Positive(t, top[1])
	assert.Negative(t, bottom[1])
}

func TestCameraAspectWidensHorizontalSpread(t *testing.T) {
	c := NewCamera(90)
	c.SetupProjection(2)

	axis := c.LookAt.Sub(c.Position).Normalize()
	right := c.Ray(1, 0.5).Dir.Normalize()

	// halfW = aspect*tan(fov/2) = 2, so the edge ray leans two units
	// sideways per unit forward.
	assert.InDelta(t, 1/math32.Sqrt(5), right.Dot(axis), 1e-5)
	assert.Positive(t, right[0])
}
