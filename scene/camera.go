package scene

import (
	"github.com/chewxy/math32"

	"github.com/achilleasa/prism/types"
)

// Camera is a pinhole camera described by its position, the point it
// looks at and a vertical field of view. SetupProjection derives the
// image plane basis once; ray generation afterwards is pure
// arithmetic and safe to call from any worker.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	lowerLeft  types.Vec3
	horizontal types.Vec3
	vertical   types.Vec3
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// SetupProjection computes the image plane basis for the given
// aspect ratio. It must be called before Ray whenever the position,
// orientation or FOV change.
func (c *Camera) SetupProjection(aspect float32) {
	theta := c.FOV * math32.Pi / 180
	halfH := math32.Tan(theta / 2)
	halfW := aspect * halfH

	back := c.Position.Sub(c.LookAt).Normalize()
	right := c.Up.Cross(back).Normalize()
	up := back.Cross(right)

	c.lowerLeft = c.Position.Sub(right.Mul(halfW)).Sub(up.Mul(halfH)).Sub(back)
	c.horizontal = right.Mul(2 * halfW)
	c.vertical = up.Mul(2 * halfH)
}

// Ray maps normalized film coordinates in [0, 1]^2 to a primary ray.
// s runs left to right and t bottom to top.
func (c *Camera) Ray(s, t float32) Ray {
	target := c.lowerLeft.Add(c.horizontal.Mul(s)).Add(c.vertical.Mul(t))
	return Ray{Origin: c.Position, Dir: target.Sub(c.Position)}
}
