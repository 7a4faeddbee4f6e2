package colorspace

import (
	"github.com/achilleasa/prism/types"
)

// Untoned tags colors that still hold raw linear HDR values.
type Untoned struct{}

// Toned tags colors whose values have been compressed by a tone map.
type Toned struct{}

// ToneState constrains the tone stage tag of a Color.
type ToneState interface {
	Untoned | Toned
}

// XYZ is a tristimulus value in the CIE XYZ space.
type XYZ struct {
	X, Y, Z float32
}

// Vec3 returns the tristimulus components as a vector.
func (v XYZ) Vec3() types.Vec3 {
	return types.Vec3{v.X, v.Y, v.Z}
}

// Color is an RGB value tagged with the gamut it lives in, whether a
// tone map has been applied, and the transfer function encoding of its
// components. The tags are phantom type parameters: invalid stage
// transitions (encoding before tone mapping, converting gamuts on
// encoded values) fail to compile instead of silently producing wrong
// pixels.
type Color[G Gamut, T ToneState, E TransferFunc] struct {
	rgb types.Vec3
}

// RGB returns the raw component values.
func (c Color[G, T, E]) RGB() types.Vec3 {
	return c.rgb
}

// Gamut returns the gamut descriptor for this color.
func (c Color[G, T, E]) Gamut() Gamut {
	var g G
	return g
}

// New creates an untoned linear color in gamut G.
func New[G Gamut](r, g, b float32) Color[G, Untoned, LinearTF] {
	return Color[G, Untoned, LinearTF]{rgb: types.Vec3{r, g, b}}
}

// NewFromVec creates an untoned linear color in gamut G.
func NewFromVec[G Gamut](rgb types.Vec3) Color[G, Untoned, LinearTF] {
	return Color[G, Untoned, LinearTF]{rgb: rgb}
}

// NewEncoded creates an untoned color whose components carry the E
// encoding, e.g. an sRGB triple authored in an asset file.
func NewEncoded[G Gamut, E TransferFunc](r, g, b float32) Color[G, Untoned, E] {
	return Color[G, Untoned, E]{rgb: types.Vec3{r, g, b}}
}

// Decode strips the component encoding, yielding linear light.
func Decode[G Gamut, T ToneState, E TransferFunc](c Color[G, T, E]) Color[G, T, LinearTF] {
	var e E
	return Color[G, T, LinearTF]{rgb: types.Vec3{
		e.Decode(c.rgb[0]),
		e.Decode(c.rgb[1]),
		e.Decode(c.rgb[2]),
	}}
}

// Encode applies the E component encoding to a tone mapped linear
// color. Tone mapping first keeps the encoded output inside the
// curve's expected [0, 1] domain.
func Encode[E TransferFunc, G Gamut](c Color[G, Toned, LinearTF]) Color[G, Toned, E] {
	var e E
	return Color[G, Toned, E]{rgb: types.Vec3{
		e.Encode(c.rgb[0]),
		e.Encode(c.rgb[1]),
		e.Encode(c.rgb[2]),
	}}
}

// ApplyToneMap compresses an untoned linear color.
func ApplyToneMap[G Gamut](c Color[G, Untoned, LinearTF], tm ToneMap) Color[G, Toned, LinearTF] {
	return Color[G, Toned, LinearTF]{rgb: tm.Map(c.rgb)}
}

// InvertToneMap undoes an invertible tone map, returning the color to
// the untoned state.
func InvertToneMap[G Gamut](c Color[G, Toned, LinearTF], tm InvertibleToneMap) Color[G, Untoned, LinearTF] {
	return Color[G, Untoned, LinearTF]{rgb: tm.Unmap(c.rgb)}
}

// ToXYZ converts an untoned linear color to XYZ via the gamut matrix.
func ToXYZ[G Gamut](c Color[G, Untoned, LinearTF]) XYZ {
	var g G
	v := g.RGBToXYZ().MulVec3(c.rgb)
	return XYZ{X: v[0], Y: v[1], Z: v[2]}
}

// FromXYZ converts an XYZ value to untoned linear RGB in gamut G.
func FromXYZ[G Gamut](v XYZ) Color[G, Untoned, LinearTF] {
	var g G
	return Color[G, Untoned, LinearTF]{rgb: g.XYZToRGB().MulVec3(v.Vec3())}
}

// Convert moves an untoned linear color into another gamut through
// XYZ. The conversion is explicit so cross-gamut flow stays auditable
// at call sites.
func Convert[To Gamut, From Gamut](c Color[From, Untoned, LinearTF]) Color[To, Untoned, LinearTF] {
	return FromXYZ[To](ToXYZ(c))
}
