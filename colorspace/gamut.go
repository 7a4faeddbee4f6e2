// Package colorspace models display color handling for the render
// pipeline: RGB working gamuts, tone mapping and transfer function
// encoding. Pipeline stages are tracked at the type level so that a
// color value always carries its gamut, tone state and encoding.
package colorspace

import (
	"fmt"

	"github.com/achilleasa/prism/types"
)

// Primaries captures the xy chromaticities that define an RGB gamut.
type Primaries struct {
	Red   types.Vec2
	Green types.Vec2
	Blue  types.Vec2
	White types.Vec2
}

// xyToXYZ lifts an xy chromaticity to XYZ with unit luminance.
func xyToXYZ(xy types.Vec2) types.Vec3d {
	if xy[1] == 0 {
		return types.Vec3d{}
	}
	x, y := float64(xy[0]), float64(xy[1])
	return types.Vec3d{x / y, 1, (1 - x - y) / y}
}

// WhitepointXYZ returns the XYZ coordinates of the gamut whitepoint
// with unit luminance.
func (p Primaries) WhitepointXYZ() types.Vec3d {
	return xyToXYZ(p.White)
}

// Matrices derives the RGB to XYZ conversion matrix and its inverse
// from the primary chromaticities. Columns are the primaries lifted to
// XYZ and scaled so that (1,1,1) maps to the whitepoint.
func (p Primaries) Matrices() (rgbToXYZ, xyzToRGB types.Mat3d, err error) {
	prim := types.Mat3dFromCols(xyToXYZ(p.Red), xyToXYZ(p.Green), xyToXYZ(p.Blue))

	primInv, err := types.Mat3dInverse(prim, 1e-15)
	if err != nil {
		return types.Mat3d{}, types.Mat3d{}, fmt.Errorf("colorspace: degenerate primaries: %v", err)
	}
	scale := primInv.MulVec(p.WhitepointXYZ())

	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			rgbToXYZ[r][c] = prim[r][c] * scale[c]
		}
	}
	xyzToRGB, err = types.Mat3dInverse(rgbToXYZ, 1e-15)
	if err != nil {
		return types.Mat3d{}, types.Mat3d{}, fmt.Errorf("colorspace: degenerate primaries: %v", err)
	}
	return rgbToXYZ, xyzToRGB, nil
}

// Gamut describes an RGB working gamut. Implementations are zero-size
// types whose conversion matrices are derived once at package
// initialization and shared read-only afterwards.
type Gamut interface {
	// Name returns a stable lower-case identifier used for config
	// values and table asset file names.
	Name() string

	// Primaries returns the defining chromaticities.
	Primaries() Primaries

	// RGBToXYZ returns the matrix mapping linear gamut RGB to XYZ.
	RGBToXYZ() types.Mat3

	// XYZToRGB returns the matrix mapping XYZ to linear gamut RGB.
	XYZToRGB() types.Mat3

	// WhitepointXYZ returns the whitepoint in XYZ with unit luminance.
	WhitepointXYZ() types.Vec3
}

type derivedGamut struct {
	rgbToXYZ types.Mat3
	xyzToRGB types.Mat3
	white    types.Vec3
}

func mustDerive(name string, p Primaries) derivedGamut {
	m, inv, err := p.Matrices()
	if err != nil {
		panic(fmt.Sprintf("colorspace: deriving %s gamut matrices: %v", name, err))
	}
	return derivedGamut{
		rgbToXYZ: m.ToMat3(),
		xyzToRGB: inv.ToMat3(),
		white:    p.WhitepointXYZ().ToVec3(),
	}
}

var (
	srgbPrimaries = Primaries{
		Red:   types.XY(0.64, 0.33),
		Green: types.XY(0.30, 0.60),
		Blue:  types.XY(0.15, 0.06),
		White: types.XY(0.3127, 0.3290),
	}
	dciP3D65Primaries = Primaries{
		Red:   types.XY(0.680, 0.320),
		Green: types.XY(0.265, 0.690),
		Blue:  types.XY(0.150, 0.060),
		White: types.XY(0.3127, 0.3290),
	}
	adobeRGBPrimaries = Primaries{
		Red:   types.XY(0.64, 0.33),
		Green: types.XY(0.21, 0.71),
		Blue:  types.XY(0.15, 0.06),
		White: types.XY(0.3127, 0.3290),
	}
	rec2020Primaries = Primaries{
		Red:   types.XY(0.708, 0.292),
		Green: types.XY(0.170, 0.797),
		Blue:  types.XY(0.131, 0.046),
		White: types.XY(0.3127, 0.3290),
	}
	acesCgPrimaries = Primaries{
		Red:   types.XY(0.713, 0.293),
		Green: types.XY(0.165, 0.830),
		Blue:  types.XY(0.128, 0.044),
		White: types.XY(0.32168, 0.33767),
	}
	aces20651Primaries = Primaries{
		Red:   types.XY(0.7347, 0.2653),
		Green: types.XY(0.0, 1.0),
		Blue:  types.XY(0.0001, -0.0770),
		White: types.XY(0.32168, 0.33767),
	}

	srgbGamut      = mustDerive("srgb", srgbPrimaries)
	dciP3D65Gamut  = mustDerive("dci-p3-d65", dciP3D65Primaries)
	adobeRGBGamut  = mustDerive("adobe-rgb", adobeRGBPrimaries)
	rec2020Gamut   = mustDerive("rec-2020", rec2020Primaries)
	acesCgGamut    = mustDerive("aces-cg", acesCgPrimaries)
	aces20651Gamut = mustDerive("aces-2065-1", aces20651Primaries)
)

// SRGB is the sRGB / Rec. 709 gamut with a D65 whitepoint.
type SRGB struct{}

func (SRGB) Name() string              { return "srgb" }
func (SRGB) Primaries() Primaries      { return srgbPrimaries }
func (SRGB) RGBToXYZ() types.Mat3      { return srgbGamut.rgbToXYZ }
func (SRGB) XYZToRGB() types.Mat3      { return srgbGamut.xyzToRGB }
func (SRGB) WhitepointXYZ() types.Vec3 { return srgbGamut.white }

// DCIP3D65 is the DCI-P3 gamut referenced to a D65 whitepoint, as used
// by Display P3 and P3-D65 color spaces.
type DCIP3D65 struct{}

func (DCIP3D65) Name() string              { return "dci-p3-d65" }
func (DCIP3D65) Primaries() Primaries      { return dciP3D65Primaries }
func (DCIP3D65) RGBToXYZ() types.Mat3      { return dciP3D65Gamut.rgbToXYZ }
func (DCIP3D65) XYZToRGB() types.Mat3      { return dciP3D65Gamut.xyzToRGB }
func (DCIP3D65) WhitepointXYZ() types.Vec3 { return dciP3D65Gamut.white }

// AdobeRGB is the Adobe RGB (1998) gamut.
type AdobeRGB struct{}

func (AdobeRGB) Name() string              { return "adobe-rgb" }
func (AdobeRGB) Primaries() Primaries      { return adobeRGBPrimaries }
func (AdobeRGB) RGBToXYZ() types.Mat3      { return adobeRGBGamut.rgbToXYZ }
func (AdobeRGB) XYZToRGB() types.Mat3      { return adobeRGBGamut.xyzToRGB }
func (AdobeRGB) WhitepointXYZ() types.Vec3 { return adobeRGBGamut.white }

// Rec2020 is the ITU-R BT.2020 wide gamut.
type Rec2020 struct{}

func (Rec2020) Name() string              { return "rec-2020" }
func (Rec2020) Primaries() Primaries      { return rec2020Primaries }
func (Rec2020) RGBToXYZ() types.Mat3      { return rec2020Gamut.rgbToXYZ }
func (Rec2020) XYZToRGB() types.Mat3      { return rec2020Gamut.xyzToRGB }
func (Rec2020) WhitepointXYZ() types.Vec3 { return rec2020Gamut.white }

// ACEScg is the ACEScg (AP1) working gamut.
type ACEScg struct{}

func (ACEScg) Name() string              { return "aces-cg" }
func (ACEScg) Primaries() Primaries      { return acesCgPrimaries }
func (ACEScg) RGBToXYZ() types.Mat3      { return acesCgGamut.rgbToXYZ }
func (ACEScg) XYZToRGB() types.Mat3      { return acesCgGamut.xyzToRGB }
func (ACEScg) WhitepointXYZ() types.Vec3 { return acesCgGamut.white }

// ACES20651 is the ACES2065-1 (AP0) archival gamut.
type ACES20651 struct{}

func (ACES20651) Name() string              { return "aces-2065-1" }
func (ACES20651) Primaries() Primaries      { return aces20651Primaries }
func (ACES20651) RGBToXYZ() types.Mat3      { return aces20651Gamut.rgbToXYZ }
func (ACES20651) XYZToRGB() types.Mat3      { return aces20651Gamut.xyzToRGB }
func (ACES20651) WhitepointXYZ() types.Vec3 { return aces20651Gamut.white }

// AllGamuts lists every supported gamut.
func AllGamuts() []Gamut {
	return []Gamut{SRGB{}, DCIP3D65{}, AdobeRGB{}, Rec2020{}, ACEScg{}, ACES20651{}}
}

// GamutByName resolves a gamut from its Name identifier.
func GamutByName(name string) (Gamut, error) {
	for _, g := range AllGamuts() {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("colorspace: unknown gamut %q", name)
}
