package colorspace

import (
	"fmt"

	"github.com/chewxy/math32"
)

// TransferFunc converts between linear light and display-encoded
// component values. Encode applies the inverse EOTF (linear to
// display) and Decode the EOTF (display to linear); the two compose to
// the identity within float32 tolerance.
type TransferFunc interface {
	Name() string
	Encode(c float32) float32
	Decode(c float32) float32
}

// LinearTF leaves component values untouched. It doubles as the
// encoding tag for scene-linear color spaces such as the ACES family.
type LinearTF struct{}

func (LinearTF) Name() string { return "linear" }
func (LinearTF) Encode(c float32) float32 { return c }
func (LinearTF) Decode(c float32) float32 { return c }

// SRGBCurve is the piecewise sRGB transfer function.
type SRGBCurve struct{}

func (SRGBCurve) Name() string { return "srgb" }

func (SRGBCurve) Encode(c float32) float32 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math32.Pow(c, 1/2.4) - 0.055
}

func (SRGBCurve) Decode(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// Rec709Curve is the ITU-R BT.709 transfer function, shared by the
// Rec. 2020 color space.
type Rec709Curve struct{}

func (Rec709Curve) Name() string { return "rec-709" }

func (Rec709Curve) Encode(c float32) float32 {
	if c < 0.018 {
		return 4.5 * c
	}
	return 1.099*math32.Pow(c, 0.45) - 0.099
}

func (Rec709Curve) Decode(c float32) float32 {
	if c < 0.081 {
		return c / 4.5
	}
	return math32.Pow((c+0.099)/1.099, 1/0.45)
}

// Gamma22 is a pure 2.2 power curve.
type Gamma22 struct{}

func (Gamma22) Name() string { return "gamma-2.2" }
func (Gamma22) Encode(c float32) float32 { return math32.Pow(c, 1/2.2) }
func (Gamma22) Decode(c float32) float32 { return math32.Pow(c, 2.2) }

// Gamma24 is a pure 2.4 power curve.
type Gamma24 struct{}

func (Gamma24) Name() string { return "gamma-2.4" }
func (Gamma24) Encode(c float32) float32 { return math32.Pow(c, 1/2.4) }
func (Gamma24) Decode(c float32) float32 { return math32.Pow(c, 2.4) }

// Gamma26 is a pure 2.6 power curve, used by P3-D65 projection setups.
type Gamma26 struct{}

func (Gamma26) Name() string { return "gamma-2.6" }
func (Gamma26) Encode(c float32) float32 { return math32.Pow(c, 1/2.6) }
func (Gamma26) Decode(c float32) float32 { return math32.Pow(c, 2.6) }

// AdobeRGBCurve is the Adobe RGB (1998) power curve with its exact
// 563/256 exponent.
type AdobeRGBCurve struct{}

const adobeGamma = 563.0 / 256.0

func (AdobeRGBCurve) Name() string { return "adobe-rgb" }
func (AdobeRGBCurve) Encode(c float32) float32 { return math32.Pow(c, 1/adobeGamma) }
func (AdobeRGBCurve) Decode(c float32) float32 { return math32.Pow(c, adobeGamma) }

// AllTransferFuncs lists every supported transfer function.
func AllTransferFuncs() []TransferFunc {
	return []TransferFunc{
		LinearTF{}, SRGBCurve{}, Rec709Curve{},
		Gamma22{}, Gamma24{}, Gamma26{}, AdobeRGBCurve{},
	}
}

// TransferFuncByName resolves a transfer function from its Name
// identifier.
func TransferFuncByName(name string) (TransferFunc, error) {
	for _, tf := range AllTransferFuncs() {
		if tf.Name() == name {
			return tf, nil
		}
	}
	return nil, fmt.Errorf("colorspace: unknown transfer function %q", name)
}
