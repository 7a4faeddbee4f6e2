package spectral

import (
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/rgb2spec"
	"github.com/achilleasa/prism/types"
)

// RGBAlbedo is a bounded reflectance spectrum fitted to an RGB
// triple.
type RGBAlbedo struct {
	poly SigmoidPolynomial
}

// NewRGBAlbedo fits a reflectance spectrum to an untoned linear
// color. Components are clamped to [0, 1] since a reflectance cannot
// exceed one; radiometric values belong in NewRGBUnbounded or
// NewRGBIlluminant.
func NewRGBAlbedo[G colorspace.Gamut](c colorspace.Color[G, colorspace.Untoned, colorspace.LinearTF]) (Spectrum, error) {
	var g G
	table, err := rgb2spec.ForGamut(g)
	if err != nil {
		return nil, err
	}

	co := table.Lookup(c.RGB().Clamp(0, 1))
	return RGBAlbedo{poly: NewSigmoidPolynomial(co[0], co[1], co[2])}, nil
}

func (s RGBAlbedo) Value(lambda float32) float32 {
	return s.poly.Value(lambda)
}

func (s RGBAlbedo) MaxValue() float32 {
	return s.poly.MaxValue()
}

// fitUnbounded rescales an RGB triple so its dominant channel sits at
// 0.5, the well conditioned center of the fitted table, and returns
// the scale needed to undo the move at evaluation time. Black input
// reports ok false.
func fitUnbounded(table *rgb2spec.Table, rgb types.Vec3) (poly SigmoidPolynomial, scale float32, ok bool) {
	rgb = types.MaxVec3(rgb, types.Vec3{})
	m := rgb.MaxComponent()
	if m <= 0 {
		return SigmoidPolynomial{}, 0, false
	}

	scale = 2 * m
	co := table.Lookup(rgb.Div(scale))
	return NewSigmoidPolynomial(co[0], co[1], co[2]), scale, true
}

// RGBUnbounded represents arbitrary positive radiance as a scaled
// reflectance fit.
type RGBUnbounded struct {
	poly  SigmoidPolynomial
	scale float32
}

// NewRGBUnbounded fits a spectrum to an untoned linear color whose
// components may exceed one.
func NewRGBUnbounded[G colorspace.Gamut](c colorspace.Color[G, colorspace.Untoned, colorspace.LinearTF]) (Spectrum, error) {
	var g G
	table, err := rgb2spec.ForGamut(g)
	if err != nil {
		return nil, err
	}

	poly, scale, ok := fitUnbounded(table, c.RGB())
	if !ok {
		return NewConstant(0), nil
	}
	return RGBUnbounded{poly: poly, scale: scale}, nil
}

func (s RGBUnbounded) Value(lambda float32) float32 {
	return s.scale * s.poly.Value(lambda)
}

func (s RGBUnbounded) MaxValue() float32 {
	return s.scale * s.poly.MaxValue()
}

// RGBIlluminant tints the D65 daylight illuminant with an RGB color.
type RGBIlluminant struct {
	poly       SigmoidPolynomial
	scale      float32
	illuminant *DenselySampled
}

// NewRGBIlluminant fits an emission spectrum to an untoned linear
// color by modulating the normalized D65 illuminant with the fitted
// reflectance curve.
func NewRGBIlluminant[G colorspace.Gamut](c colorspace.Color[G, colorspace.Untoned, colorspace.LinearTF]) (Spectrum, error) {
	var g G
	table, err := rgb2spec.ForGamut(g)
	if err != nil {
		return nil, err
	}

	poly, scale, ok := fitUnbounded(table, c.RGB())
	if !ok {
		return NewConstant(0), nil
	}
	return RGBIlluminant{poly: poly, scale: scale, illuminant: D65Illuminant()}, nil
}

func (s RGBIlluminant) Value(lambda float32) float32 {
	return s.scale * s.poly.Value(lambda) * s.illuminant.Value(lambda)
}

func (s RGBIlluminant) MaxValue() float32 {
	return s.scale * s.poly.MaxValue() * s.illuminant.MaxValue()
}
