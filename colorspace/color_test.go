package colorspace

import (
	"testing"

	"github.com/achilleasa/prism/types"
	"github.com/stretchr/testify/assert"
)

func TestColorPipelineStages(t *testing.T) {
	c := New[SRGB](4, 1, 0.25)

	toned := ApplyToneMap(c, Reinhard{})
	assert.InDelta(t, 0.8, toned.RGB()[0], 1e-6)
	assert.InDelta(t, 0.5, toned.RGB()[1], 1e-6)
	assert.InDelta(t, 0.2, toned.RGB()[2], 1e-6)

	encoded := Encode[SRGBCurve](toned)
	var curve SRGBCurve
	assert.InDelta(t, curve.Encode(0.8), encoded.RGB()[0], 1e-6)

	// Undoing the tone map recovers the original linear values.
	back := InvertToneMap(toned, Reinhard{})
	for i := 0; i < 3; i++ {
		assert.InDelta(t, c.RGB()[i], back.RGB()[i], 1e-5)
	}
}

func TestDecodeEncodedColor(t *testing.T) {
	var curve SRGBCurve
	enc := NewEncoded[SRGB, SRGBCurve](0.5, 0.25, 1)

	lin := Decode(enc)
	assert.InDelta(t, curve.Decode(0.5), lin.RGB()[0], 1e-6)
	assert.InDelta(t, curve.Decode(0.25), lin.RGB()[1], 1e-6)
	assert.InDelta(t, 1.0, lin.RGB()[2], 1e-6)
}

func TestXYZRoundTrip(t *testing.T) {
	c := New[Rec2020](0.2, 0.7, 0.4)
	back := FromXYZ[Rec2020](ToXYZ(c))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, c.RGB()[i], back.RGB()[i], 1e-5)
	}
}

func TestConvertSharedWhitepoint(t *testing.T) {
	// sRGB and DCI-P3-D65 share the D65 whitepoint, so white survives
	// the gamut change untouched.
	white := New[SRGB](1, 1, 1)
	converted := Convert[DCIP3D65](white)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0, converted.RGB()[i], 1e-4)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := New[SRGB](0.8, 0.1, 0.3)
	back := Convert[SRGB](Convert[Rec2020](c))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, c.RGB()[i], back.RGB()[i], 1e-4)
	}
}

func TestConvertPrimaryStaysInWiderGamut(t *testing.T) {
	// An sRGB primary lies inside Rec. 2020, so its converted
	// components stay non-negative.
	red := New[SRGB](1, 0, 0)
	converted := Convert[Rec2020](red)
	for i := 0; i < 3; i++ {
		assert.GreaterOrEqual(t, converted.RGB()[i], float32(-1e-4))
	}
}

func TestToneMapByName(t *testing.T) {
	tm, err := ToneMapByName("reinhard")
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, tm.Map(types.Vec3{1, 1, 1})[0], 1e-6)

	_, err = ToneMapByName("aces-filmic")
	assert.Error(t, err)
}
