package renderer

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/types"
)

// Sensor integrates per-pixel radiance samples in CIE XYZ and
// develops them into gamut G pixels encoded with transfer function E.
// Render workers own disjoint pixel rows so accumulation needs no
// locking.
type Sensor[G colorspace.Gamut, E colorspace.TransferFunc] struct {
	width  uint32
	height uint32

	samplesPerPixel uint32
	exposure        float32
	toneMap         colorspace.ToneMap

	acc []colorspace.XYZ
}

// NewSensor creates a sensor for a FrameW x FrameH frame developed
// with the exposure and tone map from opts. A zero exposure counts as
// one and a nil tone map as identity.
func NewSensor[G colorspace.Gamut, E colorspace.TransferFunc](opts Options) (*Sensor[G, E], error) {
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("renderer: sensor needs non-zero frame dims; got %dx%d", opts.FrameW, opts.FrameH)
	}
	if opts.SamplesPerPixel == 0 {
		return nil, fmt.Errorf("renderer: sensor needs at least one sample per pixel")
	}

	exposure := opts.Exposure
	if exposure == 0 {
		exposure = 1
	}
	if exposure < 0 || math32.IsNaN(exposure) || math32.IsInf(exposure, 0) {
		return nil, fmt.Errorf("renderer: sensor exposure must be positive and finite; got %v", exposure)
	}

	toneMap := opts.ToneMap
	if toneMap == nil {
		toneMap = colorspace.Identity{}
	}

	return &Sensor[G, E]{
		width:           opts.FrameW,
		height:          opts.FrameH,
		samplesPerPixel: opts.SamplesPerPixel,
		exposure:        exposure,
		toneMap:         toneMap,
		acc:             make([]colorspace.XYZ, opts.FrameW*opts.FrameH),
	}, nil
}

// AddSample accumulates one radiance sample for pixel (x, y). x runs
// left to right and y top to bottom.
func (s *Sensor[G, E]) AddSample(x, y uint32, v colorspace.XYZ) {
	i := y*s.width + x
	s.acc[i].X += v.X
	s.acc[i].Y += v.Y
	s.acc[i].Z += v.Z
}

// Pixel develops pixel (x, y): the sample mean is exposed, converted
// to the target gamut, tone mapped and encoded.
func (s *Sensor[G, E]) Pixel(x, y uint32) colorspace.Color[G, colorspace.Toned, E] {
	sum := s.acc[y*s.width+x]
	w := s.exposure / float32(s.samplesPerPixel)
	xyz := colorspace.XYZ{X: sum.X * w, Y: sum.Y * w, Z: sum.Z * w}

	// Out of gamut colors can go negative after the matrix transform.
	rgb := types.MaxVec3(colorspace.FromXYZ[G](xyz).RGB(), types.Vec3{})
	linear := colorspace.NewFromVec[G](rgb)
	return colorspace.Encode[E](colorspace.ApplyToneMap(linear, s.toneMap))
}

// Image develops the full frame into an 8 bit image.
func (s *Sensor[G, E]) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(s.width), int(s.height)))
	for y := uint32(0); y < s.height; y++ {
		for x := uint32(0); x < s.width; x++ {
			rgb := s.Pixel(x, y).RGB()
			o := img.PixOffset(int(x), int(y))
			img.Pix[o+0] = quantize(rgb[0])
			img.Pix[o+1] = quantize(rgb[1])
			img.Pix[o+2] = quantize(rgb[2])
			img.Pix[o+3] = 0xff
		}
	}
	return img
}

func quantize(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
