package scene

import (
	"github.com/achilleasa/prism/colorspace"
	"github.com/achilleasa/prism/spectral"
	"github.com/achilleasa/prism/types"
)

// CornellBox assembles the classic box scene that ships as a built-in.
// The left wall is red, the right wall green, and a warm area light
// hangs just below the ceiling. One sphere is a mirror, the other a
// dispersive glass ball with BK7-like constants.
func CornellBox() *Scene {
	white := &Lambert{Albedo: mustSpectrum(spectral.NewRGBAlbedo(colorspace.New[colorspace.SRGB](0.73, 0.73, 0.73)))}
	red := &Lambert{Albedo: mustSpectrum(spectral.NewRGBAlbedo(colorspace.New[colorspace.SRGB](0.65, 0.05, 0.05)))}
	green := &Lambert{Albedo: mustSpectrum(spectral.NewRGBAlbedo(colorspace.New[colorspace.SRGB](0.12, 0.45, 0.15)))}
	silver := &Metal{Reflectance: mustSpectrum(spectral.NewRGBAlbedo(colorspace.New[colorspace.SRGB](0.9, 0.9, 0.9)))}

	camera := NewCamera(40)
	camera.Position = types.Vec3{0, 1, 3.9}
	camera.LookAt = types.Vec3{0, 1, 0}

	return &Scene{
		Camera: camera,
		Primitives: []Primitive{
			// floor, ceiling and back wall
			NewQuad(types.Vec3{-1, 0, -1}, types.Vec3{2, 0, 0}, types.Vec3{0, 0, 2}, white),
			NewQuad(types.Vec3{-1, 2, -1}, types.Vec3{2, 0, 0}, types.Vec3{0, 0, 2}, white),
			NewQuad(types.Vec3{-1, 0, -1}, types.Vec3{2, 0, 0}, types.Vec3{0, 2, 0}, white),
			// colored side walls
			NewQuad(types.Vec3{-1, 0, -1}, types.Vec3{0, 0, 2}, types.Vec3{0, 2, 0}, red),
			NewQuad(types.Vec3{1, 0, -1}, types.Vec3{0, 0, 2}, types.Vec3{0, 2, 0}, green),
			// area light just below the ceiling
			NewQuad(types.Vec3{-0.3, 1.998, -0.3}, types.Vec3{0.6, 0, 0}, types.Vec3{0, 0, 0.6},
				&Emissive{Radiance: spectral.NewBlackbody(5000), Scale: 15}),
			// mirror and dispersive glass spheres
			NewSphere(types.Vec3{-0.45, 0.4, -0.35}, 0.4, silver),
			NewSphere(types.Vec3{0.45, 0.4, 0.3}, 0.4, &Dielectric{IOR: 1.5046, CauchyB: 0.0042}),
		},
	}
}

// mustSpectrum unwraps spectrum constructors with known-good inputs.
func mustSpectrum(s spectral.Spectrum, err error) spectral.Spectrum {
	if err != nil {
		panic(err)
	}
	return s
}
