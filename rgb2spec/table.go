// Package rgb2spec fits and evaluates the sigmoid polynomial lookup
// tables that upsample RGB triples into full reflectance spectra. A
// table is fitted offline per gamut (see Build), serialized as a raw
// binary asset, and queried at render time with a cheap trilinear
// interpolation.
package rgb2spec

import (
	"sort"

	"github.com/achilleasa/prism/types"
	"github.com/chewxy/math32"
)

// Coefficients holds the quadratic sigmoid polynomial coefficients for
// one RGB triple, ordered highest degree first. The polynomial is
// evaluated on raw wavelengths in nanometers.
type Coefficients [3]float32

// Table is a fitted RGB to spectrum lookup table for a single gamut.
// The grid remaps RGB by its dominant component: the first axis
// selects the dominant channel, z walks the dominant intensity along
// the non-uniform ZNodes schedule and x/y walk the two remaining
// channels scaled into [0, 1].
type Table struct {
	// Gamut is the Name identifier of the gamut the table was fitted for.
	Gamut string

	// Resolution is the grid edge size.
	Resolution int

	// ZNodes holds the Resolution grid coordinates of the dominant
	// intensity axis, strictly increasing from 0 to 1.
	ZNodes []float32

	// Coeffs holds 3*Resolution^3 coefficient triples indexed by
	// dominant channel, z, y, x, component.
	Coeffs []float32
}

func (t *Table) coeff(maxc, zi, yi, xi, c int) float32 {
	res := t.Resolution
	return t.Coeffs[(((maxc*res+zi)*res+yi)*res+xi)*3+c]
}

// Lookup interpolates the polynomial coefficients for an RGB triple.
// Negative components clamp to zero and a dominant component above one
// clamps onto the table boundary, so any input yields usable
// coefficients. Uniform triples bypass the grid entirely: the sigmoid
// inverts in closed form for a constant spectrum, which keeps neutral
// colors exact instead of interpolation-limited.
func (t *Table) Lookup(rgb types.Vec3) Coefficients {
	rgb = types.MaxVec3(rgb, types.Vec3{})

	if rgb[0] == rgb[1] && rgb[1] == rgb[2] {
		v := types.Clamp(rgb[0], 0, 1)
		return Coefficients{0, 0, (v - 0.5) / math32.Sqrt(v*(1-v))}
	}

	maxc := rgb.MaxComponentIndex()
	scale := float32(t.Resolution - 1)
	x := rgb[(maxc+1)%3] / rgb[maxc] * scale
	y := rgb[(maxc+2)%3] / rgb[maxc] * scale
	z := types.Clamp(rgb[maxc], 0, 1)

	xi := int(x)
	if xi > t.Resolution-2 {
		xi = t.Resolution - 2
	}
	yi := int(y)
	if yi > t.Resolution-2 {
		yi = t.Resolution - 2
	}
	zi := sort.Search(t.Resolution-1, func(i int) bool { return t.ZNodes[i+1] > z })
	if zi > t.Resolution-2 {
		zi = t.Resolution - 2
	}

	dx := x - float32(xi)
	dy := y - float32(yi)
	dz := (z - t.ZNodes[zi]) / (t.ZNodes[zi+1] - t.ZNodes[zi])

	var out Coefficients
	for c := 0; c < 3; c++ {
		co := func(ox, oy, oz int) float32 {
			return t.coeff(maxc, zi+oz, yi+oy, xi+ox, c)
		}

		out[c] = types.Lerp(
			types.Lerp(
				types.Lerp(co(0, 0, 0), co(1, 0, 0), dx),
				types.Lerp(co(0, 1, 0), co(1, 1, 0), dx),
				dy),
			types.Lerp(
				types.Lerp(co(0, 0, 1), co(1, 0, 1), dx),
				types.Lerp(co(0, 1, 1), co(1, 1, 1), dx),
				dy),
			dz)
	}
	return out
}
