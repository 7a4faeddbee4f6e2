package rgb2spec

import (
	"testing"

	"github.com/achilleasa/prism/types"
	"github.com/chewxy/math32"
)

// newSyntheticTable fills a table with its own flat coefficient
// indices. The values are multilinear along every grid axis, so a
// trilinear lookup must reproduce the continuous index exactly.
func newSyntheticTable(res int) *Table {
	t := &Table{
		Gamut:      "srgb",
		Resolution: res,
		ZNodes:     make([]float32, res),
		Coeffs:     make([]float32, 3*res*res*res*3),
	}
	for i := range t.ZNodes {
		t.ZNodes[i] = float32(types.Smoothstep(types.Smoothstep(float64(i) / float64(res-1))))
	}
	for i := range t.Coeffs {
		t.Coeffs[i] = float32(i)
	}
	return t
}

// newChannelTable fills every cell with its dominant channel index.
func newChannelTable(res int) *Table {
	t := newSyntheticTable(res)
	block := len(t.Coeffs) / 3
	for i := range t.Coeffs {
		t.Coeffs[i] = float32(i / block)
	}
	return t
}

func TestLookupUniformInput(t *testing.T) {
	table := newSyntheticTable(8)

	specs := []struct {
		in  types.Vec3
		exp float32
	}{
		{types.Vec3{0.5, 0.5, 0.5}, 0},
		{types.Vec3{0.25, 0.25, 0.25}, -0.57735027},
		{types.Vec3{0.75, 0.75, 0.75}, 0.57735027},
		{types.Vec3{0, 0, 0}, math32.Inf(-1)},
		{types.Vec3{1, 1, 1}, math32.Inf(1)},
		// Out of range uniforms clamp before inverting the sigmoid.
		{types.Vec3{-2, -2, -2}, math32.Inf(-1)},
		{types.Vec3{1.5, 1.5, 1.5}, math32.Inf(1)},
	}

	for specIndex, spec := range specs {
		got := table.Lookup(spec.in)
		if got[0] != 0 || got[1] != 0 {
			t.Fatalf("[spec %d] expected zero quadratic and linear coefficients; got %v", specIndex, got)
		}

		switch {
		case math32.IsInf(spec.exp, 0):
			if got[2] != spec.exp {
				t.Fatalf("[spec %d] expected constant coefficient %v; got %v", specIndex, spec.exp, got[2])
			}
		default:
			if math32.Abs(got[2]-spec.exp) > 1e-6 {
				t.Fatalf("[spec %d] expected constant coefficient %v; got %v", specIndex, spec.exp, got[2])
			}
		}
	}
}

func TestLookupInterpolation(t *testing.T) {
	table := newSyntheticTable(8)

	// The synthetic coefficients equal their flat index, so the lookup
	// result must match the index evaluated at the continuous grid
	// coordinates of the input.
	specs := []struct {
		descr   string
		in      types.Vec3
		maxc    int
		x, y, z float32
	}{
		{
			descr: "exact grid node, red dominant",
			in:    types.Vec3{1, 2.0 / 7, 5.0 / 7}.Mul(table.ZNodes[3]),
			maxc:  0, x: 2, y: 5, z: 3,
		},
		{
			descr: "exact grid node, green dominant",
			in:    types.Vec3{4.0 / 7, 1, 6.0 / 7}.Mul(table.ZNodes[5]),
			maxc:  1, x: 6, y: 4, z: 5,
		},
		{
			descr: "dominant channel above one clamps onto the top z slice",
			in:    types.Vec3{0.5, 0.25, 2},
			maxc:  2, x: 1.75, y: 0.875, z: 7,
		},
	}

	for specIndex, spec := range specs {
		got := table.Lookup(spec.in)
		for c := 0; c < 3; c++ {
			exp := ((((float64(spec.maxc)*8+float64(spec.z))*8+float64(spec.y))*8+float64(spec.x))*3 + float64(c))
			if math32.Abs(got[c]-float32(exp)) > 0.05 {
				t.Fatalf("[spec %d] %s: expected coefficient %d to be %v; got %v", specIndex, spec.descr, c, exp, got[c])
			}
		}
	}
}

func TestLookupDominantChannelOrder(t *testing.T) {
	table := newChannelTable(8)

	specs := []struct {
		in  types.Vec3
		exp float32
	}{
		// Ties resolve to the lowest channel index.
		{types.Vec3{0.6, 0.6, 0.2}, 0},
		{types.Vec3{0.6, 0.2, 0.6}, 0},
		{types.Vec3{0.2, 0.6, 0.6}, 1},
		{types.Vec3{0.1, 0.9, 0.3}, 1},
		{types.Vec3{0.1, 0.2, 0.9}, 2},
		// Negative components clamp to zero before the channel scan.
		{types.Vec3{-0.5, 0.4, 0.2}, 1},
	}

	for specIndex, spec := range specs {
		got := table.Lookup(spec.in)
		for c := 0; c < 3; c++ {
			if got[c] != spec.exp {
				t.Fatalf("[spec %d] expected lookup of %v to hit the maxc=%v block; got coefficients %v", specIndex, spec.in, spec.exp, got)
			}
		}
	}
}
