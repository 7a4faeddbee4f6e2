package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackbodyNonPositiveTemperature(t *testing.T) {
	for _, kelvin := range []float32{0, -100} {
		b := NewBlackbody(kelvin)
		assert.Zero(t, b.Value(500), "kelvin %v", kelvin)
		assert.Zero(t, b.MaxValue(), "kelvin %v", kelvin)
	}
}

func TestBlackbodySolarPeak(t *testing.T) {
	b := NewBlackbody(5778)

	// Wien's law puts the 5778K peak at 501.5nm, inside the visible
	// domain, so the normalized curve tops out at one.
	assert.InDelta(t, 1.0, b.MaxValue(), 1e-6)
	assert.InDelta(t, 1.0, b.Value(501), 0.01)
	assert.Less(t, b.Value(360), b.Value(501))
	assert.Less(t, b.Value(830), b.Value(501))
	assert.Zero(t, b.Value(300))
}

func TestBlackbodyPeakOutsideDomain(t *testing.T) {
	b := NewBlackbody(2000)

	// A 2000K radiator peaks at 1449nm; inside the visible domain its
	// emission keeps rising, so the red edge carries the maximum.
	assert.InDelta(t, 1.0, b.Value(830), 1e-6)
	assert.InDelta(t, 1.0, b.MaxValue(), 1e-6)
	assert.Less(t, b.Value(360), float32(0.05))
}
