package spectral

import (
	"github.com/chewxy/math32"
)

const denseSamples = int(LambdaMax - LambdaMin)

// DenselySampled memoizes another spectrum at every whole nanometer.
// It trades a fixed 470 entry table for constant time lookups, which
// pays off for analytic spectra that are expensive to evaluate.
type DenselySampled struct {
	values [denseSamples]float32
	max    float32
}

// NewDenselySampledFrom tabulates the given spectrum.
func NewDenselySampledFrom(s Spectrum) *DenselySampled {
	d := &DenselySampled{}
	for i := range d.values {
		v := s.Value(LambdaMin + float32(i))
		d.values[i] = v
		if v > d.max {
			d.max = v
		}
	}
	return d
}

// Value answers with the tabulated intensity at the nearest whole
// nanometer. The table covers [LambdaMin, LambdaMax); wavelengths that
// round past its last entry yield zero.
func (d *DenselySampled) Value(lambda float32) float32 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	i := int(math32.Round(lambda - LambdaMin))
	if i >= denseSamples {
		return 0
	}
	return d.values[i]
}

func (d *DenselySampled) MaxValue() float32 {
	return d.max
}
