package spectral

import (
	"fmt"

	"github.com/achilleasa/prism/types"
)

// PiecewiseLinear interpolates linearly between tabulated wavelength
// and intensity pairs. Wavelengths outside the tabulated range yield
// zero.
type PiecewiseLinear struct {
	lambdas []float32
	values  []float32
	max     float32
}

// NewPiecewiseLinear builds a spectrum from parallel wavelength and
// intensity slices. The wavelengths must be strictly increasing and
// both slices must carry at least two matching entries.
func NewPiecewiseLinear(lambdas, values []float32) (*PiecewiseLinear, error) {
	if len(lambdas) != len(values) {
		return nil, fmt.Errorf("spectral: piecewise spectrum requires matching wavelength and value counts; got %d and %d", len(lambdas), len(values))
	}
	if len(lambdas) < 2 {
		return nil, fmt.Errorf("spectral: piecewise spectrum requires at least two samples; got %d", len(lambdas))
	}

	s := &PiecewiseLinear{
		lambdas: append([]float32(nil), lambdas...),
		values:  append([]float32(nil), values...),
	}
	for i, v := range s.values {
		if i > 0 && s.lambdas[i] <= s.lambdas[i-1] {
			return nil, fmt.Errorf("spectral: piecewise spectrum wavelengths must be strictly increasing; got %v after %v", s.lambdas[i], s.lambdas[i-1])
		}
		if v > s.max {
			s.max = v
		}
	}
	return s, nil
}

// NewPiecewiseLinearInterleaved builds a spectrum from interleaved
// (wavelength, value) pairs. With normalize set the intensities are
// divided by the spectrum's luminous inner product so its luminance
// integrates to one; a spectrum with zero luminance normalizes to the
// zero constant instead of dividing by zero.
func NewPiecewiseLinearInterleaved(pairs []float32, normalize bool) (Spectrum, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("spectral: interleaved spectrum data requires an even number of entries; got %d", len(pairs))
	}

	lambdas := make([]float32, len(pairs)/2)
	values := make([]float32, len(pairs)/2)
	for i := range lambdas {
		lambdas[i] = pairs[2*i]
		values[i] = pairs[2*i+1]
	}

	s, err := NewPiecewiseLinear(lambdas, values)
	if err != nil {
		return nil, err
	}
	if !normalize {
		return s, nil
	}

	norm := InnerProduct(s, Y())
	if norm == 0 {
		return NewConstant(0), nil
	}
	s.max = 0
	for i, v := range s.values {
		s.values[i] = v / norm
		if s.values[i] > s.max {
			s.max = s.values[i]
		}
	}
	// Normalized spectra back illuminants that get evaluated for every
	// hero wavelength, so trade memory for a dense memo.
	return NewDenselySampledFrom(s), nil
}

func (s *PiecewiseLinear) Value(lambda float32) float32 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	if lambda < s.lambdas[0] || lambda > s.lambdas[len(s.lambdas)-1] {
		return 0
	}
	for i := 1; i < len(s.lambdas); i++ {
		if lambda <= s.lambdas[i] {
			t := (lambda - s.lambdas[i-1]) / (s.lambdas[i] - s.lambdas[i-1])
			return types.Lerp(s.values[i-1], s.values[i], t)
		}
	}
	return 0
}

func (s *PiecewiseLinear) MaxValue() float32 {
	return s.max
}
