package spectral

// Constant is a spectrum with the same intensity at every wavelength
// in the domain.
type Constant struct {
	c float32
}

func NewConstant(c float32) Constant {
	return Constant{c: c}
}

func (s Constant) Value(lambda float32) float32 {
	if lambda < LambdaMin || lambda > LambdaMax {
		return 0
	}
	return s.c
}

func (s Constant) MaxValue() float32 {
	return s.c
}
