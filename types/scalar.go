package types

import "golang.org/x/exp/constraints"

// Lerp linearly interpolates between a and b.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// Clamp limits v to the [min, max] range.
func Clamp[T constraints.Float](v, min, max T) T {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Smoothstep evaluates the cubic 3x^2 - 2x^3. Inputs are expected to
// already lie in [0, 1].
func Smoothstep[T constraints.Float](x T) T {
	return x * x * (3 - 2*x)
}

// Sqr squares x.
func Sqr[T constraints.Float](x T) T {
	return x * x
}
