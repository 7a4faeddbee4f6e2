package types

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularMatrix is returned when a pivot magnitude falls below the
// caller-supplied tolerance while factoring a matrix.
var ErrSingularMatrix = errors.New("types: singular matrix")

// Mat3d is a 3x3 float64 matrix indexed as m[row][col]. The float64
// variants back offline solvers where float32 pivots would drown in
// rounding noise.
type Mat3d [3][3]float64

// Vec3d is a 3 component float64 vector.
type Vec3d [3]float64

// Mat3dFromCols assembles a matrix from three column vectors.
func Mat3dFromCols(c0, c1, c2 Vec3d) Mat3d {
	return Mat3d{
		{c0[0], c1[0], c2[0]},
		{c0[1], c1[1], c2[1]},
		{c0[2], c1[2], c2[2]},
	}
}

// MulVec multiplies the matrix with a column vector.
func (m Mat3d) MulVec(v Vec3d) Vec3d {
	return Vec3d{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Mul multiplies two matrices.
func (m Mat3d) Mul(m2 Mat3d) Mat3d {
	var out Mat3d
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = m[r][0]*m2[0][c] + m[r][1]*m2[1][c] + m[r][2]*m2[2][c]
		}
	}
	return out
}

// ToMat3 converts the matrix to its float32 representation.
func (m Mat3d) ToMat3() Mat3 {
	return Mat3{
		float32(m[0][0]), float32(m[0][1]), float32(m[0][2]),
		float32(m[1][0]), float32(m[1][1]), float32(m[1][2]),
		float32(m[2][0]), float32(m[2][1]), float32(m[2][2]),
	}
}

// ToVec3 converts the vector to its float32 representation.
func (v Vec3d) ToVec3() Vec3 {
	return Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// LUPDecompose factors m into a unit lower triangular l and an upper
// triangular u with partial (row) pivoting so that l*u equals m with
// its rows permuted by p. Factoring the identity yields l = u = I and
// p = [0 1 2]. An ErrSingularMatrix is returned if the best available
// pivot magnitude drops below epsilon.
func LUPDecompose(m Mat3d, epsilon float64) (l, u Mat3d, p [3]int, err error) {
	a := m
	p = [3]int{0, 1, 2}

	for i := 0; i < 3; i++ {
		maxA, maxRow := math.Abs(a[i][i]), i
		for k := i + 1; k < 3; k++ {
			if abs := math.Abs(a[k][i]); abs > maxA {
				maxA, maxRow = abs, k
			}
		}
		if maxA < epsilon {
			return Mat3d{}, Mat3d{}, p, fmt.Errorf("%w: pivot %d below tolerance %g", ErrSingularMatrix, i, epsilon)
		}
		if maxRow != i {
			a[i], a[maxRow] = a[maxRow], a[i]
			p[i], p[maxRow] = p[maxRow], p[i]
		}
		for j := i + 1; j < 3; j++ {
			a[j][i] /= a[i][i]
			for k := i + 1; k < 3; k++ {
				a[j][k] -= a[j][i] * a[i][k]
			}
		}
	}

	for r := 0; r < 3; r++ {
		l[r][r] = 1
		for c := 0; c < r; c++ {
			l[r][c] = a[r][c]
		}
		for c := r; c < 3; c++ {
			u[r][c] = a[r][c]
		}
	}
	return l, u, p, nil
}

// LUPSolve solves m*x = b given the factors produced by LUPDecompose
// using forward and back substitution.
func LUPSolve(l, u Mat3d, p [3]int, b Vec3d) Vec3d {
	var y Vec3d
	for i := 0; i < 3; i++ {
		y[i] = b[p[i]]
		for j := 0; j < i; j++ {
			y[i] -= l[i][j] * y[j]
		}
	}

	var x Vec3d
	for i := 2; i >= 0; i-- {
		x[i] = y[i]
		for j := i + 1; j < 3; j++ {
			x[i] -= u[i][j] * x[j]
		}
		x[i] /= u[i][i]
	}
	return x
}

// Mat3dInverse inverts m by solving for the three identity columns.
func Mat3dInverse(m Mat3d, epsilon float64) (Mat3d, error) {
	l, u, p, err := LUPDecompose(m, epsilon)
	if err != nil {
		return Mat3d{}, err
	}

	var out Mat3d
	for c := 0; c < 3; c++ {
		var e Vec3d
		e[c] = 1
		col := LUPSolve(l, u, p, e)
		out[0][c], out[1][c], out[2][c] = col[0], col[1], col[2]
	}
	return out, nil
}
