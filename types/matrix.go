package types

import (
	"golang.org/x/image/math/f32"
)

// Mat3 is a 3x3 float32 matrix. Elements are stored in row-major
// order, i.e. m[3*row+col].
type Mat3 f32.Mat3

// Ident3 returns a 3x3 identity matrix.
func Ident3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols assembles a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0[0], c1[0], c2[0],
		c0[1], c1[1], c2[1],
		c0[2], c1[2], c2[2],
	}
}

// MulVec3 multiplies the matrix with a column vector.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Mul multiplies two matrices.
func (m Mat3) Mul(m2 Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[3*r+c] = m[3*r]*m2[c] + m[3*r+1]*m2[3+c] + m[3*r+2]*m2[6+c]
		}
	}
	return out
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Row returns matrix row r as a vector.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[3*r], m[3*r+1], m[3*r+2]}
}
