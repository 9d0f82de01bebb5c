package geom

import (
	"fmt"
	"math"
)

// Matrix3 is a 3x3 transform in row-major order:
//
//	[ m0 m1 m2 ]
//	[ m3 m4 m5 ]
//	[ m6 m7 m8 ]
//
// where (x', y', w') = (m0*x + m1*y + m2*w, m3*x + m4*y + m5*w, m6*x + m7*y + m8*w).
type Matrix3 [9]float64

// NewMatrix3 builds a matrix from a row-major coefficient list, which must
// hold exactly nine entries.
func NewMatrix3(coeffs []float64) (Matrix3, error) {
	if len(coeffs) != 9 {
		return Matrix3{}, fmt.Errorf("%w: want 9 coefficients, got %d", ErrInvalidMatrixShape, len(coeffs))
	}
	var m Matrix3
	copy(m[:], coeffs)
	return m, nil
}

func Identity() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func Translation(tx, ty float64) Matrix3 {
	return Matrix3{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

func Scaling(sx, sy float64) Matrix3 {
	return Matrix3{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Rotation returns a counter-clockwise rotation by angle radians about the
// origin.
func Rotation(angle float64) Matrix3 {
	sin, cos := math.Sincos(angle)
	return Matrix3{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// RotationAbout returns a rotation by angle radians about pivot: translate the
// pivot to the origin, rotate, translate back.
func RotationAbout(angle float64, pivot Point) Matrix3 {
	return Compose(
		Translation(-pivot.X, -pivot.Y),
		Rotation(angle),
		Translation(pivot.X, pivot.Y),
	)
}

// ReflectionX mirrors across the horizontal axis, diag(1, -1, 1).
func ReflectionX() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, -1, 0,
		0, 0, 1,
	}
}

// ReflectionY mirrors across the vertical axis, diag(-1, 1, 1).
func ReflectionY() Matrix3 {
	return Matrix3{
		-1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// ReflectionXY mirrors across the y = x diagonal.
func ReflectionXY() Matrix3 {
	return Matrix3{
		0, 1, 0,
		1, 0, 0,
		0, 0, 1,
	}
}

// Then returns the transform that applies m and then n.
func (m Matrix3) Then(n Matrix3) Matrix3 {
	var out Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row*3+col] = n[row*3]*m[col] + n[row*3+1]*m[3+col] + n[row*3+2]*m[6+col]
		}
	}
	return out
}

// Compose returns the transform equivalent to applying each of ms in order:
// p.Apply(Compose(a, b)) == p.Apply(a).Apply(b).
func Compose(ms ...Matrix3) Matrix3 {
	out := Identity()
	for _, m := range ms {
		out = out.Then(m)
	}
	return out
}

// Inv returns the inverse transform. Returns an error if m is singular.
func (m Matrix3) Inv() (Matrix3, error) {
	c00 := m[4]*m[8] - m[5]*m[7]
	c01 := m[5]*m[6] - m[3]*m[8]
	c02 := m[3]*m[7] - m[4]*m[6]
	det := m[0]*c00 + m[1]*c01 + m[2]*c02
	if math.Abs(det) < 1e-12 {
		return Matrix3{}, fmt.Errorf("%w: matrix is not invertible (determinant ≈ 0)", ErrInvalidGeometry)
	}
	return Matrix3{
		c00 / det, (m[2]*m[7] - m[1]*m[8]) / det, (m[1]*m[5] - m[2]*m[4]) / det,
		c01 / det, (m[0]*m[8] - m[2]*m[6]) / det, (m[2]*m[3] - m[0]*m[5]) / det,
		c02 / det, (m[1]*m[6] - m[0]*m[7]) / det, (m[0]*m[4] - m[1]*m[3]) / det,
	}, nil
}
