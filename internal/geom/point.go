// Package geom provides the homogeneous-coordinate core used by the
// rasterizers and the presentation layer:
// - Points with a homogeneous weight (x, y, w)
// - 3x3 row-major transform matrices and their composition
// - Rotation, reflection and translation helpers
// - Mapping between logical grid units and surface pixels
package geom

import (
	"errors"
	"math"
)

var (
	// ErrInvalidMatrixShape is returned when a transform is built from a
	// coefficient list that isn't exactly 3x3.
	ErrInvalidMatrixShape = errors.New("invalid matrix shape")
	// ErrInvalidGeometry is returned for shapes or surfaces that can't be
	// rasterized or mapped (negative radii, non-finite coordinates, etc.).
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Point is a 2D point in homogeneous form. W is the homogeneous weight; points
// built with Pt have W = 1, which is what translations need to take effect.
type Point struct {
	X float64
	Y float64
	W float64
}

// Pt returns the point (x, y) with unit weight.
func Pt(x, y float64) Point { return Point{X: x, Y: y, W: 1} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.W} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.W} }

// Scale scales the x and y components, leaving the weight untouched.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.W} }

// Dist returns the Euclidean distance between p and q over all three
// components.
func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dw := p.W - q.W
	return math.Sqrt(dx*dx + dy*dy + dw*dw)
}

// Finite reports whether every component of p is a finite number.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.W) && !math.IsInf(p.W, 0)
}

// Round snaps x and y to the nearest integers (halves away from zero).
func (p Point) Round() Point {
	return Point{math.Round(p.X), math.Round(p.Y), p.W}
}

// Apply transforms p by m. Each output component is the dot product of
// (x, y, w) with the matching row of m.
func (p Point) Apply(m Matrix3) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.W,
		Y: m[3]*p.X + m[4]*p.Y + m[5]*p.W,
		W: m[6]*p.X + m[7]*p.Y + m[8]*p.W,
	}
}

// Rotate rotates p counter-clockwise by angle radians about pivot.
func (p Point) Rotate(angle float64, pivot Point) Point {
	return p.Apply(RotationAbout(angle, pivot))
}

// RotateOrigin rotates p counter-clockwise by angle radians about the origin.
func (p Point) RotateOrigin(angle float64) Point {
	return p.Apply(Rotation(angle))
}

// ReflectX mirrors p across the horizontal axis.
func (p Point) ReflectX() Point { return p.Apply(ReflectionX()) }

// ReflectY mirrors p across the vertical axis.
func (p Point) ReflectY() Point { return p.Apply(ReflectionY()) }

// SwapXY mirrors p across the y = x diagonal.
func (p Point) SwapXY() Point { return p.Apply(ReflectionXY()) }
