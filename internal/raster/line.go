// Package raster implements the two incremental rasterizers: Bresenham's
// line algorithm and the midpoint circle algorithm. Both are pure functions
// from grid-space geometry to an ordered sequence of lattice points.
package raster

import (
	"fmt"
	"math"
	"slices"

	"github.com/irfansharif/pixelstep/internal/geom"
)

const (
	// MaxSpan bounds the number of lattice steps a single rasterization may
	// take, along either axis.
	MaxSpan = 1 << 20
	// MaxCoord bounds the magnitude of any input coordinate.
	MaxCoord = 1 << 40
)

// Endpoints controls whether a segment's own endpoints appear in its
// rasterization.
type Endpoints int

const (
	ExcludeEndpoints Endpoints = iota // interior points only
	IncludeEndpoints                  // interior points plus both endpoints
)

func (e Endpoints) String() string {
	switch e {
	case ExcludeEndpoints:
		return "exclusive"
	case IncludeEndpoints:
		return "inclusive"
	default:
		return "unknown"
	}
}

// Line is a segment between two grid points.
type Line struct {
	P1, P2 geom.Point
}

// NewLine returns the segment p1-p2, rejecting non-finite endpoints.
func NewLine(p1, p2 geom.Point) (Line, error) {
	if err := checkPoint(p1); err != nil {
		return Line{}, err
	}
	if err := checkPoint(p2); err != nil {
		return Line{}, err
	}
	return Line{P1: geom.Pt(p1.X, p1.Y), P2: geom.Pt(p2.X, p2.Y)}, nil
}

// Points rasterizes the segment, see LinePoints.
func (l Line) Points(e Endpoints) ([]geom.Point, error) {
	return LinePoints(l.P1, l.P2, e)
}

// LinePoints returns the lattice points on the segment from p1 to p2, ordered
// from p1 towards p2. Endpoints are snapped to the nearest lattice points
// first. The result is the same sequence, reversed, when p1 and p2 are
// swapped.
func LinePoints(p1, p2 geom.Point, e Endpoints) ([]geom.Point, error) {
	if err := checkPoint(p1); err != nil {
		return nil, err
	}
	if err := checkPoint(p2); err != nil {
		return nil, err
	}

	a, b := snap(geom.Pt(p1.X, p1.Y)), snap(geom.Pt(p2.X, p2.Y))
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		// Always sweep in the same direction so that ties in the error term
		// resolve identically regardless of argument order.
		pts, err := sweep(b, a, e)
		if err != nil {
			return nil, err
		}
		slices.Reverse(pts)
		return pts, nil
	}
	return sweep(a, b, e)
}

// sweep normalizes segment ab into the shallow, x-increasing, y-decreasing
// case, runs the integer error loop, and maps every produced point back.
func sweep(a, b geom.Point, e Endpoints) ([]geom.Point, error) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if span := math.Max(math.Abs(dx), math.Abs(dy)); span > MaxSpan {
		return nil, fmt.Errorf("%w: segment spans %v steps (max %d)", geom.ErrInvalidGeometry, span, MaxSpan)
	}

	// Each normalization step records its own inverse; undo is applied
	// last-to-first.
	var undo []geom.Matrix3
	if math.Abs(dx) < math.Abs(dy) {
		angle := -math.Pi / 2 * sign(dy)
		r := geom.Rotation(angle)
		a, b = snap(a.Apply(r)), snap(b.Apply(r))
		undo = append(undo, geom.Rotation(-angle))
	}
	if a.Y < b.Y {
		a, b = a.ReflectX(), b.ReflectX()
		undo = append(undo, geom.ReflectionX())
	}
	if a.X > b.X {
		a, b = a.ReflectY(), b.ReflectY()
		undo = append(undo, geom.ReflectionY())
	}
	inverse := geom.Identity()
	for i := len(undo) - 1; i >= 0; i-- {
		inverse = inverse.Then(undo[i])
	}

	x1, y1 := int(a.X), int(a.Y)
	x2, y2 := int(b.X), int(b.Y)
	deltaX, deltaY := x2-x1, y1-y2

	pts := make([]geom.Point, 0, deltaX+1)
	errAcc, y := 0, y1
	for x := x1; x <= x2; x++ {
		if e == IncludeEndpoints || (x != x1 && x != x2) {
			pts = append(pts, snap(geom.Pt(float64(x), float64(y)).Apply(inverse)))
		}
		errAcc += deltaY
		if 2*errAcc > deltaX {
			y--
			errAcc -= deltaX
		}
	}
	return pts, nil
}

func checkPoint(p geom.Point) error {
	if !p.Finite() {
		return fmt.Errorf("%w: non-finite point %v", geom.ErrInvalidGeometry, p)
	}
	if math.Abs(p.X) > MaxCoord || math.Abs(p.Y) > MaxCoord {
		return fmt.Errorf("%w: point %v out of range (max |%d|)", geom.ErrInvalidGeometry, p, MaxCoord)
	}
	return nil
}

// snap rounds p onto the lattice, folding negative zeros.
func snap(p geom.Point) geom.Point {
	return geom.Point{X: math.Round(p.X) + 0, Y: math.Round(p.Y) + 0, W: 1}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
