package raster

import (
	"fmt"
	"math"

	"github.com/irfansharif/pixelstep/internal/geom"
)

// Circle is an axis-aligned circle in grid space.
type Circle struct {
	Center geom.Point
	Radius float64
}

// NewCircle returns the circle around center, rejecting non-finite centers and
// negative or non-finite radii.
func NewCircle(center geom.Point, radius float64) (Circle, error) {
	if err := checkPoint(center); err != nil {
		return Circle{}, err
	}
	if err := checkRadius(radius); err != nil {
		return Circle{}, err
	}
	return Circle{Center: geom.Pt(center.X, center.Y), Radius: radius}, nil
}

// Octant rasterizes the circle's first octant around the origin, see
// CircleOctant.
func (c Circle) Octant() ([]geom.Point, error) {
	return CircleOctant(c.Radius)
}

// CircleOctant returns the lattice points of the circle of the given radius
// around the origin for the arc from (0, r) to the x = y diagonal, in order of
// increasing x. The radius is snapped to the nearest integer. Mirroring the
// arc into the remaining seven octants is left to the caller.
//
// Derivation, with f(x, y) = x² + y² - r² evaluated at the midpoint
// M = (x+1, y-½) between the E and SE candidates:
//
//	f(M₀) = f(1, r-½) = 5/4 - r  → 1 - r, since d stays integral
//	choosing E:  d += 2x + 3         (ΔE),  ΔE += 2, ΔSE += 2
//	choosing SE: d += 2x - 2y + 5    (ΔSE), ΔE += 2, ΔSE += 4
func CircleOctant(radius float64) ([]geom.Point, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}

	r := int(math.Round(radius))
	pts := make([]geom.Point, 0, r*3/4+1)
	x, y := 0, r
	d := 1 - r
	deltaE, deltaSE := 3, 5-2*r
	for y >= x {
		pts = append(pts, geom.Pt(float64(x), float64(y)))
		if d >= 0 {
			y--
			d += deltaSE
			deltaSE += 4
		} else {
			d += deltaE
			deltaSE += 2
		}
		deltaE += 2
		x++
	}
	return pts, nil
}

func checkRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: radius %v", geom.ErrInvalidGeometry, radius)
	}
	if radius > MaxSpan {
		return fmt.Errorf("%w: radius %v exceeds %d", geom.ErrInvalidGeometry, radius, MaxSpan)
	}
	return nil
}
