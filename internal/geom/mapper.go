package geom

import (
	"fmt"
	"math"
)

// Mapper converts between logical grid units and the pixels of a drawing
// surface. The grid origin sits at the surface midpoint, grid y grows upward
// while pixel y grows downward, and UnitsX/UnitsY grid units span the full
// surface width/height.
type Mapper struct {
	Width, Height  float64
	UnitsX, UnitsY float64

	toPixel, toGrid Matrix3
}

// NewMapper returns a mapper for a width x height pixel surface showing
// unitsX x unitsY grid units.
func NewMapper(width, height, unitsX, unitsY float64) (Mapper, error) {
	for _, v := range []float64{width, height, unitsX, unitsY} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return Mapper{}, fmt.Errorf("%w: surface %vx%v with %vx%v units", ErrInvalidGeometry, width, height, unitsX, unitsY)
		}
	}

	m := Mapper{Width: width, Height: height, UnitsX: unitsX, UnitsY: unitsY}
	ux, uy := m.PixelsPerUnit()
	m.toPixel = Compose(
		Scaling(ux, -uy),
		Translation(width/2, height/2),
	)
	m.toGrid = Compose(
		Translation(-width/2, -height/2),
		Scaling(1/ux, -1/uy),
	)
	return m, nil
}

// PixelsPerUnit returns the pixel size of one grid unit along each axis.
func (m Mapper) PixelsPerUnit() (float64, float64) {
	return m.Width / m.UnitsX, m.Height / m.UnitsY
}

// ToPixel maps a grid point to surface pixels.
func (m Mapper) ToPixel(p Point) Point { return Pt(p.X, p.Y).Apply(m.toPixel) }

// ToGrid maps a surface pixel to grid units; it is the inverse of ToPixel.
func (m Mapper) ToGrid(p Point) Point { return Pt(p.X, p.Y).Apply(m.toGrid) }

// LengthToPixels converts a grid length to pixels using the vertical unit,
// which is what circle radii are measured against.
func (m Mapper) LengthToPixels(l float64) float64 {
	_, uy := m.PixelsPerUnit()
	return l * uy
}

// HalfExtent returns the number of whole grid units visible on each side of
// the origin along x and y.
func (m Mapper) HalfExtent() (int, int) {
	return int(math.Ceil(m.UnitsX/2)) - 1, int(math.Ceil(m.UnitsY/2)) - 1
}
