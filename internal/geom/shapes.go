package geom

import "math"

const (
	minCircleSegments = 12
	maxCircleSegments = 256
)

// CirclePolygon approximates a circle with a closed polygon (the first vertex
// is not repeated). The segment count grows with the radius so that edges
// stay a couple of pixels long.
func CirclePolygon(center Point, radius float64) []Point {
	n := int(math.Ceil(2 * math.Pi * radius / 3))
	if n < minCircleSegments {
		n = minCircleSegments
	} else if n > maxCircleSegments {
		n = maxCircleSegments
	}

	pts := make([]Point, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = Pt(center.X+radius*cos, center.Y+radius*sin)
	}
	return pts
}

// StrokeQuad returns the four corners of a rectangle of the given width
// centered on segment ab, in winding order. A zero-length segment yields a
// width x width square around a.
func StrokeQuad(a, b Point, width float64) [4]Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	half := width / 2
	if length == 0 {
		return [4]Point{
			Pt(a.X-half, a.Y-half), Pt(a.X+half, a.Y-half),
			Pt(a.X+half, a.Y+half), Pt(a.X-half, a.Y+half),
		}
	}

	// Unit normal scaled to half the stroke width.
	nx, ny := -dy/length*half, dx/length*half
	return [4]Point{
		Pt(a.X+nx, a.Y+ny), Pt(b.X+nx, b.Y+ny),
		Pt(b.X-nx, b.Y-ny), Pt(a.X-nx, a.Y-ny),
	}
}
