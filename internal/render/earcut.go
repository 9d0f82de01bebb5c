package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/pixelstep/internal/geom"
)

// triangulate splits a polygon, minus any holes, into triangles using the
// earcut algorithm.
func triangulate(outer []geom.Point, holes ...[]geom.Point) ([][3]geom.Point, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(outer))
	}

	// Flat coordinate array required by earcut: [x0, y0, x1, y1, ...], outer
	// ring first, then each hole.
	n := len(outer)
	for _, h := range holes {
		n += len(h)
	}
	coords := make([]float64, 0, n*2)
	for _, p := range outer {
		coords = append(coords, p.X, p.Y)
	}
	var holeIndices []int
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		holeIndices = append(holeIndices, len(coords)/2)
		for _, p := range h {
			coords = append(coords, p.X, p.Y)
		}
	}

	indices, err := earcut.Earcut(coords, holeIndices, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(outer), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(indices))
	}

	vertex := func(i int) geom.Point { return geom.Pt(coords[i*2], coords[i*2+1]) }
	triangles := make([][3]geom.Point, len(indices)/3)
	for t := range triangles {
		triangles[t] = [3]geom.Point{
			vertex(indices[t*3]),
			vertex(indices[t*3+1]),
			vertex(indices[t*3+2]),
		}
	}
	return triangles, nil
}
