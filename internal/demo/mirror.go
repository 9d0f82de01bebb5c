package demo

import "github.com/irfansharif/pixelstep/internal/geom"

// octantTransforms map a first-octant point (0 ≤ x ≤ y) onto each of the
// eight octants.
var octantTransforms = [8]geom.Matrix3{
	geom.Identity(),
	geom.ReflectionX(),
	geom.ReflectionY(),
	geom.Compose(geom.ReflectionX(), geom.ReflectionY()),
	geom.ReflectionXY(),
	geom.Compose(geom.ReflectionXY(), geom.ReflectionX()),
	geom.Compose(geom.ReflectionXY(), geom.ReflectionY()),
	geom.Compose(geom.ReflectionXY(), geom.ReflectionX(), geom.ReflectionY()),
}

// MirrorOctants replicates a rasterized first-octant arc into all eight
// octants and moves it to center. The result holds eight points per input
// point, in input order, so that point i of the result lies in octant i%8.
func MirrorOctants(octant []geom.Point, center geom.Point) []geom.Point {
	toCenter := geom.Translation(center.X, center.Y)
	out := make([]geom.Point, 0, len(octant)*len(octantTransforms))
	for _, p := range octant {
		for _, m := range octantTransforms {
			out = append(out, p.Apply(m.Then(toCenter)))
		}
	}
	return out
}
