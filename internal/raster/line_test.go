package raster

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/pixelstep/internal/geom"
)

func pts(coords ...float64) []geom.Point {
	out := make([]geom.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, geom.Pt(coords[i], coords[i+1]))
	}
	return out
}

func TestLinePoints(t *testing.T) {
	tests := []struct {
		p1, p2    geom.Point
		exclusive []geom.Point
		inclusive []geom.Point
	}{
		{
			p1: geom.Pt(0, 0), p2: geom.Pt(5, 2),
			exclusive: pts(1, 0, 2, 1, 3, 1, 4, 2),
			inclusive: pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 2, 5, 2),
		},
		{
			// Mirror image of the case above.
			p1: geom.Pt(0, 0), p2: geom.Pt(-5, 2),
			exclusive: pts(-1, 0, -2, 1, -3, 1, -4, 2),
			inclusive: pts(0, 0, -1, 0, -2, 1, -3, 1, -4, 2, -5, 2),
		},
		{
			// Steep: handled by the quarter-turn rotation.
			p1: geom.Pt(0, 0), p2: geom.Pt(2, 5),
			exclusive: pts(0, 1, 1, 2, 1, 3, 2, 4),
			inclusive: pts(0, 0, 0, 1, 1, 2, 1, 3, 2, 4, 2, 5),
		},
		{
			p1: geom.Pt(0, 0), p2: geom.Pt(0, 4),
			exclusive: pts(0, 1, 0, 2, 0, 3),
			inclusive: pts(0, 0, 0, 1, 0, 2, 0, 3, 0, 4),
		},
		{
			p1: geom.Pt(-2, 3), p2: geom.Pt(2, 3),
			exclusive: pts(-1, 3, 0, 3, 1, 3),
			inclusive: pts(-2, 3, -1, 3, 0, 3, 1, 3, 2, 3),
		},
		{
			p1: geom.Pt(0, 0), p2: geom.Pt(3, 3),
			exclusive: pts(1, 1, 2, 2),
			inclusive: pts(0, 0, 1, 1, 2, 2, 3, 3),
		},
		{
			// Off-lattice endpoints snap to (0,0) and (5,2).
			p1: geom.Pt(0.4, -0.4), p2: geom.Pt(4.6, 2.2),
			exclusive: pts(1, 0, 2, 1, 3, 1, 4, 2),
			inclusive: pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 2, 5, 2),
		},
		{
			p1: geom.Pt(3, 3), p2: geom.Pt(3, 3),
			exclusive: pts(),
			inclusive: pts(3, 3),
		},
		{
			p1: geom.Pt(0, 0), p2: geom.Pt(1, 1),
			exclusive: pts(),
			inclusive: pts(0, 0, 1, 1),
		},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%v->%v", tc.p1, tc.p2), func(t *testing.T) {
			got, err := LinePoints(tc.p1, tc.p2, ExcludeEndpoints)
			require.NoError(t, err)
			require.Equal(t, tc.exclusive, got)

			got, err = LinePoints(tc.p1, tc.p2, IncludeEndpoints)
			require.NoError(t, err)
			require.Equal(t, tc.inclusive, got)
		})
	}
}

// TestLinePointsProperties sweeps segments from the origin to every lattice
// point in a window, covering all eight octants.
func TestLinePointsProperties(t *testing.T) {
	const n = 9
	origin := geom.Pt(0, 0)
	for x := -n; x <= n; x++ {
		for y := -n; y <= n; y++ {
			end := geom.Pt(float64(x), float64(y))
			got, err := LinePoints(origin, end, IncludeEndpoints)
			require.NoError(t, err)

			require.Equal(t, origin, got[0])
			require.Equal(t, end, got[len(got)-1])

			major := max(abs(x), abs(y))
			require.Len(t, got, major+1, "-> %v", end)

			for i := 1; i < len(got); i++ {
				stepX := got[i].X - got[i-1].X
				stepY := got[i].Y - got[i-1].Y
				require.LessOrEqual(t, math.Abs(stepX), 1.0)
				require.LessOrEqual(t, math.Abs(stepY), 1.0)
				require.False(t, stepX == 0 && stepY == 0, "repeated point %v", got[i])
			}

			// Every point lies within half a step of the ideal line, measured
			// along the minor axis.
			for _, p := range got {
				if abs(x) >= abs(y) {
					ideal := p.X * float64(y) / float64(x)
					require.LessOrEqual(t, math.Abs(p.Y-ideal), 0.5+1e-9, "%v on ->%v", p, end)
				} else {
					ideal := p.Y * float64(x) / float64(y)
					require.LessOrEqual(t, math.Abs(p.X-ideal), 0.5+1e-9, "%v on ->%v", p, end)
				}
			}

			exclusive, err := LinePoints(origin, end, ExcludeEndpoints)
			require.NoError(t, err)
			if major == 0 {
				require.Empty(t, exclusive)
			} else {
				require.Equal(t, got[1:len(got)-1], exclusive)
			}
		}
	}
}

func TestLinePointsSwapSymmetry(t *testing.T) {
	ends := []geom.Point{
		geom.Pt(0, 0), geom.Pt(2, 1), geom.Pt(-3, 7), geom.Pt(6, -6),
		geom.Pt(-4, -1), geom.Pt(1, 8), geom.Pt(5, 2), geom.Pt(-7, 3),
	}
	for _, e := range []Endpoints{ExcludeEndpoints, IncludeEndpoints} {
		for _, p1 := range ends {
			for _, p2 := range ends {
				forward, err := LinePoints(p1, p2, e)
				require.NoError(t, err)
				backward, err := LinePoints(p2, p1, e)
				require.NoError(t, err)

				slices.Reverse(backward)
				require.Equal(t, forward, backward, "%v <-> %v (%s)", p1, p2, e)
			}
		}
	}
}

func TestLinePointsInvalid(t *testing.T) {
	for _, tc := range []struct{ p1, p2 geom.Point }{
		{geom.Pt(math.NaN(), 0), geom.Pt(1, 1)},
		{geom.Pt(0, 0), geom.Pt(1, math.Inf(1))},
		{geom.Pt(math.Inf(-1), 0), geom.Pt(math.Inf(1), 0)},
		{geom.Pt(0, 0), geom.Pt(MaxSpan+1, 0)},
		{geom.Pt(0, -MaxSpan), geom.Pt(0, MaxSpan)},
		{geom.Pt(1e300, 1e300), geom.Pt(1e300, 1e300)},
	} {
		_, err := LinePoints(tc.p1, tc.p2, ExcludeEndpoints)
		require.ErrorIs(t, err, geom.ErrInvalidGeometry, "%v -> %v", tc.p1, tc.p2)
	}
}

func TestNewLine(t *testing.T) {
	l, err := NewLine(geom.Pt(0, 0), geom.Pt(5, 2))
	require.NoError(t, err)
	got, err := l.Points(ExcludeEndpoints)
	require.NoError(t, err)
	require.Equal(t, pts(1, 0, 2, 1, 3, 1, 4, 2), got)

	_, err = NewLine(geom.Pt(math.NaN(), 0), geom.Pt(1, 1))
	require.ErrorIs(t, err, geom.ErrInvalidGeometry)
}

func TestEndpointsString(t *testing.T) {
	require.Equal(t, "exclusive", ExcludeEndpoints.String())
	require.Equal(t, "inclusive", IncludeEndpoints.String())
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
