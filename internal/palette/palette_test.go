package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.Equal(t, color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 255}, p.Grid)
	require.Equal(t, color.RGBA{A: 255}, p.Axis)
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, p.Background)
}

func TestOctantColors(t *testing.T) {
	cols := OctantColors(0)
	seen := map[color.RGBA]bool{}
	for _, c := range cols {
		require.Equal(t, uint8(255), c.A)
		require.False(t, seen[c], "duplicate octant colour %v", c)
		seen[c] = true
	}
	// Hue wraps around: base 360 matches base 0.
	require.Equal(t, cols, OctantColors(360))
}

func TestHighlight(t *testing.T) {
	c := color.RGBA{R: 200, G: 40, B: 40, A: 128}
	require.Equal(t, c, Highlight(c, 0))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 128}, Highlight(c, 1))

	mid := Highlight(c, 0.5)
	require.Greater(t, mid.G, c.G)
	require.Equal(t, c.A, mid.A)
}
