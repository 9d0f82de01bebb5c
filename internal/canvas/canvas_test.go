package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/pixelstep/internal/geom"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestClear(t *testing.T) {
	c := New(8, 4)
	require.Equal(t, color.RGBA{}, c.RGBA().RGBAAt(3, 2))
	c.Clear(white)
	require.Equal(t, white, c.RGBA().RGBAAt(0, 0))
	require.Equal(t, white, c.RGBA().RGBAAt(7, 3))
}

func TestLine(t *testing.T) {
	c := New(20, 20)
	c.Clear(white)
	c.Line(geom.Pt(2, 10), geom.Pt(18, 10), 2, black)

	// The stroke spans rows 9 and 10 completely.
	require.Equal(t, black, c.RGBA().RGBAAt(10, 9))
	require.Equal(t, black, c.RGBA().RGBAAt(10, 10))
	require.Equal(t, white, c.RGBA().RGBAAt(10, 5))
	require.Equal(t, white, c.RGBA().RGBAAt(0, 10))
}

func TestCircle(t *testing.T) {
	c := New(30, 30)
	c.Clear(white)
	c.Circle(geom.Pt(15, 15), 5, true, red)
	require.Equal(t, red, c.RGBA().RGBAAt(15, 15))
	require.Equal(t, white, c.RGBA().RGBAAt(2, 2))

	c.Clear(white)
	c.Circle(geom.Pt(15, 15), 8, false, black)
	require.Equal(t, white, c.RGBA().RGBAAt(15, 15))
	require.NotEqual(t, white, c.RGBA().RGBAAt(22, 15))
	require.NotEqual(t, white, c.RGBA().RGBAAt(15, 7))
}

func TestText(t *testing.T) {
	c := New(40, 20)
	c.Clear(white)
	c.Text(geom.Pt(20, 15), "X", black)

	inked := 0
	b := c.RGBA().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.RGBA().RGBAAt(x, y) != white {
				inked++
				// Glyph is centered, so nothing lands near the edges.
				require.Greater(t, x, 10)
				require.Less(t, x, 30)
			}
		}
	}
	require.Positive(t, inked)
}

func TestWritePNG(t *testing.T) {
	c := New(16, 9)
	c.Clear(red)

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, c.RGBA().Bounds(), img.Bounds())

	r, g, b, a := img.At(4, 4).RGBA()
	require.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestSavePNG(t *testing.T) {
	c := New(4, 4)
	c.Clear(black)
	path := filepath.Join(t.TempDir(), "snapshot.png")
	require.NoError(t, c.SavePNG(path))

	require.Error(t, c.SavePNG(filepath.Join(t.TempDir(), "missing", "snapshot.png")))
}

func TestScaledText(t *testing.T) {
	c := New(80, 40)
	c.SetScale(2)
	c.Clear(white)
	c.Text(geom.Pt(40, 30), "X", black)

	minX, maxX := 80, 0
	b := c.RGBA().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.RGBA().RGBAAt(x, y) != white {
				minX, maxX = min(minX, x), max(maxX, x)
			}
		}
	}
	// Twice the 7px advance, centered.
	require.GreaterOrEqual(t, minX, 40-7)
	require.LessOrEqual(t, maxX, 40+7)
	require.Greater(t, maxX-minX, 5)
}

func TestResize(t *testing.T) {
	c := New(40, 20)
	c.Clear(red)
	c.Resize(20, 10)
	require.Equal(t, 20, c.RGBA().Bounds().Dx())
	require.Equal(t, 10, c.RGBA().Bounds().Dy())
	px := c.RGBA().RGBAAt(10, 5)
	require.InDelta(t, 255, int(px.R), 1)
	require.InDelta(t, 0, int(px.G), 1)

	// Drawing still works at the new size.
	c.Line(geom.Pt(0, 5), geom.Pt(20, 5), 2, black)
	require.Equal(t, black, c.RGBA().RGBAAt(10, 4))
}
