package render

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/irfansharif/pixelstep/internal/geom"
)

var face font.Face = basicfont.Face7x13

// glyphPixels returns the top-left corners of the inked pixels of s, drawn
// centered horizontally on (x, y) with its baseline at y.
func glyphPixels(s string, x, y int) []image.Point {
	dot := fixed.P(x, y)
	dot.X -= font.MeasureString(face, s) / 2

	var out []image.Point
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot.X += face.Kern(prev, r)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if ok {
			for py := dr.Min.Y; py < dr.Max.Y; py++ {
				for px := dr.Min.X; px < dr.Max.X; px++ {
					_, _, _, a := mask.At(maskp.X+px-dr.Min.X, maskp.Y+py-dr.Min.Y).RGBA()
					if a >= 0x8000 {
						out = append(out, image.Pt(px, py))
					}
				}
			}
		}
		dot.X += advance
		prev = r
	}
	return out
}

// pixelQuad is the unit square with top-left corner p.
func pixelQuad(p image.Point) [4]geom.Point {
	x, y := float64(p.X), float64(p.Y)
	return [4]geom.Point{geom.Pt(x, y), geom.Pt(x+1, y), geom.Pt(x+1, y+1), geom.Pt(x, y+1)}
}
