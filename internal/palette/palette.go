// Package palette provides the colours the scene is drawn with. Fixed colours
// are parsed from hex, and the per-octant colours for mirrored circle points
// are spread around the HSV hue wheel.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/irfansharif/pixelstep/internal/logging"
)

var log = logging.For("palette")

// Palette holds every colour used by the scene.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Axis       color.RGBA
	Label      color.RGBA
	Line       color.RGBA // ideal segment and its endpoints
	LinePoint  color.RGBA // rasterized segment points
	Circle     color.RGBA // ideal circle outline
	Octants    [8]color.RGBA
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toRGBA(c colorful.Color) color.RGBA {
	red, green, blue := c.Clamped().RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

// hex parses a "#rrggbb" literal; the literals are compiled in, so failure is
// a programming error.
func hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		log.Panicf("bad palette colour %q: %v", s, err)
	}
	return toRGBA(c)
}

// hsb converts a hue in degrees (any range) and saturation/brightness in
// percent.
func hsb(h, s, b float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return toRGBA(colorful.Hsv(h, clamp(s/100.0, 0, 1), clamp(b/100.0, 0, 1)))
}

// Default returns the standard light palette.
func Default() Palette {
	p := Palette{
		Background: hex("#ffffff"),
		Grid:       hex("#c0c0c0"),
		Axis:       hex("#000000"),
		Label:      hex("#000000"),
		Line:       hex("#000000"),
		LinePoint:  hex("#d62728"),
		Circle:     hex("#000000"),
	}
	p.Octants = OctantColors(210)
	return p
}

// OctantColors returns eight colours stepping 45° around the hue wheel from
// baseHue, one per mirrored octant.
func OctantColors(baseHue float64) [8]color.RGBA {
	var out [8]color.RGBA
	for i := range out {
		out[i] = hsb(baseHue+float64(i)*45, 70, 80)
	}
	return out
}

// Highlight blends c towards white by t in [0, 1], in Lab space so the hue
// stays put.
func Highlight(c color.RGBA, t float64) color.RGBA {
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	out := toRGBA(from.BlendLab(white, clamp(t, 0, 1)))
	out.A = c.A
	return out
}
