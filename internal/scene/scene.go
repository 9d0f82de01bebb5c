// Package scene turns a demo.Frame into drawing calls on a Surface: the
// coordinate plane, the ideal line and circle, and their revealed lattice
// points. All geometry is produced in grid units and mapped to pixels here, so
// surfaces only ever see pixel coordinates.
package scene

import (
	"image/color"
	"strconv"

	"github.com/irfansharif/pixelstep/internal/demo"
	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/palette"
)

const (
	strokeWidth    = 1.0 // pixels
	dotRadius      = 0.2 // grid units
	labelEveryFrom = 50  // at this many units per axis, only every 5th tick is labelled
	fadeAmount     = 0.35
)

// Surface is a drawing target working in pixel coordinates.
type Surface interface {
	// Clear fills the whole surface.
	Clear(c color.RGBA)
	// Line strokes the segment ab.
	Line(a, b geom.Point, width float64, c color.RGBA)
	// Circle fills or strokes the circle around center.
	Circle(center geom.Point, radius float64, filled bool, c color.RGBA)
	// Text draws s horizontally centered on at, with its baseline at at.Y.
	Text(at geom.Point, s string, c color.RGBA)
}

// Layer identifies an independently redrawable part of the scene.
type Layer int

const (
	LayerPlane  Layer = iota // axes, ticks, grid and labels
	LayerShapes              // ideal line and circle
	LayerPoints              // revealed lattice points

	NumLayers
)

func (l Layer) String() string {
	switch l {
	case LayerPlane:
		return "plane"
	case LayerShapes:
		return "shapes"
	case LayerPoints:
		return "points"
	default:
		return "unknown"
	}
}

// Options control how the scene is drawn.
type Options struct {
	Grid    bool
	Palette palette.Palette
	// Scale multiplies stroke widths, for surfaces drawn at a multiple of
	// their final resolution. Zero means 1.
	Scale float64
}

// Draw clears s and draws every layer in order.
func Draw(s Surface, m geom.Mapper, f demo.Frame, opts Options) {
	s.Clear(opts.Palette.Background)
	for l := Layer(0); l < NumLayers; l++ {
		DrawLayer(s, l, m, f, opts)
	}
}

// DrawLayer draws a single layer without clearing.
func DrawLayer(s Surface, l Layer, m geom.Mapper, f demo.Frame, opts Options) {
	p := painter{s: s, m: m, pal: opts.Palette, stroke: strokeWidth}
	if opts.Scale > 0 {
		p.stroke *= opts.Scale
	}
	switch l {
	case LayerPlane:
		p.plane(opts.Grid)
	case LayerShapes:
		p.shapes(f)
	case LayerPoints:
		p.points(f)
	}
}

// painter draws in grid units on a pixel surface.
type painter struct {
	s      Surface
	m      geom.Mapper
	pal    palette.Palette
	stroke float64
}

func (p painter) line(a, b geom.Point, c color.RGBA) {
	p.s.Line(p.m.ToPixel(a), p.m.ToPixel(b), p.stroke, c)
}

func (p painter) circle(center geom.Point, r float64, filled bool, c color.RGBA) {
	p.s.Circle(p.m.ToPixel(center), p.m.LengthToPixels(r), filled, c)
}

func (p painter) text(at geom.Point, s string, c color.RGBA) {
	p.s.Text(p.m.ToPixel(at), s, c)
}

func (p painter) dot(at geom.Point, c color.RGBA) {
	p.circle(at, dotRadius, true, c)
}

// plane draws the axes with arrow heads, unit ticks, optional grid lines and
// tick labels.
func (p painter) plane(grid bool) {
	ux, uy := p.m.UnitsX, p.m.UnitsY
	hx, hy := ux/2, uy/2
	nx, ny := p.m.HalfExtent()
	labelX := ux < labelEveryFrom
	labelY := uy < labelEveryFrom

	if grid {
		for i := 1; i <= nx; i++ {
			x := float64(i)
			p.line(geom.Pt(-x, hy), geom.Pt(-x, -hy), p.pal.Grid)
			p.line(geom.Pt(x, hy), geom.Pt(x, -hy), p.pal.Grid)
		}
		for i := 1; i <= ny; i++ {
			y := float64(i)
			p.line(geom.Pt(-hx, -y), geom.Pt(hx, -y), p.pal.Grid)
			p.line(geom.Pt(-hx, y), geom.Pt(hx, y), p.pal.Grid)
		}
	}

	// Axes.
	p.line(geom.Pt(-hx, 0), geom.Pt(hx, 0), p.pal.Axis)
	p.line(geom.Pt(0, hy), geom.Pt(0, -hy), p.pal.Axis)

	// Arrow heads and axis names.
	p.line(geom.Pt(hx, 0), geom.Pt(hx-ux/100, uy/100), p.pal.Axis)
	p.line(geom.Pt(hx, 0), geom.Pt(hx-ux/100, -uy/100), p.pal.Axis)
	p.text(geom.Pt(hx-ux/50, uy/50), "X", p.pal.Label)
	p.line(geom.Pt(0, hy), geom.Pt(ux/100, hy-uy/100), p.pal.Axis)
	p.line(geom.Pt(0, hy), geom.Pt(-ux/100, hy-uy/100), p.pal.Axis)
	p.text(geom.Pt(ux/50, hy-uy/50), "Y", p.pal.Label)

	// Ticks and their labels.
	tickX, tickY := uy/200, ux/200
	for i := 1; i <= nx; i++ {
		x := float64(i)
		p.line(geom.Pt(-x, -tickX), geom.Pt(-x, tickX), p.pal.Axis)
		p.line(geom.Pt(x, -tickX), geom.Pt(x, tickX), p.pal.Axis)
		if labelX || i%5 == 0 {
			p.text(geom.Pt(-x, -1.5*uy/100), strconv.Itoa(-i), p.pal.Label)
			p.text(geom.Pt(x, -1.5*uy/100), strconv.Itoa(i), p.pal.Label)
		}
	}
	for i := 1; i <= ny; i++ {
		y := float64(i)
		p.line(geom.Pt(-tickY, -y), geom.Pt(tickY, -y), p.pal.Axis)
		p.line(geom.Pt(-tickY, y), geom.Pt(tickY, y), p.pal.Axis)
		if labelY || i%5 == 0 {
			p.text(geom.Pt(-1.5*ux/100, -y), strconv.Itoa(-i), p.pal.Label)
			p.text(geom.Pt(-1.5*ux/100, y), strconv.Itoa(i), p.pal.Label)
		}
	}
}

// shapes draws the ideal segment with its endpoints and the ideal circle.
func (p painter) shapes(f demo.Frame) {
	if f.Line != nil {
		p.dot(f.Line.P1, p.pal.Line)
		p.dot(f.Line.P2, p.pal.Line)
		p.line(f.Line.P1, f.Line.P2, p.pal.Line)
	}
	if f.Circle != nil {
		p.circle(f.Circle.Center, f.Circle.Radius, false, p.pal.Circle)
	}
}

// points draws the revealed points. The latest batch of each sequence is drawn
// in full colour, earlier ones faded.
func (p painter) points(f demo.Frame) {
	for i, pt := range f.LinePoints {
		c := p.pal.LinePoint
		if i < len(f.LinePoints)-1 {
			c = palette.Highlight(c, fadeAmount)
		}
		p.dot(pt, c)
	}

	const perStep = 8
	latest := len(f.CirclePoints) - perStep
	for i, pt := range f.CirclePoints {
		c := p.pal.Octants[i%perStep]
		if i < latest {
			c = palette.Highlight(c, fadeAmount)
		}
		p.dot(pt, c)
	}
}
