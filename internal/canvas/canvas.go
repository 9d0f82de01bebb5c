// Package canvas is a software Surface backed by an image.RGBA. It is used for
// headless snapshots and mirrors what the OpenGL renderer draws on screen.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/logging"
)

var log = logging.For("canvas")

// ringWidth is the stroke width of unfilled circles, in pixels.
const ringWidth = 1.0

// Image rasterizes shapes into an in-memory RGBA image.
type Image struct {
	img   *image.RGBA
	r     *vector.Rasterizer
	face  font.Face
	scale int
}

// New returns a transparent width x height canvas.
func New(width, height int) *Image {
	return &Image{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		r:     vector.NewRasterizer(width, height),
		face:  basicfont.Face7x13,
		scale: 1,
	}
}

// SetScale enlarges text and circle outlines by an integer factor, for
// drawing at a multiple of the final resolution.
func (c *Image) SetScale(scale int) {
	c.scale = max(1, scale)
}

// RGBA exposes the backing image.
func (c *Image) RGBA() *image.RGBA { return c.img }

// Clear fills the whole image with col.
func (c *Image) Clear(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Line strokes ab with the given width.
func (c *Image) Line(a, b geom.Point, width float64, col color.RGBA) {
	quad := geom.StrokeQuad(a, b, width)
	c.fill(col, quad[:])
}

// Circle fills the disc around center, or strokes its outline.
func (c *Image) Circle(center geom.Point, radius float64, filled bool, col color.RGBA) {
	if filled {
		c.fill(col, geom.CirclePolygon(center, radius))
		return
	}

	half := ringWidth * float64(c.scale) / 2
	outer := geom.CirclePolygon(center, radius+half)
	inner := geom.CirclePolygon(center, math.Max(0, radius-half))
	// Opposite winding cuts the inner disc out of the outer one.
	for i, j := 0, len(inner)-1; i < j; i, j = i+1, j-1 {
		inner[i], inner[j] = inner[j], inner[i]
	}
	c.fill(col, outer, inner)
}

// Text draws s centered horizontally on at with its baseline at at.Y.
func (c *Image) Text(at geom.Point, s string, col color.RGBA) {
	x, y := int(math.Round(at.X)), int(math.Round(at.Y))
	if c.scale == 1 {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(col),
			Face: c.face,
			Dot:  fixed.P(x, y),
		}
		d.Dot.X -= d.MeasureString(s) / 2
		d.DrawString(s)
		return
	}

	// Draw at the font's native size, then blow the pixels up.
	m := c.face.Metrics()
	w := font.MeasureString(c.face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	if w == 0 || h == 0 {
		return
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(s)

	top := y - m.Ascent.Ceil()*c.scale
	left := x - w*c.scale/2
	dr := image.Rect(left, top, left+w*c.scale, top+h*c.scale)
	xdraw.NearestNeighbor.Scale(c.img, dr, small, small.Bounds(), xdraw.Over, nil)
}

// fill rasterizes the given closed polygons as one path.
func (c *Image) fill(col color.RGBA, polygons ...[]geom.Point) {
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.DrawOp = draw.Over
	for _, poly := range polygons {
		if len(poly) < 3 {
			continue
		}
		c.r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			c.r.LineTo(float32(p.X), float32(p.Y))
		}
		c.r.ClosePath()
	}
	c.r.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// Resize resamples the image to width x height.
func (c *Image) Resize(width, height int) {
	scaled := resize.Resize(uint(width), uint(height), c.img, resize.Lanczos3)
	rgba, ok := scaled.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(scaled.Bounds())
		draw.Draw(rgba, rgba.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	}
	c.img = rgba
	c.r = vector.NewRasterizer(width, height)
}

// WritePNG encodes the image as PNG.
func (c *Image) WritePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes the image to path as PNG.
func (c *Image) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := c.WritePNG(f); err != nil {
		return err
	}
	b := c.img.Bounds()
	log.Infof("wrote %dx%d snapshot to %s", b.Dx(), b.Dy(), path)
	return nil
}
