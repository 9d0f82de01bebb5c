// Package render draws the scene with OpenGL.
//
// Each scene layer is tessellated into colored triangles in pixel space:
//  1. Lines become quads, discs are triangulated polygons and circle outlines
//     are rings (a polygon with a hole).
//  2. Text is drawn pixel by pixel from a bitmap font.
//  3. The layer's triangles are uploaded to its own buffer through the memory
//     controller, and the shader maps pixels to NDC.
package render

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/logging"
	"github.com/irfansharif/pixelstep/internal/memory"
	"github.com/irfansharif/pixelstep/internal/scene"
)

var log = logging.For("render")

// ringWidth is the stroke width of unfilled circles, in pixels.
const ringWidth = 1.0

type Renderer struct {
	w, h       int
	background color.RGBA

	memController *memory.Controller
	shaderManager *ShaderManager
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in the last Prepare call in milliseconds
	LastDrawTimeUs    float64 // time spent in the last Draw call in microseconds
	Vertices          int     // vertices produced by the last Prepare
}

func NewRenderer(memController *memory.Controller) *Renderer {
	return &Renderer{
		shaderManager: NewShaderManager(),
		memController: memController,
	}
}

// SetViewport sets the framebuffer size in pixels.
func (r *Renderer) SetViewport(w, h int) {
	r.w, r.h = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// SetBackground sets the clear color.
func (r *Renderer) SetBackground(c color.RGBA) { r.background = c }

// Prepare regenerates one layer: draw is handed a surface collecting the
// layer's geometry, which is then uploaded to the GPU.
func (r *Renderer) Prepare(layer scene.Layer, draw func(scene.Surface)) error {
	startTime := time.Now()

	var m mesh
	draw(&m)
	if m.cleared {
		r.background = m.background
	}
	if err := r.memController.EnsureSlot(memory.LayerID(layer), m.vertices); err != nil {
		return err
	}

	r.stats.Vertices = len(m.vertices) / memory.FloatsPerVertex
	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	log.Debugf("prepared %s layer: %d vertices in %.2fms", layer, r.stats.Vertices, r.stats.LastPrepareTimeMs)
	return nil
}

func (r *Renderer) Draw() {
	startTime := time.Now()

	bg := r.background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, float32(bg.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	r.shaderManager.SetTransform(pixelToNDC(r.w, r.h))
	if err := r.memController.Draw(); err != nil {
		log.Fatalf("Memory controller draw failed: %v", err)
	}

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// pixelToNDC maps pixel coordinates (origin top-left, y down) to OpenGL
// normalized device coordinates, as a column-major 4x4 matrix.
func pixelToNDC(w, h int) [16]float32 {
	t := geom.Compose(
		geom.Scaling(2/float64(w), -2/float64(h)),
		geom.Translation(-1, 1),
	)
	return [16]float32{
		float32(t[0]), float32(t[3]), 0, 0,
		float32(t[1]), float32(t[4]), 0, 0,
		0, 0, 1, 0,
		float32(t[2]), float32(t[5]), 0, 1,
	}
}

// mesh is a scene.Surface collecting triangles with per-vertex color.
type mesh struct {
	vertices   []float32
	background color.RGBA
	cleared    bool
}

var _ scene.Surface = (*mesh)(nil)

// Clear drops everything collected so far and records the background.
func (m *mesh) Clear(c color.RGBA) {
	m.vertices = m.vertices[:0]
	m.background = c
	m.cleared = true
}

func (m *mesh) Line(a, b geom.Point, width float64, c color.RGBA) {
	m.quad(geom.StrokeQuad(a, b, width), c)
}

func (m *mesh) Circle(center geom.Point, radius float64, filled bool, c color.RGBA) {
	var (
		triangles [][3]geom.Point
		err       error
	)
	if filled {
		triangles, err = triangulate(geom.CirclePolygon(center, radius))
	} else {
		outer := geom.CirclePolygon(center, radius+ringWidth/2)
		inner := geom.CirclePolygon(center, math.Max(0, radius-ringWidth/2))
		triangles, err = triangulate(outer, inner)
	}
	if err != nil {
		log.Warningf("skipping circle at %v: %v", center, err)
		return
	}
	for _, tri := range triangles {
		m.triangle(tri, c)
	}
}

func (m *mesh) Text(at geom.Point, s string, c color.RGBA) {
	for _, p := range glyphPixels(s, int(math.Round(at.X)), int(math.Round(at.Y))) {
		m.quad(pixelQuad(p), c)
	}
}

func (m *mesh) quad(q [4]geom.Point, c color.RGBA) {
	m.triangle([3]geom.Point{q[0], q[1], q[2]}, c)
	m.triangle([3]geom.Point{q[0], q[2], q[3]}, c)
}

func (m *mesh) triangle(tri [3]geom.Point, c color.RGBA) {
	for _, v := range tri {
		m.vertices = append(m.vertices,
			float32(v.X), float32(v.Y), // position
			float32(c.R)/255.0, float32(c.G)/255.0,
			float32(c.B)/255.0, float32(c.A)/255.0, // color
		)
	}
}
