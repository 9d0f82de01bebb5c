// Package app ties the demo controller, the view and the renderer together and
// translates user input into controller updates. Only the Renderer touches
// OpenGL; everything else is plain state.
package app

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/pixelstep/internal/canvas"
	"github.com/irfansharif/pixelstep/internal/demo"
	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/logging"
	"github.com/irfansharif/pixelstep/internal/memory"
	"github.com/irfansharif/pixelstep/internal/palette"
	"github.com/irfansharif/pixelstep/internal/raster"
	"github.com/irfansharif/pixelstep/internal/render"
	"github.com/irfansharif/pixelstep/internal/scene"
)

var log = logging.For("app")

// App encapsulates the main application state and logic.
type App struct {
	Window           *glfw.Window
	Renderer         *render.Renderer
	MemoryController *memory.Controller
	View             *View
	Controller       *demo.Controller
	Palette          palette.Palette

	Grid  bool
	Focus demo.Field

	// Clicks alternate between the line's start and end.
	clickEnd bool
	dirty    [scene.NumLayers]bool
}

// NewApp creates a new application instance. The window's GL context must be
// current.
func NewApp(window *glfw.Window, view *View, controller *demo.Controller, grid bool) *App {
	memController := memory.NewController()
	a := newApp(view, controller, grid)
	a.Window = window
	a.MemoryController = memController
	a.Renderer = render.NewRenderer(memController)
	a.Renderer.SetViewport(view.Width, view.Height)
	a.Renderer.SetBackground(a.Palette.Background)
	return a
}

func newApp(view *View, controller *demo.Controller, grid bool) *App {
	a := &App{
		View:       view,
		Controller: controller,
		Palette:    palette.Default(),
		Grid:       grid,
	}
	a.markDirty(scene.LayerPlane, scene.LayerShapes, scene.LayerPoints)
	return a
}

func (app *App) markDirty(layers ...scene.Layer) {
	for _, l := range layers {
		app.dirty[l] = true
	}
}

// Dirty reports whether any layer needs to be prepared again.
func (app *App) Dirty() bool {
	for _, d := range app.dirty {
		if d {
			return true
		}
	}
	return false
}

// Type appends r to the focused field. Only digits, '-' and '.' are accepted.
func (app *App) Type(r rune) {
	if !(r >= '0' && r <= '9' || r == '-' || r == '.') {
		return
	}
	app.setField(app.Focus, app.Controller.Field(app.Focus)+string(r))
}

// Backspace deletes the last character of the focused field.
func (app *App) Backspace() {
	text := app.Controller.Field(app.Focus)
	if text == "" {
		return
	}
	app.setField(app.Focus, text[:len(text)-1])
}

// FocusNext moves the input focus forward or backward.
func (app *App) FocusNext(forward bool) {
	if forward {
		app.Focus = app.Focus.Next()
	} else {
		app.Focus = app.Focus.Prev()
	}
}

func (app *App) setField(f demo.Field, text string) {
	if err := app.Controller.SetField(f, text); err != nil {
		// Half typed numbers routinely fail to parse.
		log.Debugf("field %s=%q: %v", f, text, err)
	}
	app.markDirty(scene.LayerShapes, scene.LayerPoints)
}

// Start rasterizes the current shapes and begins revealing them.
func (app *App) Start(now time.Time) {
	if err := app.Controller.Start(now); err != nil {
		log.Warningf("start: %v", err)
	}
	app.markDirty(scene.LayerPoints)
}

// Demo loads and starts the demo circle.
func (app *App) Demo(now time.Time) {
	if err := app.Controller.Demo(now); err != nil {
		log.Warningf("demo: %v", err)
	}
	app.markDirty(scene.LayerShapes, scene.LayerPoints)
}

// Clear empties the form and the canvas.
func (app *App) Clear() {
	app.Controller.Clear()
	app.Focus = demo.FieldX1
	app.clickEnd = false
	app.markDirty(scene.LayerShapes, scene.LayerPoints)
}

// ToggleEndpoints flips line endpoint inclusion.
func (app *App) ToggleEndpoints() {
	e := raster.IncludeEndpoints
	if app.Controller.Endpoints() == raster.IncludeEndpoints {
		e = raster.ExcludeEndpoints
	}
	app.Controller.SetEndpoints(e)
	app.markDirty(scene.LayerPoints)
}

// ToggleGrid shows or hides grid lines.
func (app *App) ToggleGrid() {
	app.Grid = !app.Grid
	app.markDirty(scene.LayerPlane)
}

// PlaceEndpoint sets the line start, or end on every other call, to the
// lattice point nearest to the given framebuffer pixel.
func (app *App) PlaceEndpoint(pixel geom.Point) {
	m, err := app.View.Mapper()
	if err != nil {
		return
	}
	p := m.ToGrid(pixel)
	fx, fy := demo.FieldX1, demo.FieldY1
	if app.clickEnd {
		fx, fy = demo.FieldX2, demo.FieldY2
	}
	app.clickEnd = !app.clickEnd
	app.setField(fx, formatCoord(p.X))
	app.setField(fy, formatCoord(p.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v)+0, 'f', -1, 64)
}

// Zoom changes the units per axis by delta scroll steps.
func (app *App) Zoom(delta float64) {
	if app.View.Zoom(delta) {
		app.markDirty(scene.LayerPlane, scene.LayerShapes, scene.LayerPoints)
	}
}

// Resize updates the viewport.
func (app *App) Resize(w, h int) {
	app.View.SetViewport(w, h)
	if app.Renderer != nil {
		app.Renderer.SetViewport(w, h)
	}
	app.markDirty(scene.LayerPlane, scene.LayerShapes, scene.LayerPoints)
}

// Tick advances running reveals.
func (app *App) Tick(now time.Time) {
	if app.Controller.Tick(now) {
		app.markDirty(scene.LayerPoints)
	}
}

// Title is the window title: the form and the reveal progress.
func (app *App) Title() string {
	return "pixelstep | " + app.Controller.Status(app.Focus)
}

func (app *App) options() scene.Options {
	return scene.Options{Grid: app.Grid, Palette: app.Palette}
}

// PrepareRenderer regenerates the geometry of every dirty layer.
func (app *App) PrepareRenderer() error {
	if !app.Dirty() {
		return nil
	}
	m, err := app.View.Mapper()
	if err != nil {
		return nil // nothing to draw into
	}
	frame := app.Controller.Frame()
	opts := app.options()

	var errs []error
	for l := scene.Layer(0); l < scene.NumLayers; l++ {
		if !app.dirty[l] {
			continue
		}
		err := app.Renderer.Prepare(l, func(s scene.Surface) {
			scene.DrawLayer(s, l, m, frame, opts)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		app.dirty[l] = false
	}
	return errors.Join(errs...)
}

// RenderSnapshot draws the fully revealed scene described by cfg into a PNG
// at cfg.Snapshot. With supersampling the scene is drawn at a multiple of the
// requested size and resampled down.
func RenderSnapshot(cfg Config, now time.Time) error {
	ctrl, err := cfg.NewController()
	if err != nil {
		return err
	}
	if err := ctrl.Start(now); err != nil {
		return err
	}
	ctrl.Finish()

	s := max(1, cfg.Supersample)
	view := NewView(cfg.Width*s, cfg.Height*s, cfg.Units)
	m, err := view.Mapper()
	if err != nil {
		return err
	}
	img := canvas.New(view.Width, view.Height)
	img.SetScale(s)
	scene.Draw(img, m, ctrl.Frame(), scene.Options{Grid: cfg.Grid, Palette: palette.Default(), Scale: float64(s)})
	if s > 1 {
		img.Resize(cfg.Width, cfg.Height)
	}
	return img.SavePNG(cfg.Snapshot)
}
