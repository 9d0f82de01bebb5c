package app

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/pixelstep/internal/demo"
	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/raster"
	"github.com/irfansharif/pixelstep/internal/scene"
)

func testApp() *App {
	a := newApp(NewView(400, 400, 10), demo.NewController(raster.ExcludeEndpoints), true)
	a.dirty = [scene.NumLayers]bool{}
	return a
}

func TestTyping(t *testing.T) {
	a := testApp()
	for _, r := range "-1x2.5" {
		a.Type(r)
	}
	require.Equal(t, "-12.5", a.Controller.Field(demo.FieldX1))
	require.True(t, a.dirty[scene.LayerShapes])
	require.False(t, a.dirty[scene.LayerPlane])

	a.Backspace()
	require.Equal(t, "-12.", a.Controller.Field(demo.FieldX1))

	a.FocusNext(false)
	require.Equal(t, demo.FieldR, a.Focus)
	a.Backspace() // empty field, no-op
	a.Type('3')
	a.FocusNext(true)
	require.Equal(t, demo.FieldX1, a.Focus)
	require.Equal(t, "3", a.Controller.Field(demo.FieldR))
}

func TestPlaceEndpoint(t *testing.T) {
	a := testApp()
	// 40 pixels per unit, origin at the center.
	a.PlaceEndpoint(geom.Pt(241, 158))
	a.PlaceEndpoint(geom.Pt(120, 240))
	require.Equal(t, "1", a.Controller.Field(demo.FieldX1))
	require.Equal(t, "1", a.Controller.Field(demo.FieldY1))
	require.Equal(t, "-2", a.Controller.Field(demo.FieldX2))
	require.Equal(t, "-1", a.Controller.Field(demo.FieldY2))

	line, ok := a.Controller.Line()
	require.True(t, ok)
	require.Equal(t, geom.Pt(1, 1), line.P1)

	// Third click starts over.
	a.PlaceEndpoint(geom.Pt(200, 200))
	require.Equal(t, "0", a.Controller.Field(demo.FieldX1))
	require.Equal(t, "-2", a.Controller.Field(demo.FieldX2))
}

func TestStartAndTick(t *testing.T) {
	a := testApp()
	a.PlaceEndpoint(geom.Pt(200, 200))
	a.PlaceEndpoint(geom.Pt(400, 280)) // (5, -2)
	a.dirty = [scene.NumLayers]bool{}

	now := time.Unix(0, 0)
	a.Start(now)
	require.True(t, a.dirty[scene.LayerPoints])
	a.dirty = [scene.NumLayers]bool{}

	a.Tick(now.Add(demo.LineInterval / 2))
	require.False(t, a.Dirty())
	a.Tick(now.Add(demo.LineInterval))
	require.True(t, a.dirty[scene.LayerPoints])
	require.Contains(t, a.Title(), "line 1/4")
}

func TestToggles(t *testing.T) {
	a := testApp()
	a.ToggleEndpoints()
	require.Equal(t, raster.IncludeEndpoints, a.Controller.Endpoints())
	a.ToggleEndpoints()
	require.Equal(t, raster.ExcludeEndpoints, a.Controller.Endpoints())

	a.ToggleGrid()
	require.False(t, a.Grid)
	require.True(t, a.dirty[scene.LayerPlane])
}

func TestDemoAndClear(t *testing.T) {
	a := testApp()
	a.Demo(time.Unix(0, 0))
	c, ok := a.Controller.Circle()
	require.True(t, ok)
	require.Equal(t, float64(demo.DemoRadius), c.Radius)

	a.Focus = demo.FieldCY
	a.Clear()
	require.Equal(t, demo.FieldX1, a.Focus)
	_, ok = a.Controller.Circle()
	require.False(t, ok)
	require.Equal(t, "pixelstep | line x1=[_] y1=_ x2=_ y2=_ | circle x=_ y=_ r=_ | exclusive", a.Title())
}

func TestZoomAndResize(t *testing.T) {
	a := testApp()
	a.Zoom(1)
	require.True(t, a.dirty[scene.LayerPlane])

	a.dirty = [scene.NumLayers]bool{}
	a.Resize(800, 600)
	require.True(t, a.Dirty())
	require.Equal(t, 800, a.View.Width)
}

func TestRenderSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 200, 100
	cfg.Line = "0,0,5,2"
	cfg.Circle = "0,0,3"
	cfg.Snapshot = filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, RenderSnapshot(cfg, time.Unix(0, 0)))

	f, err := os.Open(cfg.Snapshot)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 100, img.Bounds().Dy())

	cfg.Supersample = 3
	require.NoError(t, RenderSnapshot(cfg, time.Unix(0, 0)))
	f2, err := os.Open(cfg.Snapshot)
	require.NoError(t, err)
	defer f2.Close()
	cfgImg, err := png.DecodeConfig(f2)
	require.NoError(t, err)
	require.Equal(t, 200, cfgImg.Width)
	require.Equal(t, 100, cfgImg.Height)

	cfg.Line = "0,0,nope,2"
	require.ErrorIs(t, RenderSnapshot(cfg, time.Unix(0, 0)), demo.ErrParseFailure)
}
