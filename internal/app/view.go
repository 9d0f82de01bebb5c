package app

import (
	"math"

	"github.com/irfansharif/pixelstep/internal/geom"
)

const (
	minUnits = 4.0
	maxUnits = 200.0

	zoomStep = 0.15 // fraction of the units per scroll step
)

// View manages what part of the grid is visible: the framebuffer size and how
// many grid units span each axis.
type View struct {
	Units         float64
	Width, Height int
}

// NewView creates a new view state.
func NewView(width, height int, units float64) *View {
	v := &View{Width: width, Height: height}
	v.SetUnits(units)
	return v
}

// SetUnits sets the units per axis, clamping to the valid range.
func (vs *View) SetUnits(units float64) {
	vs.Units = math.Min(maxUnits, math.Max(minUnits, units))
}

// Zoom scales the units by one step per delta; positive deltas zoom in (fewer
// units). It reports whether the view changed.
func (vs *View) Zoom(delta float64) bool {
	old := vs.Units
	vs.SetUnits(old / math.Pow(1+zoomStep, delta))
	return vs.Units != old
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// Mapper returns the grid/pixel mapping for the current view. It fails while
// the viewport is empty (e.g. a minimized window).
func (vs *View) Mapper() (geom.Mapper, error) {
	return geom.NewMapper(float64(vs.Width), float64(vs.Height), vs.Units, vs.Units)
}
