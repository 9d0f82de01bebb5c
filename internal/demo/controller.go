// Package demo holds the presentation state of the visualizer: the seven
// numeric input fields, the line and circle they define, and the paced reveal
// of each shape's rasterized points. It has no window or drawing dependencies;
// the app package feeds it input and the scene package draws its Frame.
package demo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/logging"
	"github.com/irfansharif/pixelstep/internal/raster"
)

var log = logging.For("demo")

// ErrParseFailure is returned when an input field doesn't hold a number.
var ErrParseFailure = errors.New("parse failure")

const (
	LineInterval   = 200 * time.Millisecond // one segment point per tick
	CircleInterval = 500 * time.Millisecond // one octant step (eight points) per tick
)

// DemoRadius is the radius of the circle loaded by Demo, centered at the
// origin.
const DemoRadius = 8

// Field identifies one of the numeric inputs.
type Field int

const (
	FieldX1 Field = iota // line start x
	FieldY1              // line start y
	FieldX2              // line end x
	FieldY2              // line end y
	FieldCX              // circle center x
	FieldCY              // circle center y
	FieldR               // circle radius

	NumFields
)

var fieldNames = [NumFields]string{"x1", "y1", "x2", "y2", "x", "y", "r"}

func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return "unknown"
	}
	return fieldNames[f]
}

// Next returns the following field, wrapping around.
func (f Field) Next() Field { return (f + 1) % NumFields }

// Prev returns the preceding field, wrapping around.
func (f Field) Prev() Field { return (f + NumFields - 1) % NumFields }

func (f Field) isLine() bool { return f <= FieldY2 }

// Frame is a snapshot of everything the scene draws. Slices are shared with
// the controller and must not be modified.
type Frame struct {
	Line         *raster.Line
	Circle       *raster.Circle
	LinePoints   []geom.Point
	CirclePoints []geom.Point // eight per octant step, see MirrorOctants
	Endpoints    raster.Endpoints
}

// Controller owns the input fields, the shapes they define and the reveal
// schedules. It is not safe for concurrent use; the app drives it from the
// main loop.
type Controller struct {
	fields    [NumFields]string
	line      *raster.Line
	circle    *raster.Circle
	lineErr   error
	circleErr error
	endpoints raster.Endpoints

	lineReveal   *Reveal
	circleReveal *Reveal
}

// NewController returns a controller with every field empty.
func NewController(endpoints raster.Endpoints) *Controller {
	return &Controller{endpoints: endpoints}
}

// Field returns the current text of f.
func (c *Controller) Field(f Field) string { return c.fields[f] }

// SetField updates the text of f and rebuilds the shape it belongs to. Any
// running reveal is discarded. A field that doesn't parse makes its shape
// absent (ErrParseFailure); values that parse but describe an invalid shape
// leave the previous shape in place (geom.ErrInvalidGeometry).
func (c *Controller) SetField(f Field, text string) error {
	if f < 0 || f >= NumFields {
		return fmt.Errorf("unknown field %d", f)
	}
	c.fields[f] = text
	c.cancel()
	if f.isLine() {
		return c.updateLine()
	}
	return c.updateCircle()
}

// Endpoints returns the endpoint inclusion used for line rasterization.
func (c *Controller) Endpoints() raster.Endpoints { return c.endpoints }

// SetEndpoints changes the endpoint inclusion, discarding running reveals.
func (c *Controller) SetEndpoints(e raster.Endpoints) {
	if e == c.endpoints {
		return
	}
	c.endpoints = e
	c.cancel()
}

// Line returns the current segment, if any.
func (c *Controller) Line() (raster.Line, bool) {
	if c.line == nil {
		return raster.Line{}, false
	}
	return *c.line, true
}

// Circle returns the current circle, if any.
func (c *Controller) Circle() (raster.Circle, bool) {
	if c.circle == nil {
		return raster.Circle{}, false
	}
	return *c.circle, true
}

// Errors returns the errors left by the latest line and circle updates.
func (c *Controller) Errors() (lineErr, circleErr error) { return c.lineErr, c.circleErr }

// Start rasterizes the current shapes and schedules their reveal from now.
// A shape that fails to rasterize is skipped; its error is returned joined
// with the other's.
func (c *Controller) Start(now time.Time) error {
	c.cancel()

	var errs []error
	if c.line != nil {
		pts, err := c.line.Points(c.endpoints)
		if err != nil {
			errs = append(errs, fmt.Errorf("line: %w", err))
		} else {
			c.lineReveal = NewReveal(pts, 1, LineInterval)
			c.lineReveal.Start(now)
			log.Debugf("line %v-%v: %d points (%s)", c.line.P1, c.line.P2, len(pts), c.endpoints)
		}
	}
	if c.circle != nil {
		octant, err := c.circle.Octant()
		if err != nil {
			errs = append(errs, fmt.Errorf("circle: %w", err))
		} else {
			pts := MirrorOctants(octant, c.circle.Center)
			c.circleReveal = NewReveal(pts, len(octantTransforms), CircleInterval)
			c.circleReveal.Start(now)
			log.Debugf("circle %v r=%v: %d octant points", c.circle.Center, c.circle.Radius, len(octant))
		}
	}
	return errors.Join(errs...)
}

// Demo loads the circle of radius DemoRadius at the origin and starts.
func (c *Controller) Demo(now time.Time) error {
	c.fields[FieldCX], c.fields[FieldCY] = "0", "0"
	c.fields[FieldR] = strconv.Itoa(DemoRadius)
	if err := c.updateCircle(); err != nil {
		return err
	}
	return c.Start(now)
}

// Clear empties every field and removes both shapes.
func (c *Controller) Clear() {
	c.fields = [NumFields]string{}
	c.line, c.circle = nil, nil
	c.lineErr, c.circleErr = nil, nil
	c.cancel()
}

// Tick advances the reveals to now and reports whether anything new became
// visible.
func (c *Controller) Tick(now time.Time) bool {
	changed := false
	for _, r := range []*Reveal{c.lineReveal, c.circleReveal} {
		if r != nil && r.Advance(now) {
			changed = true
		}
	}
	return changed
}

// Finish reveals every scheduled point immediately.
func (c *Controller) Finish() {
	for _, r := range []*Reveal{c.lineReveal, c.circleReveal} {
		if r != nil {
			r.Finish()
		}
	}
}

// Revealing reports whether any reveal still has points to show.
func (c *Controller) Revealing() bool {
	for _, r := range []*Reveal{c.lineReveal, c.circleReveal} {
		if r != nil && !r.Done() {
			return true
		}
	}
	return false
}

// Frame returns what should be drawn right now.
func (c *Controller) Frame() Frame {
	f := Frame{Line: c.line, Circle: c.circle, Endpoints: c.endpoints}
	if c.lineReveal != nil {
		f.LinePoints = c.lineReveal.Visible()
	}
	if c.circleReveal != nil {
		f.CirclePoints = c.circleReveal.Visible()
	}
	return f
}

// Status renders the form and reveal progress on one line, with the focused
// field bracketed.
func (c *Controller) Status(focus Field) string {
	var b strings.Builder
	for f := Field(0); f < NumFields; f++ {
		switch f {
		case FieldX1:
			b.WriteString("line ")
		case FieldCX:
			b.WriteString(" | circle ")
		default:
			b.WriteByte(' ')
		}
		v := c.fields[f]
		if v == "" {
			v = "_"
		}
		if f == focus {
			fmt.Fprintf(&b, "%s=[%s]", f, v)
		} else {
			fmt.Fprintf(&b, "%s=%s", f, v)
		}
	}
	fmt.Fprintf(&b, " | %s", c.endpoints)
	if c.lineReveal != nil {
		shown, total := c.lineReveal.Progress()
		fmt.Fprintf(&b, " | line %d/%d", shown, total)
	}
	if c.circleReveal != nil {
		shown, total := c.circleReveal.Progress()
		fmt.Fprintf(&b, " | circle %d/%d", shown, total)
	}
	return b.String()
}

func (c *Controller) cancel() {
	c.lineReveal, c.circleReveal = nil, nil
}

func (c *Controller) updateLine() error {
	vals, err := c.parse(FieldX1, FieldY1, FieldX2, FieldY2)
	if err != nil {
		c.line, c.lineErr = nil, err
		return err
	}
	l, err := raster.NewLine(geom.Pt(vals[0], vals[1]), geom.Pt(vals[2], vals[3]))
	if err != nil {
		c.lineErr = err
		log.Debugf("rejected line update: %v", err)
		return err
	}
	c.line, c.lineErr = &l, nil
	return nil
}

func (c *Controller) updateCircle() error {
	vals, err := c.parse(FieldCX, FieldCY, FieldR)
	if err != nil {
		c.circle, c.circleErr = nil, err
		return err
	}
	circle, err := raster.NewCircle(geom.Pt(vals[0], vals[1]), vals[2])
	if err != nil {
		c.circleErr = err
		log.Debugf("rejected circle update: %v", err)
		return err
	}
	c.circle, c.circleErr = &circle, nil
	return nil
}

func (c *Controller) parse(fields ...Field) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		text := strings.TrimSpace(c.fields[f])
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrParseFailure, f, c.fields[f])
		}
		vals[i] = v
	}
	return vals, nil
}
