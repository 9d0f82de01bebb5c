package app

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/irfansharif/pixelstep/internal/demo"
	"github.com/irfansharif/pixelstep/internal/raster"
)

const maxSupersample = 4

// Config is the command line configuration.
type Config struct {
	Width, Height int     // window or snapshot size in pixels
	Units         float64 // grid units spanning each axis
	Line          string  // "x1,y1,x2,y2"
	Circle        string  // "x,y,r"
	Inclusive     bool    // rasterize line endpoints too
	Grid          bool    // draw grid lines
	Snapshot      string  // if set, render once to this PNG path and exit
	Supersample   int     // snapshot drawing resolution multiplier
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Width:       960,
		Height:      960,
		Units:       20,
		Grid:        true,
		Supersample: 1,
	}
}

// RegisterFlags binds c's fields to fs. PIXELSTEP_UNITS, if set, overrides the
// default unit count.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	if s := os.Getenv("PIXELSTEP_UNITS"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			c.Units = v
		} else {
			log.Warningf("ignoring invalid PIXELSTEP_UNITS value %q: %v", s, err)
		}
	}

	fs.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	fs.Float64Var(&c.Units, "units", c.Units, "grid units spanning each axis")
	fs.StringVar(&c.Line, "line", c.Line, "initial line as x1,y1,x2,y2")
	fs.StringVar(&c.Circle, "circle", c.Circle, "initial circle as x,y,r")
	fs.BoolVar(&c.Inclusive, "inclusive", c.Inclusive, "include line endpoints in the rasterization")
	fs.BoolVar(&c.Grid, "grid", c.Grid, "draw grid lines")
	fs.StringVar(&c.Snapshot, "snapshot", c.Snapshot, "render the fully revealed scene to this PNG file and exit")
	fs.IntVar(&c.Supersample, "supersample", c.Supersample, "draw snapshots at this multiple of the output size, then downsample")
}

// Validate checks sizes and the shape arguments.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", c.Width, c.Height))
	}
	if math.IsNaN(c.Units) || c.Units < minUnits || c.Units > maxUnits {
		errs = append(errs, fmt.Errorf("units %v outside [%v, %v]", c.Units, minUnits, maxUnits))
	}
	if c.Supersample < 1 || c.Supersample > maxSupersample {
		errs = append(errs, fmt.Errorf("supersample %d outside [1, %d]", c.Supersample, maxSupersample))
	}
	if _, err := splitNumbers(c.Line, 4); err != nil {
		errs = append(errs, fmt.Errorf("-line: %w", err))
	}
	if _, err := splitNumbers(c.Circle, 3); err != nil {
		errs = append(errs, fmt.Errorf("-circle: %w", err))
	}
	return errors.Join(errs...)
}

// Endpoints maps the -inclusive flag.
func (c Config) Endpoints() raster.Endpoints {
	if c.Inclusive {
		return raster.IncludeEndpoints
	}
	return raster.ExcludeEndpoints
}

// NewController returns a controller holding the configured shapes.
func (c Config) NewController() (*demo.Controller, error) {
	ctrl := demo.NewController(c.Endpoints())

	var errs []error
	for _, shape := range []struct {
		arg    string
		first  demo.Field
		fields int
	}{
		{c.Line, demo.FieldX1, 4},
		{c.Circle, demo.FieldCX, 3},
	} {
		vals, err := splitNumbers(shape.arg, shape.fields)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		var last error
		for i, v := range vals {
			last = ctrl.SetField(shape.first+demo.Field(i), v)
		}
		// Only the final field completes the shape.
		if last != nil {
			errs = append(errs, last)
		}
	}
	return ctrl, errors.Join(errs...)
}

// splitNumbers splits a comma separated argument into exactly n numeric
// strings. An empty argument yields nil.
func splitNumbers(arg string, n int) ([]string, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	parts := strings.Split(arg, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: want %d comma separated numbers, got %q", demo.ErrParseFailure, n, arg)
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if _, err := strconv.ParseFloat(parts[i], 64); err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", demo.ErrParseFailure, p)
		}
	}
	return parts, nil
}
