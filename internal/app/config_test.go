package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/pixelstep/internal/demo"
	"github.com/irfansharif/pixelstep/internal/geom"
	"github.com/irfansharif/pixelstep/internal/raster"
)

func TestRegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("pixelstep", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-width", "640", "-units", "30", "-line", "0,0,5,2", "-inclusive", "-grid=false",
	}))

	require.Equal(t, 640, cfg.Width)
	require.Equal(t, 960, cfg.Height)
	require.Equal(t, 30.0, cfg.Units)
	require.Equal(t, "0,0,5,2", cfg.Line)
	require.False(t, cfg.Grid)
	require.Equal(t, raster.IncludeEndpoints, cfg.Endpoints())
	require.NoError(t, cfg.Validate())
}

func TestRegisterFlagsEnv(t *testing.T) {
	t.Setenv("PIXELSTEP_UNITS", "50")
	cfg := DefaultConfig()
	cfg.RegisterFlags(flag.NewFlagSet("pixelstep", flag.ContinueOnError))
	require.Equal(t, 50.0, cfg.Units)
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	for _, mutate := range []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Units = 1 },
		func(c *Config) { c.Units = 1000 },
		func(c *Config) { c.Line = "1,2,3" },
		func(c *Config) { c.Line = "1,2,3,x" },
		func(c *Config) { c.Circle = "0,0" },
		func(c *Config) { c.Supersample = 0 },
		func(c *Config) { c.Supersample = 5 },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		require.Error(t, cfg.Validate(), "%+v", cfg)
	}

	cfg := DefaultConfig()
	cfg.Line = "1,2,3,x"
	require.ErrorIs(t, cfg.Validate(), demo.ErrParseFailure)
}

func TestNewController(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Line = " -3, 1.5 ,4,2"
	cfg.Circle = "1,1,5"
	ctrl, err := cfg.NewController()
	require.NoError(t, err)

	line, ok := ctrl.Line()
	require.True(t, ok)
	require.Equal(t, geom.Pt(-3, 1.5), line.P1)
	require.Equal(t, geom.Pt(4, 2), line.P2)
	circle, ok := ctrl.Circle()
	require.True(t, ok)
	require.Equal(t, 5.0, circle.Radius)
	require.Equal(t, "1.5", ctrl.Field(demo.FieldY1))

	// No shapes is fine.
	ctrl, err = DefaultConfig().NewController()
	require.NoError(t, err)
	_, ok = ctrl.Line()
	require.False(t, ok)

	// Parses but isn't a valid circle.
	cfg = DefaultConfig()
	cfg.Circle = "0,0,-1"
	_, err = cfg.NewController()
	require.ErrorIs(t, err, geom.ErrInvalidGeometry)
}
