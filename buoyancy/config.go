package buoyancy

import (
	"math"

	"github.com/oomph-ac/subsim/oerror"
)

const (
	DefaultResolution = 5

	// DefaultRightingGain scales the restoring torque applied to partially submerged bodies.
	DefaultRightingGain = 0.5
	// DefaultQuadraticDrag scales the velocity-squared resistance of the water.
	DefaultQuadraticDrag = 0.5
)

// Config configures a Solver.
type Config struct {
	// Resolution is the number of voxel samples per axis.
	Resolution int
	// Volume is the displacement volume of the body in m³. It is ignored when
	// AutoVolume is set, in which case the collider bounds' volume is used.
	Volume     float64
	AutoVolume bool

	// The body's drag coefficients are blended between their dry and wet values by
	// the submerged fraction.
	DryLinearDrag  float64
	WetLinearDrag  float64
	DryAngularDrag float64
	WetAngularDrag float64

	RightingGain  float64
	QuadraticDrag float64
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		Resolution:     DefaultResolution,
		AutoVolume:     true,
		DryLinearDrag:  0,
		WetLinearDrag:  1,
		DryAngularDrag: 0.05,
		WetAngularDrag: 1,
		RightingGain:   DefaultRightingGain,
		QuadraticDrag:  DefaultQuadraticDrag,
	}
}

// Validate returns a ConfigurationError describing the first invalid field of c.
func (c Config) Validate() error {
	if c.Resolution < MinResolution {
		return oerror.Config("buoyancy", "Resolution", "need at least %d samples per axis, got %d", MinResolution, c.Resolution)
	}
	if !c.AutoVolume && !(c.Volume > 0) {
		return oerror.Config("buoyancy", "Volume", "must be > 0 when AutoVolume is disabled, got %v", c.Volume)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"Volume", c.Volume},
		{"DryLinearDrag", c.DryLinearDrag},
		{"WetLinearDrag", c.WetLinearDrag},
		{"DryAngularDrag", c.DryAngularDrag},
		{"WetAngularDrag", c.WetAngularDrag},
		{"RightingGain", c.RightingGain},
		{"QuadraticDrag", c.QuadraticDrag},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return oerror.Config("buoyancy", f.name, "must be a finite value >= 0, got %v", f.v)
		}
	}
	return nil
}
