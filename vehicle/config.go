package vehicle

import (
	"math"

	"github.com/oomph-ac/subsim/oerror"
)

// Config holds the tuning of a submersible's thrusters and control assists.
type Config struct {
	// HorizontalThrust is the force in newtons produced by full surge or sway input.
	HorizontalThrust float64
	// VerticalThrust is the force in newtons produced by full heave input.
	VerticalThrust float64
	// YawThrust is the torque in newton-metres produced by full yaw input.
	YawThrust float64

	// StabilizationGain scales the soft leveling torque. It is unused when RollLock is set.
	StabilizationGain float64
	DepthHoldGain     float64
	// RollLock forces zero roll and pitch every tick instead of leveling softly.
	RollLock bool

	MaxLinearSpeed  float64
	MaxAngularSpeed float64

	// SurfaceY is the water-surface level the vehicle must stay below.
	SurfaceY         float64
	SurfaceAvoidance bool
	// SurfaceMargin is the depth below SurfaceY at which surface avoidance starts.
	SurfaceMargin float64
	// SurfaceGain scales the downward force with the overshoot into the margin.
	SurfaceGain float64
	// SurfaceFloor is the constant downward force applied while breaching.
	SurfaceFloor float64
	// SurfaceDamping multiplies any upward velocity while breaching.
	SurfaceDamping float64
}

// DefaultConfig returns the tuning of a small crewed submersible of roughly 12 tonnes,
// trimmed close to neutral buoyancy.
func DefaultConfig() Config {
	return Config{
		HorizontalThrust:  6000,
		VerticalThrust:    6000,
		YawThrust:         8000,
		StabilizationGain: 400,
		DepthHoldGain:     2000,
		RollLock:          true,
		MaxLinearSpeed:    5,
		MaxAngularSpeed:   1.5,
		SurfaceY:          0,
		SurfaceAvoidance:  true,
		SurfaceMargin:     0.5,
		SurfaceGain:       4000,
		SurfaceFloor:      500,
		SurfaceDamping:    0.5,
	}
}

// Validate returns a ConfigurationError describing the first invalid field of c.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"HorizontalThrust", c.HorizontalThrust},
		{"VerticalThrust", c.VerticalThrust},
		{"YawThrust", c.YawThrust},
		{"StabilizationGain", c.StabilizationGain},
		{"DepthHoldGain", c.DepthHoldGain},
		{"SurfaceMargin", c.SurfaceMargin},
		{"SurfaceGain", c.SurfaceGain},
		{"SurfaceFloor", c.SurfaceFloor},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return oerror.Config("vehicle", f.name, "must be a finite value >= 0, got %v", f.v)
		}
	}
	if !(c.MaxLinearSpeed > 0) || math.IsInf(c.MaxLinearSpeed, 0) {
		return oerror.Config("vehicle", "MaxLinearSpeed", "must be a finite value > 0, got %v", c.MaxLinearSpeed)
	}
	if !(c.MaxAngularSpeed > 0) || math.IsInf(c.MaxAngularSpeed, 0) {
		return oerror.Config("vehicle", "MaxAngularSpeed", "must be a finite value > 0, got %v", c.MaxAngularSpeed)
	}
	if math.IsNaN(c.SurfaceY) || math.IsInf(c.SurfaceY, 0) {
		return oerror.Config("vehicle", "SurfaceY", "must be finite, got %v", c.SurfaceY)
	}
	if !(c.SurfaceDamping >= 0 && c.SurfaceDamping <= 1) {
		return oerror.Config("vehicle", "SurfaceDamping", "must be within [0, 1], got %v", c.SurfaceDamping)
	}
	return nil
}
