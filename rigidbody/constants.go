package rigidbody

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/oerror"
)

const (
	// DefaultGravity is standard gravity in m/s².
	DefaultGravity = 9.81
	// DefaultWaterDensity is the density of fresh water in kg/m³.
	DefaultWaterDensity = 1000.0
)

// Constants holds the physical constants of a scene. It is passed explicitly to
// every call that needs it rather than read from global state.
type Constants struct {
	// Gravity is the magnitude of gravitational acceleration, acting along -Y.
	Gravity float64
	// WaterDensity is the density of the fluid bodies float in, in kg/m³.
	WaterDensity float64
}

// DefaultConstants returns earth gravity and fresh water.
func DefaultConstants() Constants {
	return Constants{Gravity: DefaultGravity, WaterDensity: DefaultWaterDensity}
}

// GravityVec returns the gravitational acceleration as a world-space vector.
func (c Constants) GravityVec() mgl64.Vec3 {
	return mgl64.Vec3{0, -c.Gravity, 0}
}

// Validate ...
func (c Constants) Validate() error {
	if c.Gravity < 0 || math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0) {
		return oerror.Config("physics", "Gravity", "must be a finite value >= 0, got %v", c.Gravity)
	}
	if !(c.WaterDensity > 0) || math.IsInf(c.WaterDensity, 0) {
		return oerror.Config("physics", "WaterDensity", "must be a finite value > 0, got %v", c.WaterDensity)
	}
	return nil
}
