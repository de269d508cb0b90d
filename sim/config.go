package sim

import (
	"fmt"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/subsim/buoyancy"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/vehicle"
	"github.com/oomph-ac/subsim/wave"
)

const (
	DefaultTickRate = 50.0
	// DefaultMaxTicksPerAdvance bounds the ticks a single Advance may run, so that a
	// long stall does not make the simulation fall further and further behind.
	DefaultMaxTicksPerAdvance = 10
)

// Scene holds the configuration shared by every body in a simulation.
type Scene struct {
	Constants rigidbody.Constants
	Wave      wave.Config
	// SurfaceY is the mean water level the wave field oscillates around.
	SurfaceY float64
	// TickRate is the number of fixed simulation ticks per second.
	TickRate           float64
	MaxTicksPerAdvance int
}

// DefaultScene ...
func DefaultScene() Scene {
	return Scene{
		Constants:          rigidbody.DefaultConstants(),
		Wave:               wave.DefaultConfig(),
		TickRate:           DefaultTickRate,
		MaxTicksPerAdvance: DefaultMaxTicksPerAdvance,
	}
}

// Validate ...
func (s Scene) Validate() error {
	if err := s.Constants.Validate(); err != nil {
		return err
	}
	if err := s.Wave.Validate(); err != nil {
		return err
	}
	if math.IsNaN(s.SurfaceY) || math.IsInf(s.SurfaceY, 0) {
		return oerror.Config("sim", "SurfaceY", "must be finite, got %v", s.SurfaceY)
	}
	if !(s.TickRate > 0) || math.IsInf(s.TickRate, 0) {
		return oerror.Config("sim", "TickRate", "must be a finite value > 0, got %v", s.TickRate)
	}
	if s.MaxTicksPerAdvance < 1 {
		return oerror.Config("sim", "MaxTicksPerAdvance", "must be at least 1, got %d", s.MaxTicksPerAdvance)
	}
	return nil
}

// Dt returns the fixed tick duration in seconds.
func (s Scene) Dt() float64 {
	return 1 / s.TickRate
}

// BodyConfig holds the configuration of a single simulated body.
type BodyConfig struct {
	Buoyancy buoyancy.Config
	// Bounds is the body-local collider box the voxel grid is generated from.
	Bounds cube.BBox
	// Vehicle is the thruster and assist configuration. Bodies without one float
	// passively.
	Vehicle *vehicle.Config
}

// DefaultBodyConfig returns a 2×1.5×4 m submersible hull.
func DefaultBodyConfig() BodyConfig {
	v := vehicle.DefaultConfig()
	return BodyConfig{
		Buoyancy: buoyancy.DefaultConfig(),
		Bounds:   cube.Box(-1, -0.75, -2, 1, 0.75, 2),
		Vehicle:  &v,
	}
}

// Validate ...
func (b BodyConfig) Validate() error {
	if err := b.Buoyancy.Validate(); err != nil {
		return err
	}
	if b.Vehicle != nil {
		if err := b.Vehicle.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Config is the complete configuration of a single-body Simulator.
type Config struct {
	Scene Scene
	Body  BodyConfig
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{Scene: DefaultScene(), Body: DefaultBodyConfig()}
}

// Validate validates the scene and the body, wrapping the first error found.
func (c Config) Validate() error {
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := c.Body.Validate(); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	return nil
}
