package settings

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/buoyancy"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/sim"
	"github.com/oomph-ac/subsim/vehicle"
	"github.com/oomph-ac/subsim/wave"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for a simulation run.
type Settings struct {
	Simulation struct {
		TickRate           float64
		MaxTicksPerAdvance int
		// Duration is the length of a scenario run in seconds, unless overridden.
		Duration    float64
		HistorySize int
		// Debug enables per-tick trace logging.
		Debug bool
	}
	Physics struct {
		Gravity      float64
		WaterDensity float64
		SurfaceY     float64
	}
	Wave      wave.Config
	Buoyancy  buoyancy.Config
	Vehicle   vehicle.Config
	Body      Body
	Scenarios []Scenario
}

// Body describes the hull of the simulated body.
type Body struct {
	// Thrusters is whether the body is driven by Vehicle. A body without them floats
	// passively.
	Thrusters bool
	Mass      float64
	// Size is the width, height and length of the hull in metres.
	Size []float64
	// Position is where the body starts each scenario.
	Position []float64
	// Yaw is the starting heading in radians.
	Yaw float64
}

// DefaultSettings returns the default settings for a 2×1.5×4 m submersible of 11.9
// tonnes. It displaces 12 tonnes of water, so it floats up slowly when idle but can
// be driven down by its vertical thrusters.
func DefaultSettings() Settings {
	s := Settings{}
	s.Simulation.TickRate = sim.DefaultTickRate
	s.Simulation.MaxTicksPerAdvance = sim.DefaultMaxTicksPerAdvance
	s.Simulation.Duration = 30
	s.Simulation.HistorySize = 100

	c := rigidbody.DefaultConstants()
	s.Physics.Gravity = c.Gravity
	s.Physics.WaterDensity = c.WaterDensity

	s.Wave = wave.DefaultConfig()
	s.Buoyancy = buoyancy.DefaultConfig()
	s.Vehicle = vehicle.DefaultConfig()

	s.Body = Body{
		Thrusters: true,
		Mass:      11900,
		Size:      []float64{2, 1.5, 4},
		Position:  []float64{0, -3, 0},
	}
	s.Scenarios = DefaultScenarios()
	return s
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %w", err)
	}
	return Decode(data)
}

// Decode decodes TOML settings. If no scenarios are configured, the default ones
// are used.
func Decode(data []byte) (Settings, error) {
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %w", err)
	}
	if len(s.Scenarios) == 0 {
		s.Scenarios = DefaultScenarios()
	}
	return s, nil
}

// Scene returns the scene described by the settings.
func (s Settings) Scene() sim.Scene {
	return sim.Scene{
		Constants: rigidbody.Constants{
			Gravity:      s.Physics.Gravity,
			WaterDensity: s.Physics.WaterDensity,
		},
		Wave:               s.Wave,
		SurfaceY:           s.Physics.SurfaceY,
		TickRate:           s.Simulation.TickRate,
		MaxTicksPerAdvance: s.Simulation.MaxTicksPerAdvance,
	}
}

// BodyConfig returns the configuration of the body. The vehicle's surface level
// always follows the scene's.
func (s Settings) BodyConfig() (sim.BodyConfig, error) {
	size, err := vec3("Size", s.Body.Size)
	if err != nil {
		return sim.BodyConfig{}, err
	}
	conf := sim.BodyConfig{
		Buoyancy: s.Buoyancy,
		Bounds:   boundsOf(size),
	}
	if s.Body.Thrusters {
		v := s.Vehicle
		v.SurfaceY = s.Physics.SurfaceY
		conf.Vehicle = &v
	}
	return conf, nil
}

// SimConfig returns the complete, validated configuration of a Simulator.
func (s Settings) SimConfig() (sim.Config, error) {
	body, err := s.BodyConfig()
	if err != nil {
		return sim.Config{}, err
	}
	conf := sim.Config{Scene: s.Scene(), Body: body}
	if err := conf.Validate(); err != nil {
		return sim.Config{}, err
	}
	return conf, nil
}

// NewBodyState returns the starting state of the body.
func (s Settings) NewBodyState() (rigidbody.State, error) {
	size, err := vec3("Size", s.Body.Size)
	if err != nil {
		return rigidbody.State{}, err
	}
	pos, err := vec3("Position", s.Body.Position)
	if err != nil {
		return rigidbody.State{}, err
	}
	if !(s.Body.Mass > 0) || math.IsInf(s.Body.Mass, 0) {
		return rigidbody.State{}, oerror.Config("body", "Mass", "must be a finite value > 0, got %v", s.Body.Mass)
	}
	state := rigidbody.NewBox(pos, s.Body.Mass, size)
	state.Orientation = mgl64.QuatRotate(s.Body.Yaw, mgl64.Vec3{0, 1, 0})
	return state, nil
}

// Validate checks that a Simulator, a body state and every scenario can be built
// from the settings.
func (s Settings) Validate() error {
	if _, err := s.SimConfig(); err != nil {
		return err
	}
	if _, err := s.NewBodyState(); err != nil {
		return err
	}
	if !(s.Simulation.Duration > 0) {
		return oerror.Config("settings", "Duration", "must be > 0, got %v", s.Simulation.Duration)
	}
	if s.Simulation.HistorySize < 0 {
		return oerror.Config("settings", "HistorySize", "must be >= 0, got %d", s.Simulation.HistorySize)
	}
	names := make(map[string]struct{}, len(s.Scenarios))
	for _, sc := range s.Scenarios {
		if err := sc.Validate(); err != nil {
			return err
		}
		if _, ok := names[sc.Name]; ok {
			return oerror.Config("scenario", "Name", "duplicate scenario %q", sc.Name)
		}
		names[sc.Name] = struct{}{}
	}
	return nil
}

func vec3(field string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, oerror.Config("body", field, "need 3 components, got %d", len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
