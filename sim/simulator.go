package sim

import (
	"io"
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/subsim/assert"
	"github.com/oomph-ac/subsim/buoyancy"
	"github.com/oomph-ac/subsim/omath"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/vehicle"
	"github.com/oomph-ac/subsim/wave"
	"github.com/sirupsen/logrus"
)

// Options define behaviour of a Simulator that is not part of its physical
// configuration.
type Options struct {
	// Name identifies the body in logs and metrics.
	Name string
	Log  *logrus.Logger
	// Handler receives water and depth-hold events. It defaults to NopHandler.
	Handler Handler
	// Integrator advances the body. It defaults to rigidbody.SymplecticEuler.
	Integrator rigidbody.Integrator
	// HistorySize is the number of snapshots kept. Zero disables the history.
	HistorySize int

	// Debugf receives internal simulation trace logs for callers that need deep diagnostics.
	Debugf func(format string, args ...any)
}

// Outcome describes which path a tick took.
type Outcome uint8

const (
	OutcomeNormal Outcome = iota
	// OutcomeSkipped is reported when there was no body or no valid time step.
	OutcomeSkipped
	// OutcomeDiverged is reported when the body's state is no longer finite.
	OutcomeDiverged
)

// Contribution is the force and torque a Simulator adds to a body for one tick.
type Contribution struct {
	// Forces is the sum of every contribution below, as handed to the integrator.
	rigidbody.Forces

	Buoyancy buoyancy.Result
	Thrust   rigidbody.Forces
}

// TickResult captures the outcome of a single tick.
type TickResult struct {
	Contribution

	// Tick is the index of the tick that ran, starting at zero, and Time the
	// simulation time at its start.
	Tick uint64
	Time float64

	Transition buoyancy.Transition
	Control    vehicle.State
	Outcome    Outcome
}

// InputSource supplies the control inputs for each tick run by Advance.
type InputSource interface {
	Inputs(tick uint64, t float64) vehicle.Inputs
}

// InputFunc is an InputSource backed by a function.
type InputFunc func(tick uint64, t float64) vehicle.Inputs

// Inputs ...
func (f InputFunc) Inputs(tick uint64, t float64) vehicle.Inputs {
	return f(tick, t)
}

// Simulator runs the buoyancy and vehicle dynamics of a single body at a fixed
// time step. It is not safe for concurrent use; independent Simulators may run on
// separate goroutines.
type Simulator struct {
	scene   Scene
	field   *wave.Field
	surface wave.Surface

	solver   *buoyancy.Solver
	dynamics *vehicle.Dynamics
	tracker  buoyancy.Tracker
	history  *History

	opts    Options
	log     *logrus.Logger
	metrics *metrics

	tick        uint64
	accumulator float64
}

// Initialize validates conf and builds a Simulator. Every ConfigurationError is
// surfaced here; Step, Tick and Advance never fail.
func Initialize(conf Config, opts Options) (*Simulator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	field, err := wave.New(conf.Scene.Wave)
	if err != nil {
		return nil, err
	}
	return newSimulator(conf.Scene, field, conf.Body, opts)
}

// MustInitialize is Initialize, but panics on an invalid configuration.
func MustInitialize(conf Config, opts Options) *Simulator {
	s, err := Initialize(conf, opts)
	assert.NoError(err)
	return s
}

func newSimulator(scene Scene, field *wave.Field, body BodyConfig, opts Options) (*Simulator, error) {
	solver, err := buoyancy.NewSolver(body.Buoyancy, body.Bounds)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		scene:   scene,
		field:   field,
		surface: wave.Offset{Surface: field, Level: scene.SurfaceY},
		solver:  solver,
		opts:    opts,
		log:     opts.Log,
	}
	if body.Vehicle != nil {
		if s.dynamics, err = vehicle.New(*body.Vehicle); err != nil {
			return nil, err
		}
	}
	if s.opts.Handler == nil {
		s.opts.Handler = NopHandler{}
	}
	if s.opts.Integrator == nil {
		s.opts.Integrator = rigidbody.SymplecticEuler{}
	}
	if s.opts.HistorySize > 0 {
		s.history = NewHistory(s.opts.HistorySize)
	}
	if s.log == nil {
		s.log = logrus.New()
		s.log.SetOutput(io.Discard)
	}
	if s.metrics, err = newMetrics(opts.Name); err != nil {
		return nil, err
	}
	return s, nil
}

// Scene ...
func (s *Simulator) Scene() Scene {
	return s.scene
}

// Field returns the wave field shared by the scene.
func (s *Simulator) Field() *wave.Field {
	return s.field
}

// Surface returns the water surface, the wave field raised to the scene's SurfaceY.
func (s *Simulator) Surface() wave.Surface {
	return s.surface
}

// Solver ...
func (s *Simulator) Solver() *buoyancy.Solver {
	return s.solver
}

// Dynamics returns the vehicle dynamics of the body, or nil for passive bodies.
func (s *Simulator) Dynamics() *vehicle.Dynamics {
	return s.dynamics
}

// History returns the snapshot history, or nil if it is disabled.
func (s *Simulator) History() *History {
	return s.history
}

// InWater reports whether the body is currently considered to be in the water.
func (s *Simulator) InWater() bool {
	return s.tracker.InWater()
}

// Dt returns the fixed tick duration.
func (s *Simulator) Dt() float64 {
	return s.scene.Dt()
}

// TickCount returns the number of ticks run so far.
func (s *Simulator) TickCount() uint64 {
	return s.tick
}

// Time returns the current simulation time. It is derived from the tick count so
// that it does not drift over long sessions.
func (s *Simulator) Time() float64 {
	return float64(s.tick) * s.scene.Dt()
}

// SetBounds regenerates the voxel grid if the body's collider bounds changed. It
// must be called between ticks, never from a Handler.
func (s *Simulator) SetBounds(bounds cube.BBox) error {
	return s.solver.SetBounds(bounds)
}

// Step computes the contributions of the buoyancy solver and the vehicle dynamics
// for a tick of duration dt starting at the current simulation time. It does not
// integrate the body or advance time.
func (s *Simulator) Step(body *rigidbody.State, in vehicle.Inputs, dt float64) Contribution {
	var c Contribution
	if body == nil || !(dt > 0) {
		return c
	}
	c.Buoyancy = s.solver.Solve(body, s.surface, s.Time(), s.scene.Constants)
	c.Buoyancy.Apply(&c.Forces, body.WorldCenterOfMass())

	if s.dynamics != nil {
		c.Thrust = s.dynamics.Step(body, in, c.Buoyancy.Fraction)
		c.Forces.Add(c.Thrust)
	}
	return c
}

// Tick runs a single fixed time step: it computes the contributions for the body,
// applies the water resistance, integrates the body, applies the vehicle's
// post-integration corrections and advances the simulation time.
func (s *Simulator) Tick(body *rigidbody.State, in vehicle.Inputs) TickResult {
	res := TickResult{Tick: s.tick, Time: s.Time()}
	if body == nil {
		res.Outcome = OutcomeSkipped
		return res
	}
	dt := s.Dt()

	var before vehicle.State
	if s.dynamics != nil {
		before = s.dynamics.State()
	}

	res.Contribution = s.Step(body, in, dt)
	body.LinearDrag, body.AngularDrag = res.Buoyancy.LinearDrag, res.Buoyancy.AngularDrag
	s.opts.Integrator.Integrate(body, res.Forces, s.scene.Constants, dt)
	if s.dynamics != nil {
		s.dynamics.Correct(body)
		res.Control = s.dynamics.State()
	}
	s.tick++

	if !omath.Finite(body.Position) || !omath.Finite(body.LinearVelocity) || !omath.Finite(body.AngularVelocity) {
		res.Outcome = OutcomeDiverged
		s.log.Warnf("%s: body state diverged at tick %d (pos=%v, vel=%v)", s.opts.Name, res.Tick, body.Position, body.LinearVelocity)
	}

	res.Transition = s.tracker.Update(res.Buoyancy.Fraction)
	switch res.Transition {
	case buoyancy.TransitionEnter:
		s.log.Debugf("%s: entered water at tick %d (fraction=%.3f)", s.opts.Name, res.Tick, res.Buoyancy.Fraction)
		s.opts.Handler.HandleWaterEnter(res.Tick, res.Buoyancy)
	case buoyancy.TransitionExit:
		s.log.Debugf("%s: left water at tick %d", s.opts.Name, res.Tick)
		s.opts.Handler.HandleWaterExit(res.Tick)
	}
	if s.dynamics != nil && before.DepthHold != res.Control.DepthHold {
		s.log.Debugf("%s: depth hold %v at tick %d (target=%.2f)", s.opts.Name, res.Control.DepthHold, res.Tick, res.Control.TargetDepth)
		s.opts.Handler.HandleDepthHold(res.Tick, res.Control)
	}

	s.metrics.record(res.Buoyancy.Fraction, res.Transition)
	if s.history != nil {
		s.history.Add(snapshotOf(res, body))
	}
	s.debugf("tick %d: pos=%v vel=%v fraction=%.3f force=%v torque=%v", res.Tick, body.Position, body.LinearVelocity, res.Buoyancy.Fraction, res.Force, res.Torque)
	return res
}

// Advance consumes frameDelta seconds of wall time, running as many fixed ticks as
// fit and carrying the remainder to the next call. At most MaxTicksPerAdvance ticks
// run per call; time beyond that is dropped.
func (s *Simulator) Advance(body *rigidbody.State, frameDelta float64, src InputSource) []TickResult {
	if body == nil || !(frameDelta > 0) || math.IsInf(frameDelta, 0) {
		return nil
	}
	dt := s.Dt()
	s.accumulator += frameDelta

	n := int(math.Floor(s.accumulator/dt + 1e-9))
	if n > s.scene.MaxTicksPerAdvance {
		s.log.Debugf("%s: dropping %d ticks, simulation is running behind", s.opts.Name, n-s.scene.MaxTicksPerAdvance)
		n = s.scene.MaxTicksPerAdvance
		s.accumulator = float64(n) * dt
	}
	if n <= 0 {
		return nil
	}

	results := make([]TickResult, 0, n)
	for range n {
		var in vehicle.Inputs
		if src != nil {
			in = src.Inputs(s.tick, s.Time())
		}
		results = append(results, s.Tick(body, in))
		s.accumulator -= dt
	}
	if s.accumulator < 0 {
		s.accumulator = 0
	}
	return results
}

// Accumulated returns the wall time carried over to the next Advance.
func (s *Simulator) Accumulated() float64 {
	return s.accumulator
}

func (s *Simulator) debugf(format string, args ...any) {
	if s.opts.Debugf != nil {
		s.opts.Debugf(format, args...)
	}
}
