package sim

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/subsim/assert"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/vehicle"
	"github.com/oomph-ac/subsim/wave"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Body is a rigid body simulated in a World.
type Body struct {
	Name  string
	State *rigidbody.State
	Sim   *Simulator
}

// BodyResult is the result of ticking one body of a World.
type BodyResult struct {
	Name string
	TickResult
}

// World is a set of bodies simulated in the same scene, sharing one wave field and
// one clock. Bodies are ticked in the order they were added, which keeps a World
// deterministic.
type World struct {
	scene  Scene
	field  *wave.Field
	log    *logrus.Logger
	bodies *orderedmap.OrderedMap[string, *Body]

	tick uint64
}

// NewWorld validates scene and creates an empty World. A nil log discards all output.
func NewWorld(scene Scene, log *logrus.Logger) (*World, error) {
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	field, err := wave.New(scene.Wave)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &World{
		scene:  scene,
		field:  field,
		log:    log,
		bodies: orderedmap.NewOrderedMap[string, *Body](),
	}, nil
}

// Scene ...
func (w *World) Scene() Scene {
	return w.scene
}

// Field ...
func (w *World) Field() *wave.Field {
	return w.field
}

// TickCount returns the number of ticks the World has run.
func (w *World) TickCount() uint64 {
	return w.tick
}

// Time returns the simulation time every body of the World is at.
func (w *World) Time() float64 {
	return float64(w.tick) * w.scene.Dt()
}

// Add creates a Simulator for a body named name and adds it to the World. The
// body joins at the World's current time. The Options' Name and Log are filled in
// from the World when left empty.
func (w *World) Add(name string, state *rigidbody.State, conf BodyConfig, opts Options) (*Body, error) {
	if state == nil {
		return nil, fmt.Errorf("body %q: nil state", name)
	}
	if _, ok := w.bodies.Get(name); ok {
		return nil, fmt.Errorf("body %q already exists", name)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	if opts.Name == "" {
		opts.Name = name
	}
	if opts.Log == nil {
		opts.Log = w.log
	}
	s, err := newSimulator(w.scene, w.field, conf, opts)
	if err != nil {
		return nil, fmt.Errorf("body %q: %w", name, err)
	}
	s.tick = w.tick
	b := &Body{Name: name, State: state, Sim: s}
	w.bodies.Set(name, b)
	w.log.Debugf("added body %s (mass=%.1f, volume=%.2f)", name, state.Mass, s.Solver().Volume())
	return b, nil
}

// Remove removes the body named name, returning false if there is none.
func (w *World) Remove(name string) bool {
	return w.bodies.Delete(name)
}

// Body ...
func (w *World) Body(name string) (*Body, bool) {
	return w.bodies.Get(name)
}

// Len returns the number of bodies in the World.
func (w *World) Len() int {
	return w.bodies.Len()
}

// Bodies returns the bodies in the order they were added.
func (w *World) Bodies() []*Body {
	bodies := make([]*Body, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		bodies = append(bodies, el.Value)
	}
	return bodies
}

// Tick runs a single tick for every body at the World's time and advances it.
// Bodies without an entry in inputs are ticked with idle inputs. The World owns the
// clock of its bodies: a body ticked outside of Tick is brought back to the World's
// time.
func (w *World) Tick(inputs map[string]vehicle.Inputs) []BodyResult {
	results := make([]BodyResult, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		assert.IsTrue(b.State != nil, "body %s has no state", b.Name)
		b.Sim.tick = w.tick
		results = append(results, BodyResult{Name: b.Name, TickResult: b.Sim.Tick(b.State, inputs[b.Name])})
	}
	w.tick++
	return results
}

// Checksum hashes the name and kinematic state of every body. Two Worlds that were
// built and driven identically have the same checksum.
func (w *World) Checksum() uint64 {
	h := xxh3.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		b := el.Value
		_, _ = h.Write([]byte(b.Name))
		binary.LittleEndian.PutUint64(buf[:], b.Sim.TickCount())
		_, _ = h.Write(buf[:])

		s := b.State
		for _, v := range s.Position {
			writeFloat(v)
		}
		writeFloat(s.Orientation.W)
		for _, v := range s.Orientation.V {
			writeFloat(v)
		}
		for _, v := range s.LinearVelocity {
			writeFloat(v)
		}
		for _, v := range s.AngularVelocity {
			writeFloat(v)
		}
	}
	return h.Sum64()
}
