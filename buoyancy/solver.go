package buoyancy

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/assert"
	"github.com/oomph-ac/subsim/omath"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/wave"
)

const (
	// PartialMin and PartialMax bound the submerged fractions for which a body is
	// considered partially submerged and receives a righting torque.
	PartialMin = 0.1
	PartialMax = 0.9

	// surfaceTolerance is the distance from the surface within which a sample counts
	// as half submerged.
	surfaceTolerance = 1e-9
)

// Solver computes Archimedes buoyancy for a single body by testing its voxel samples
// against a water surface.
type Solver struct {
	conf   Config
	grid   *VoxelGrid
	volume float64
}

// NewSolver validates conf and builds the voxel grid for the body-local collider
// bounds passed.
func NewSolver(conf Config, bounds cube.BBox) (*Solver, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	s := &Solver{conf: conf}
	if err := s.SetBounds(bounds); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewSolver is NewSolver, but panics on an invalid configuration.
func MustNewSolver(conf Config, bounds cube.BBox) *Solver {
	s, err := NewSolver(conf, bounds)
	assert.NoError(err)
	return s
}

// SetBounds regenerates the voxel grid if the collider bounds changed. It must not be
// called from within a tick.
func (s *Solver) SetBounds(bounds cube.BBox) error {
	if s.grid != nil && s.grid.Bounds() == bounds {
		return nil
	}
	grid, err := NewVoxelGrid(bounds, s.conf.Resolution)
	if err != nil {
		return err
	}
	s.grid = grid
	s.volume = s.conf.Volume
	if s.conf.AutoVolume {
		s.volume = grid.Volume()
	}
	return nil
}

// Config ...
func (s *Solver) Config() Config {
	return s.conf
}

// Grid returns the voxel grid currently in use.
func (s *Solver) Grid() *VoxelGrid {
	return s.grid
}

// Volume returns the displacement volume used for the body.
func (s *Solver) Volume() float64 {
	return s.volume
}

// Solve computes the buoyancy acting on body at simulation time t. A sample counts as
// submerged when it lies below the surface; a sample within 1e-9 m of the surface
// counts as half submerged, so that a body floating exactly half way reports a
// fraction of 0.5 at every grid resolution. It never fails: degenerate input, such
// as a body with no volume or no submerged samples, yields a zero result.
func (s *Solver) Solve(body *rigidbody.State, surface wave.Surface, t float64, c rigidbody.Constants) Result {
	res := Result{}
	if s == nil || body == nil {
		return res
	}
	res.LinearDrag, res.AngularDrag = s.conf.DryLinearDrag, s.conf.DryAngularDrag
	if surface == nil || s.grid == nil || s.grid.Degenerate() || !(s.volume > 0) {
		return res
	}

	var (
		weight   float64
		centroid mgl64.Vec3
	)
	for _, local := range s.grid.points {
		p := body.LocalToWorld(local)
		w := sampleWeight(p[1], surface.Height(p[0], p[2], t))
		if w == 0 {
			continue
		}
		weight += w
		centroid = centroid.Add(p.Mul(w))
	}
	if weight == 0 {
		return res
	}

	res.Fraction = omath.Clamp(weight/float64(s.grid.Len()), 0, 1)
	res.Point = centroid.Mul(1 / weight)

	magnitude := c.WaterDensity * c.Gravity * s.volume * res.Fraction
	res.Force = omath.Up.Mul(magnitude)

	if res.Fraction > PartialMin && res.Fraction < PartialMax {
		res.Torque = body.Up().Cross(omath.Up).Mul(magnitude * s.conf.RightingGain)
	}

	res.LinearDrag = omath.Lerp(s.conf.DryLinearDrag, s.conf.WetLinearDrag, res.Fraction)
	res.AngularDrag = omath.Lerp(s.conf.DryAngularDrag, s.conf.WetAngularDrag, res.Fraction)
	res.DragForce = QuadraticDrag(body.LinearVelocity, s.conf.QuadraticDrag, res.Fraction)
	return res
}

// QuadraticDrag returns −normalize(v)·|v|²·k·fraction. A zero velocity yields a zero
// force.
func QuadraticDrag(v mgl64.Vec3, k, fraction float64) mgl64.Vec3 {
	dir, ok := omath.SafeNormalize(v)
	if !ok {
		return mgl64.Vec3{}
	}
	return dir.Mul(-v.LenSqr() * k * fraction)
}

// sampleWeight returns how much of a sample at height y counts as submerged below a
// surface at height h.
func sampleWeight(y, h float64) float64 {
	switch d := h - y; {
	case math.IsNaN(d):
		return 0
	case d > surfaceTolerance:
		return 1
	case d >= -surfaceTolerance:
		return 0.5
	default:
		return 0
	}
}
