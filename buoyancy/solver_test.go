package buoyancy

import (
	"math"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitCube = cube.Box(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)

func newSolver(t *testing.T, resolution int) *Solver {
	t.Helper()
	conf := DefaultConfig()
	conf.Resolution = resolution
	s, err := NewSolver(conf, unitCube)
	require.NoError(t, err)
	return s
}

func TestVoxelGrid(t *testing.T) {
	g, err := NewVoxelGrid(cube.Box(0, 0, 0, 2, 4, 6), 3)
	require.NoError(t, err)
	require.Equal(t, 27, g.Len())
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, g.At(0))
	assert.Equal(t, mgl64.Vec3{0, 0, 3}, g.At(1))
	assert.Equal(t, mgl64.Vec3{2, 4, 6}, g.At(26))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, g.At(13))
	assert.InDelta(t, 48, g.Volume(), 1e-12)
	assert.False(t, g.Degenerate())

	_, err = NewVoxelGrid(unitCube, 2)
	assert.ErrorIs(t, err, oerror.ErrConfiguration)

	flat, err := NewVoxelGrid(cube.Box(0, 0, 0, 1, 0, 1), 3)
	require.NoError(t, err)
	assert.True(t, flat.Degenerate())
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{name: "low resolution", edit: func(c *Config) { c.Resolution = 2 }},
		{name: "zero volume without auto", edit: func(c *Config) { c.AutoVolume = false; c.Volume = 0 }},
		{name: "negative drag", edit: func(c *Config) { c.WetLinearDrag = -1 }},
		{name: "nan gain", edit: func(c *Config) { c.RightingGain = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			tt.edit(&conf)
			_, err := NewSolver(conf, unitCube)
			require.Error(t, err)
			assert.True(t, oerror.IsConfiguration(err))
		})
	}
}

func TestEquilibrium(t *testing.T) {
	c := rigidbody.DefaultConstants()
	// A unit cube with half the density of water floats half submerged.
	body := rigidbody.NewBox(mgl64.Vec3{}, 500, mgl64.Vec3{1, 1, 1})
	s := newSolver(t, 5)
	surface := wave.MustNew(wave.Config{Directions: 4})

	for range 10 {
		res := s.Solve(&body, surface, 0, c)
		require.InDelta(t, 0.5, res.Fraction, 1e-12)
		assert.InDelta(t, body.Weight(c), c.WaterDensity*c.Gravity*s.Volume()*res.Fraction, 1e-9)

		f := res.Forces(body.WorldCenterOfMass())
		assert.InDelta(t, 0, f.Force.Y()-body.Weight(c), 1e-6)
		assert.InDelta(t, 0, f.Torque.Len(), 1e-9)
	}

	for range 50 {
		var f rigidbody.Forces
		s.Solve(&body, surface, 0, c).Apply(&f, body.WorldCenterOfMass())
		rigidbody.SymplecticEuler{}.Integrate(&body, f, c, 0.02)
	}
	assert.InDelta(t, 0, body.Position.Y(), 1e-6)
}

func TestFractionMonotonic(t *testing.T) {
	c := rigidbody.DefaultConstants()
	s := newSolver(t, 6)
	surface := wave.MustNew(wave.Config{Amplitude: 0.5, Frequency: 0.9, Speed: 1, Directions: 3})

	body := rigidbody.NewBox(mgl64.Vec3{0.3, 2, -0.7}, 1, mgl64.Vec3{1, 1, 1})
	body.Orientation = mgl64.AnglesToQuat(0.3, -0.5, 1.1, mgl64.XYZ)

	assert.Zero(t, s.Solve(&body, surface, 1.5, c).Fraction)

	last := 0.0
	for y := 2.0; y >= -2; y -= 0.05 {
		body.Position[1] = y
		res := s.Solve(&body, surface, 1.5, c)
		require.GreaterOrEqual(t, res.Fraction, last, "fraction decreased at y=%v", y)
		last = res.Fraction
	}
	assert.Equal(t, 1.0, last)
}

func TestFullySubmergedAndDry(t *testing.T) {
	c := rigidbody.DefaultConstants()
	s := newSolver(t, 4)
	surface := wave.Flat{}

	body := rigidbody.NewBox(mgl64.Vec3{0, -5, 0}, 1, mgl64.Vec3{1, 1, 1})
	body.Orientation = mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0})
	res := s.Solve(&body, surface, 0, c)
	assert.Equal(t, 1.0, res.Fraction)
	assert.InDelta(t, c.WaterDensity*c.Gravity, res.Force.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, res.Torque)
	assert.InDelta(t, 0, res.Point.Sub(body.Position).Len(), 1e-9)
	assert.Equal(t, s.Config().WetLinearDrag, res.LinearDrag)

	body.Position = mgl64.Vec3{0, 5, 0}
	res = s.Solve(&body, surface, 0, c)
	assert.Zero(t, res.Fraction)
	assert.False(t, res.Submerged())
	assert.Equal(t, mgl64.Vec3{}, res.Force)
	assert.Equal(t, s.Config().DryLinearDrag, res.LinearDrag)
	assert.Equal(t, s.Config().DryAngularDrag, res.AngularDrag)
}

func TestZeroVolumeIsNoop(t *testing.T) {
	c := rigidbody.DefaultConstants()
	s, err := NewSolver(DefaultConfig(), cube.Box(0, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	require.Zero(t, s.Volume())

	for _, y := range []float64{-10, 0, 10} {
		body := rigidbody.NewBox(mgl64.Vec3{0, y, 0}, 1, mgl64.Vec3{1, 1, 1})
		res := s.Solve(&body, wave.Flat{}, 0, c)
		assert.Zero(t, res.Fraction)
		assert.True(t, res.Forces(body.Position).IsZero())
	}
}

func TestResolutionConvergence(t *testing.T) {
	c := rigidbody.DefaultConstants()
	body := rigidbody.NewBox(mgl64.Vec3{}, 1, mgl64.Vec3{1, 1, 1})

	coarse := newSolver(t, 3).Solve(&body, wave.Flat{}, 0, c)
	fine := newSolver(t, 15).Solve(&body, wave.Flat{}, 0, c)
	assert.InDelta(t, 0.5, coarse.Fraction, 0.02)
	assert.InDelta(t, 0.5, fine.Fraction, 0.02)
	assert.InDelta(t, coarse.Fraction, fine.Fraction, 0.02)
}

func TestCenterOfBuoyancy(t *testing.T) {
	c := rigidbody.DefaultConstants()
	body := rigidbody.NewBox(mgl64.Vec3{3, 0, -2}, 1, mgl64.Vec3{1, 1, 1})
	res := newSolver(t, 3).Solve(&body, wave.Flat{}, 0, c)

	// One full layer at y=-0.5 and a half-weighted layer on the surface.
	assert.InDelta(t, -1.0/3, res.Point.Y(), 1e-12)
	assert.InDelta(t, 3, res.Point.X(), 1e-12)
	assert.InDelta(t, -2, res.Point.Z(), 1e-12)
}

func TestRightingTorque(t *testing.T) {
	c := rigidbody.DefaultConstants()
	s := newSolver(t, 9)
	body := rigidbody.NewBox(mgl64.Vec3{}, 1, mgl64.Vec3{1, 1, 1})
	body.Orientation = mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1})

	res := s.Solve(&body, wave.Flat{}, 0, c)
	require.Greater(t, res.Fraction, PartialMin)
	require.Less(t, res.Fraction, PartialMax)
	// Rolled towards -X about +Z; the righting torque turns it back about -Z.
	assert.Negative(t, res.Torque.Z())
	assert.InDelta(t, 0, res.Torque.X(), 1e-12)

	body.Orientation = mgl64.QuatIdent()
	res = s.Solve(&body, wave.Flat{}, 0, c)
	assert.InDelta(t, 0, res.Torque.Len(), 1e-12)
}

func TestQuadraticDrag(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, QuadraticDrag(mgl64.Vec3{}, 1, 1))

	d := QuadraticDrag(mgl64.Vec3{0, 0, 2}, 0.5, 0.5)
	assert.InDelta(t, -1, d.Z(), 1e-12)

	c := rigidbody.DefaultConstants()
	body := rigidbody.NewBox(mgl64.Vec3{0, -3, 0}, 1, mgl64.Vec3{1, 1, 1})
	body.LinearVelocity = mgl64.Vec3{3, 0, 4}
	res := newSolver(t, 3).Solve(&body, wave.Flat{}, 0, c)
	assert.InDelta(t, 25*DefaultQuadraticDrag, res.DragForce.Len(), 1e-9)
	assert.InDelta(t, -1, res.DragForce.Normalize().Dot(body.LinearVelocity.Normalize()), 1e-12)
}

func TestSetBounds(t *testing.T) {
	s := newSolver(t, 3)
	grid := s.Grid()
	require.NoError(t, s.SetBounds(unitCube))
	assert.Same(t, grid, s.Grid())

	require.NoError(t, s.SetBounds(cube.Box(-1, -1, -1, 1, 1, 1)))
	assert.NotSame(t, grid, s.Grid())
	assert.InDelta(t, 8, s.Volume(), 1e-12)
}

func TestSolveNilInputs(t *testing.T) {
	var s *Solver
	assert.Equal(t, Result{}, s.Solve(nil, nil, 0, rigidbody.DefaultConstants()))

	body := rigidbody.NewBox(mgl64.Vec3{}, 1, mgl64.Vec3{1, 1, 1})
	res := newSolver(t, 3).Solve(&body, nil, 0, rigidbody.DefaultConstants())
	assert.Zero(t, res.Fraction)
}

func TestSampleWeight(t *testing.T) {
	assert.Equal(t, 1.0, sampleWeight(-0.1, 0))
	assert.Equal(t, 0.5, sampleWeight(0, 0))
	assert.Equal(t, 0.5, sampleWeight(1e-10, 0))
	assert.Equal(t, 0.0, sampleWeight(1e-6, 0))
	assert.Equal(t, 0.0, sampleWeight(0, math.NaN()))
}
