package wave

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/assert"
	"github.com/oomph-ac/subsim/omath"
)

// Field is a procedural water surface. It holds no state beyond its configuration,
// so a single Field may be queried from any number of goroutines.
type Field struct {
	conf Config

	// dirs holds the unit direction of every wave, (cos θ, sin θ) on the XZ plane.
	dirs [][2]float64
	// weight is Amplitude/N, the contribution bound of a single wave.
	weight float64
}

// New creates a Field from the configuration passed.
func New(conf Config) (*Field, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	f := &Field{
		conf:   conf,
		dirs:   make([][2]float64, conf.Directions),
		weight: conf.Amplitude / float64(conf.Directions),
	}
	for k := range f.dirs {
		theta := 2 * math.Pi * float64(k) / float64(conf.Directions)
		f.dirs[k] = [2]float64{math.Cos(theta), math.Sin(theta)}
	}
	return f, nil
}

// MustNew is New, but panics if the configuration is invalid.
func MustNew(conf Config) *Field {
	f, err := New(conf)
	assert.NoError(err)
	return f
}

// Config returns the configuration the Field was created with.
func (f *Field) Config() Config {
	return f.conf
}

// Height returns the surface height at (x, z) at simulation time t.
func (f *Field) Height(x, z, t float64) float64 {
	temporal := f.temporal(t)
	var h float64
	for _, d := range f.dirs {
		h += f.weight * math.Sin(f.phase(d, x, z, temporal))
	}
	return h
}

// Normal returns the unit surface normal at (x, z) at simulation time t. It is
// computed from the analytic partial derivatives of the height sum.
func (f *Field) Normal(x, z, t float64) mgl64.Vec3 {
	dx, dz := f.Slope(x, z, t)
	tangent := mgl64.Vec3{1, dx, 0}
	binormal := mgl64.Vec3{0, dz, 1}
	// binormal × tangent is (-dx, 1, -dz), which always has a positive Y component.
	return binormal.Cross(tangent).Normalize()
}

// Slope returns the partial derivatives ∂h/∂x and ∂h/∂z of the surface.
func (f *Field) Slope(x, z, t float64) (dx, dz float64) {
	temporal := f.temporal(t)
	k := f.weight * f.conf.Frequency
	for _, d := range f.dirs {
		c := k * math.Cos(f.phase(d, x, z, temporal))
		dx += c * d[0]
		dz += c * d[1]
	}
	return dx, dz
}

// temporal returns speed·t reduced to a single period.
func (f *Field) temporal(t float64) float64 {
	return omath.WrapPhase(f.conf.Speed * t)
}

// phase returns frequency·(d·(x,z)) − speed·t with the spatial term reduced to a
// single period, so that neither large coordinates nor long sessions lose precision.
func (f *Field) phase(d [2]float64, x, z, temporal float64) float64 {
	return omath.WrapPhase(f.conf.Frequency*(d[0]*x+d[1]*z)) - temporal
}
