package buoyancy

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/rigidbody"
)

// Result is the outcome of solving buoyancy for one body at one instant.
type Result struct {
	// Fraction is the submerged share of the voxel samples, in [0, 1].
	Fraction float64
	// Force is the buoyant force, directed world up.
	Force mgl64.Vec3
	// Point is the world-space centre of buoyancy where Force is applied.
	Point mgl64.Vec3
	// Torque is the righting torque of a partially submerged hull. It does not include
	// the torque produced by Force acting off the centre of mass.
	Torque mgl64.Vec3
	// DragForce is the quadratic water resistance opposing the body's velocity. It is
	// reported separately from Force and is not included in it.
	DragForce mgl64.Vec3

	// LinearDrag and AngularDrag are the body's drag coefficients blended between
	// their dry and wet values by Fraction.
	LinearDrag  float64
	AngularDrag float64
}

// Submerged reports whether any part of the body is below the surface.
func (r Result) Submerged() bool {
	return r.Fraction > 0
}

// Apply adds the buoyant force at the centre of buoyancy, the righting torque and the
// drag force to f. com is the world-space centre of mass of the body.
func (r Result) Apply(f *rigidbody.Forces, com mgl64.Vec3) {
	if !r.Submerged() {
		return
	}
	f.AddForceAtPosition(r.Force, r.Point, com)
	f.AddTorque(r.Torque)
	f.AddForce(r.DragForce)
}

// Forces returns the contributions of r as a standalone accumulator.
func (r Result) Forces(com mgl64.Vec3) rigidbody.Forces {
	var f rigidbody.Forces
	r.Apply(&f, com)
	return f
}
