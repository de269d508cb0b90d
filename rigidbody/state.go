package rigidbody

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/omath"
)

// State is the kinematic state of a single rigid body. It is owned and advanced by
// an Integrator; the simulation components read it and return force contributions.
type State struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	// LinearVelocity and AngularVelocity are expressed in world space.
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Mass float64
	// Inertia holds the principal moments of inertia about the body X, Y and Z axes.
	Inertia mgl64.Vec3
	// CenterOfMass is the body-local offset of the centre of mass from Position.
	CenterOfMass mgl64.Vec3

	LinearDrag  float64
	AngularDrag float64

	UseGravity bool
}

// NewBox returns a resting body with the mass and inertia of a solid box of the given
// size, positioned at pos.
func NewBox(pos mgl64.Vec3, mass float64, size mgl64.Vec3) State {
	return State{
		Position:    pos,
		Orientation: mgl64.QuatIdent(),
		Mass:        mass,
		Inertia:     BoxInertia(mass, size),
		UseGravity:  true,
	}
}

// BoxInertia returns the principal moments of inertia of a solid box.
func BoxInertia(mass float64, size mgl64.Vec3) mgl64.Vec3 {
	x2, y2, z2 := size[0]*size[0], size[1]*size[1], size[2]*size[2]
	return mgl64.Vec3{
		mass / 12 * (y2 + z2),
		mass / 12 * (x2 + z2),
		mass / 12 * (x2 + y2),
	}
}

// Rotation returns the orientation of the body, treating an unset (zero) quaternion
// as the identity.
func (s *State) Rotation() mgl64.Quat {
	if s.Orientation.Len() < omath.Epsilon {
		return mgl64.QuatIdent()
	}
	return s.Orientation
}

// LocalToWorld transforms a body-local point into world space.
func (s *State) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return s.Position.Add(s.Rotation().Rotate(p))
}

// WorldCenterOfMass ...
func (s *State) WorldCenterOfMass() mgl64.Vec3 {
	return s.LocalToWorld(s.CenterOfMass)
}

// Up returns the body's up axis in world space.
func (s *State) Up() mgl64.Vec3 {
	return s.Rotation().Rotate(omath.Up)
}

// Forward returns the body's forward axis in world space.
func (s *State) Forward() mgl64.Vec3 {
	return s.Rotation().Rotate(omath.Forward)
}

// Right returns the body's right axis in world space.
func (s *State) Right() mgl64.Vec3 {
	return s.Rotation().Rotate(omath.Right)
}

// Weight returns the gravitational force acting on the body.
func (s *State) Weight(c Constants) float64 {
	return s.Mass * c.Gravity
}
