package rigidbody

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Integrator advances a rigid body by a single time step under the given forces.
type Integrator interface {
	Integrate(s *State, f Forces, c Constants, dt float64)
}

// SymplecticEuler is a semi-implicit Euler integrator. Velocities are updated first
// and the new velocities are used to advance position and orientation. Angular
// motion is integrated in the body frame against the principal moments of inertia,
// including the gyroscopic term.
type SymplecticEuler struct{}

// Integrate ...
func (SymplecticEuler) Integrate(s *State, f Forces, c Constants, dt float64) {
	if s == nil || !(dt > 0) || !(s.Mass > 0) {
		return
	}

	accel := f.Force.Mul(1 / s.Mass)
	if s.UseGravity {
		accel = accel.Add(c.GravityVec())
	}
	s.LinearVelocity = s.LinearVelocity.Add(accel.Mul(dt))
	if s.LinearDrag > 0 {
		s.LinearVelocity = s.LinearVelocity.Mul(1 / (1 + s.LinearDrag*dt))
	}

	q := s.Rotation()
	s.AngularVelocity = q.Rotate(integrateBodyAngular(q.Conjugate().Rotate(s.AngularVelocity), q.Conjugate().Rotate(f.Torque), s.Inertia, dt))
	if s.AngularDrag > 0 {
		s.AngularVelocity = s.AngularVelocity.Mul(1 / (1 + s.AngularDrag*dt))
	}

	// The body rotates about its centre of mass, so the centre of mass is advanced
	// and the origin placed relative to it under the new orientation.
	com := s.WorldCenterOfMass().Add(s.LinearVelocity.Mul(dt))

	spin := mgl64.Quat{W: 0, V: s.AngularVelocity}.Mul(q).Scale(0.5 * dt)
	s.Orientation = q.Add(spin).Normalize()
	s.Position = com.Sub(s.Orientation.Rotate(s.CenterOfMass))
}

// integrateBodyAngular applies Euler's rotation equations in the body frame. Axes with
// a non-positive moment of inertia receive no angular acceleration; their angular
// velocity is carried through unchanged.
func integrateBodyAngular(omega, torque, inertia mgl64.Vec3, dt float64) mgl64.Vec3 {
	momentum := mgl64.Vec3{inertia[0] * omega[0], inertia[1] * omega[1], inertia[2] * omega[2]}
	net := torque.Sub(omega.Cross(momentum))
	for i := range 3 {
		if inertia[i] > 0 {
			omega[i] += net[i] / inertia[i] * dt
		}
	}
	return omega
}
