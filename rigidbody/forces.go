package rigidbody

import "github.com/go-gl/mathgl/mgl64"

// Forces accumulates the world-space force and torque contributions applied to a
// body during a single tick.
type Forces struct {
	Force  mgl64.Vec3
	Torque mgl64.Vec3
}

// AddForce adds a force acting through the centre of mass.
func (f *Forces) AddForce(force mgl64.Vec3) {
	f.Force = f.Force.Add(force)
}

// AddTorque ...
func (f *Forces) AddTorque(torque mgl64.Vec3) {
	f.Torque = f.Torque.Add(torque)
}

// AddForceAtPosition adds a force applied at the world-space point p. The offset from
// the centre of mass com produces the torque r × F.
func (f *Forces) AddForceAtPosition(force, p, com mgl64.Vec3) {
	f.Force = f.Force.Add(force)
	f.Torque = f.Torque.Add(p.Sub(com).Cross(force))
}

// Add accumulates another set of contributions.
func (f *Forces) Add(o Forces) {
	f.Force = f.Force.Add(o.Force)
	f.Torque = f.Torque.Add(o.Torque)
}

// IsZero ...
func (f Forces) IsZero() bool {
	return f.Force == (mgl64.Vec3{}) && f.Torque == (mgl64.Vec3{})
}
