package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/assert"
	"github.com/oomph-ac/subsim/omath"
	"github.com/oomph-ac/subsim/rigidbody"
)

// NoFraction is passed to Step when no buoyancy solver reports a submerged fraction.
const NoFraction = -1.0

// Dynamics turns pilot input into thruster forces and applies the vehicle's control
// assists: stabilization, depth hold, surface avoidance and velocity limiting.
type Dynamics struct {
	conf  Config
	state State
}

// New validates conf and returns a Dynamics with depth hold disengaged.
func New(conf Config) (*Dynamics, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Dynamics{conf: conf}, nil
}

// MustNew is New, but panics on an invalid configuration.
func MustNew(conf Config) *Dynamics {
	d, err := New(conf)
	assert.NoError(err)
	return d
}

// Config ...
func (d *Dynamics) Config() Config {
	return d.conf
}

// State returns the control state carried across ticks.
func (d *Dynamics) State() State {
	return d.state
}

// Step computes the vehicle's force and torque contributions for one tick. fraction
// is the body's submerged fraction, or NoFraction if unknown. Step may damp the
// body's upward velocity while it is breaching the surface, but otherwise only reads
// the body.
func (d *Dynamics) Step(body *rigidbody.State, in Inputs, fraction float64) rigidbody.Forces {
	var out rigidbody.Forces
	if body == nil {
		return out
	}
	in = in.Sanitized()
	d.state.update(in, body.Position.Y())

	q := body.Rotation()
	thrust := mgl64.Vec3{
		in.Sway * d.conf.HorizontalThrust,
		in.Heave * d.conf.VerticalThrust,
		in.Surge * d.conf.HorizontalThrust,
	}
	out.AddForce(q.Rotate(thrust))
	out.AddTorque(body.Up().Mul(in.Yaw * d.conf.YawThrust))

	if !d.conf.RollLock {
		pitch, roll := omath.PitchRoll(q)
		out.AddTorque(q.Rotate(mgl64.Vec3{-pitch, 0, -roll}.Mul(d.conf.StabilizationGain)))
	}

	if d.state.Engaged() {
		out.AddForce(omath.Up.Mul((d.state.TargetDepth - body.Position.Y()) * d.conf.DepthHoldGain))
	}

	if d.conf.SurfaceAvoidance && d.breaching(body.Position.Y(), fraction) {
		overshoot := math.Max(0, body.Position.Y()-(d.conf.SurfaceY-d.conf.SurfaceMargin))
		out.AddForce(omath.Up.Mul(-(overshoot*d.conf.SurfaceGain + d.conf.SurfaceFloor)))
		if body.LinearVelocity[1] > 0 {
			body.LinearVelocity[1] *= d.conf.SurfaceDamping
		}
	}
	return out
}

// breaching reports whether the vehicle is rising into the surface margin, or is
// partially out of the water close below it.
func (d *Dynamics) breaching(y, fraction float64) bool {
	limit := d.conf.SurfaceY - d.conf.SurfaceMargin
	if y > limit {
		return true
	}
	return fraction > 0 && fraction < 1 && y > limit-d.conf.SurfaceMargin
}

// Correct applies the post-integration corrections of a tick: the roll lock, if
// enabled, and the linear and angular speed limits. It must run every tick,
// whether or not any thrust was commanded.
func (d *Dynamics) Correct(body *rigidbody.State) {
	if body == nil {
		return
	}
	if d.conf.RollLock {
		body.Orientation = omath.YawOnly(body.Rotation())
		body.AngularVelocity = mgl64.Vec3{0, body.AngularVelocity.Y(), 0}
	}
	body.LinearVelocity = omath.ClampMagnitude(body.LinearVelocity, d.conf.MaxLinearSpeed)
	body.AngularVelocity = omath.ClampMagnitude(body.AngularVelocity, d.conf.MaxAngularSpeed)
}
