package vehicle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/omath"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	conf := DefaultConfig()
	conf.SurfaceY = 0
	return conf
}

func newBody(y float64) rigidbody.State {
	return rigidbody.NewBox(mgl64.Vec3{0, y, 0}, 1500, mgl64.Vec3{2, 1.5, 4})
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name string
		edit func(*Config)
	}{
		{name: "negative thrust", edit: func(c *Config) { c.HorizontalThrust = -1 }},
		{name: "zero max speed", edit: func(c *Config) { c.MaxLinearSpeed = 0 }},
		{name: "nan angular speed", edit: func(c *Config) { c.MaxAngularSpeed = math.NaN() }},
		{name: "damping above one", edit: func(c *Config) { c.SurfaceDamping = 1.5 }},
		{name: "infinite surface", edit: func(c *Config) { c.SurfaceY = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			tt.edit(&conf)
			_, err := New(conf)
			assert.ErrorIs(t, err, oerror.ErrConfiguration)
		})
	}
}

func TestInputsSanitized(t *testing.T) {
	in := Inputs{Surge: 2, Sway: -0.05, Heave: math.NaN(), Yaw: -0.5, ToggleDepthHold: true}.Sanitized()
	assert.Equal(t, Inputs{Surge: 1, Sway: 0, Heave: 0, Yaw: -0.5, ToggleDepthHold: true}, in)
	assert.Equal(t, Inputs{}, Inputs{Surge: 0.09, Yaw: -0.09}.Sanitized())
	assert.Equal(t, Inputs{Heave: 0.1}, Inputs{Heave: 0.1}.Sanitized())
}

func TestThrustMapping(t *testing.T) {
	conf := testConfig()
	conf.SurfaceAvoidance = false
	d := MustNew(conf)
	body := newBody(-10)

	f := d.Step(&body, Inputs{Surge: 1}, NoFraction)
	assert.Equal(t, mgl64.Vec3{0, 0, conf.HorizontalThrust}, f.Force)

	f = d.Step(&body, Inputs{Sway: -0.5, Heave: 0.5}, NoFraction)
	assert.Equal(t, mgl64.Vec3{-0.5 * conf.HorizontalThrust, 0.5 * conf.VerticalThrust, 0}, f.Force)

	f = d.Step(&body, Inputs{Surge: 0.05, Sway: -0.09}, NoFraction)
	assert.True(t, f.IsZero(), "inputs inside the deadzone must not produce thrust")

	f = d.Step(&body, Inputs{Yaw: 1}, NoFraction)
	assert.Equal(t, mgl64.Vec3{}, f.Force)
	assert.Equal(t, mgl64.Vec3{0, conf.YawThrust, 0}, f.Torque)

	body.Orientation = mgl64.QuatRotate(math.Pi/2, omath.Up)
	f = d.Step(&body, Inputs{Surge: 1}, NoFraction)
	assert.InDelta(t, conf.HorizontalThrust, f.Force.X(), 1e-9)
	assert.InDelta(t, 0, f.Force.Z(), 1e-9)
}

func TestYawTorqueFollowsBodyUp(t *testing.T) {
	conf := testConfig()
	conf.SurfaceAvoidance = false
	conf.RollLock = false
	conf.StabilizationGain = 0
	d := MustNew(conf)

	body := newBody(-10)
	body.Orientation = mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0})
	f := d.Step(&body, Inputs{Yaw: 1}, NoFraction)

	dir := f.Torque.Normalize()
	assert.InDelta(t, 1, dir.Dot(body.Up()), 1e-12)
}

func TestRollLock(t *testing.T) {
	d := MustNew(testConfig())
	c := rigidbody.DefaultConstants()

	body := newBody(-10)
	body.Orientation = mgl64.AnglesToQuat(0.7, 1.2, -0.4, mgl64.XYZ)
	body.AngularVelocity = mgl64.Vec3{0.3, 0.2, -0.6}

	f := d.Step(&body, Inputs{}, NoFraction)
	rigidbody.SymplecticEuler{}.Integrate(&body, f, c, 0.02)
	yaw := omath.Yaw(body.Orientation)
	d.Correct(&body)

	pitch, roll := omath.PitchRoll(body.Orientation)
	assert.Equal(t, 0.0, math.Abs(pitch))
	assert.Equal(t, 0.0, math.Abs(roll))
	assert.InDelta(t, yaw, omath.Yaw(body.Orientation), 1e-9)
	assert.Zero(t, body.AngularVelocity.X())
	assert.Zero(t, body.AngularVelocity.Z())
}

func TestSoftLeveling(t *testing.T) {
	conf := testConfig()
	conf.RollLock = false
	conf.SurfaceAvoidance = false
	d := MustNew(conf)

	body := newBody(-10)
	body.Orientation = mgl64.QuatRotate(0.2, mgl64.Vec3{1, 0, 0})
	f := d.Step(&body, Inputs{}, NoFraction)
	assert.InDelta(t, -0.2*conf.StabilizationGain, f.Torque.X(), 1e-9)
	assert.InDelta(t, 0, f.Torque.Z(), 1e-9)

	body.Orientation = mgl64.QuatRotate(-0.3, mgl64.Vec3{0, 0, 1})
	f = d.Step(&body, Inputs{}, NoFraction)
	assert.InDelta(t, 0.3*conf.StabilizationGain, f.Torque.Z(), 1e-9)

	// Leveling is a restoring torque: integrating it brings the body back upright.
	c := rigidbody.DefaultConstants()
	body.UseGravity = false
	body.AngularDrag = 2
	for range 1000 {
		rigidbody.SymplecticEuler{}.Integrate(&body, d.Step(&body, Inputs{}, NoFraction), c, 0.02)
	}
	_, roll := omath.PitchRoll(body.Orientation)
	assert.Less(t, math.Abs(roll), 0.05)
}

func TestDepthHold(t *testing.T) {
	conf := testConfig()
	conf.SurfaceAvoidance = false
	d := MustNew(conf)
	body := newBody(-5)

	d.Step(&body, Inputs{ToggleDepthHold: true}, NoFraction)
	require.True(t, d.State().Engaged())
	assert.Equal(t, -5.0, d.State().TargetDepth)

	body.Position[1] = -6
	f := d.Step(&body, Inputs{}, NoFraction)
	assert.Positive(t, f.Force.Y())
	assert.InDelta(t, conf.DepthHoldGain, f.Force.Y(), 1e-9)

	body.Position[1] = -4
	f = d.Step(&body, Inputs{Heave: 0.05}, NoFraction)
	assert.Negative(t, f.Force.Y())
	assert.True(t, d.State().Engaged(), "heave inside the deadzone must not disengage")

	f = d.Step(&body, Inputs{Heave: 0.5}, NoFraction)
	assert.False(t, d.State().Engaged())
	assert.InDelta(t, 0.5*conf.VerticalThrust, f.Force.Y(), 1e-9)

	f = d.Step(&body, Inputs{}, NoFraction)
	assert.False(t, d.State().Engaged())
	assert.Zero(t, f.Force.Y())
}

func TestDepthHoldToggle(t *testing.T) {
	d := MustNew(testConfig())
	body := newBody(-8)

	d.Step(&body, Inputs{ToggleDepthHold: true}, NoFraction)
	require.True(t, d.State().Engaged())
	d.Step(&body, Inputs{ToggleDepthHold: true}, NoFraction)
	assert.False(t, d.State().Engaged())

	d.Step(&body, Inputs{ToggleDepthHold: true, Heave: -1}, NoFraction)
	assert.False(t, d.State().Engaged(), "heave on the engaging tick overrides the hold")

	body.Position[1] = -3
	d.Step(&body, Inputs{ToggleDepthHold: true}, NoFraction)
	assert.Equal(t, -3.0, d.State().TargetDepth)
	assert.Equal(t, "engaged", d.State().DepthHold.String())
}

func TestSurfaceAvoidance(t *testing.T) {
	conf := testConfig()
	d := MustNew(conf)

	body := newBody(0.2)
	body.LinearVelocity = mgl64.Vec3{1, 2, 0}
	f := d.Step(&body, Inputs{}, NoFraction)
	want := -((0.2+conf.SurfaceMargin)*conf.SurfaceGain + conf.SurfaceFloor)
	assert.InDelta(t, want, f.Force.Y(), 1e-9)
	assert.InDelta(t, 2*conf.SurfaceDamping, body.LinearVelocity.Y(), 1e-12)
	assert.Equal(t, 1.0, body.LinearVelocity.X())

	body.Position[1] = -3
	body.LinearVelocity = mgl64.Vec3{0, 1, 0}
	f = d.Step(&body, Inputs{}, NoFraction)
	assert.Zero(t, f.Force.Y())
	assert.Equal(t, 1.0, body.LinearVelocity.Y())

	// Partially out of the water just below the margin still counts as breaching.
	body.Position[1] = -0.7
	f = d.Step(&body, Inputs{}, 0.6)
	assert.InDelta(t, -conf.SurfaceFloor, f.Force.Y(), 1e-9)

	f = d.Step(&body, Inputs{}, 1)
	assert.Zero(t, f.Force.Y())

	// Sinking bodies are not damped.
	body.Position[1] = 0.1
	body.LinearVelocity = mgl64.Vec3{0, -1, 0}
	d.Step(&body, Inputs{}, NoFraction)
	assert.Equal(t, -1.0, body.LinearVelocity.Y())
}

func TestVelocityClamp(t *testing.T) {
	conf := testConfig()
	d := MustNew(conf)

	for _, v := range []mgl64.Vec3{{3, 4, 12}, {-100, 0.5, 20}, {0, -7, 0}} {
		body := newBody(-10)
		body.LinearVelocity = v
		body.AngularVelocity = mgl64.Vec3{0, v.Y(), 0}
		d.Correct(&body)

		assert.InDelta(t, conf.MaxLinearSpeed, body.LinearVelocity.Len(), 1e-9)
		assert.InDelta(t, 1, body.LinearVelocity.Normalize().Dot(v.Normalize()), 1e-12)
		assert.LessOrEqual(t, body.AngularVelocity.Len(), conf.MaxAngularSpeed+1e-12)
	}

	body := newBody(-10)
	body.LinearVelocity = mgl64.Vec3{1, 1, 1}
	d.Correct(&body)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, body.LinearVelocity)
}

func TestAngularVelocityClamp(t *testing.T) {
	conf := testConfig()
	conf.RollLock = false
	d := MustNew(conf)

	for _, w := range []mgl64.Vec3{{2, -3, 6}, {-0.5, 4, 1}, {10, 0.1, -10}} {
		body := newBody(-10)
		body.AngularVelocity = w
		d.Correct(&body)

		assert.InDelta(t, conf.MaxAngularSpeed, body.AngularVelocity.Len(), 1e-9)
		assert.InDelta(t, 1, body.AngularVelocity.Normalize().Dot(w.Normalize()), 1e-12)
	}

	body := newBody(-10)
	body.AngularVelocity = mgl64.Vec3{0.5, -0.5, 0.5}
	d.Correct(&body)
	assert.Equal(t, mgl64.Vec3{0.5, -0.5, 0.5}, body.AngularVelocity)
}

func TestNilBody(t *testing.T) {
	d := MustNew(testConfig())
	assert.True(t, d.Step(nil, Inputs{Surge: 1}, NoFraction).IsZero())
	d.Correct(nil)
}
