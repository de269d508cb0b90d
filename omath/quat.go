package omath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Yaw returns the heading of q in radians, measured about the world up axis from
// +Z towards +X.
func Yaw(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	if f[0]*f[0]+f[2]*f[2] < Epsilon {
		// Looking straight up or down; take the heading from the body's up axis instead.
		u := q.Rotate(Up)
		if f[1] > 0 {
			u = u.Mul(-1)
		}
		return math.Atan2(u[0], u[2])
	}
	return math.Atan2(f[0], f[2])
}

// YawOnly returns a rotation with the heading of q and zero pitch and roll.
func YawOnly(q mgl64.Quat) mgl64.Quat {
	return mgl64.QuatRotate(Yaw(q), Up)
}

// PitchRoll returns the pitch (about the body X axis) and roll (about the body Z
// axis) of q in radians, using the yaw-pitch-roll (Y, X, Z) convention.
func PitchRoll(q mgl64.Quat) (pitch, roll float64) {
	f := q.Rotate(Forward)
	r := q.Rotate(Right)
	u := q.Rotate(Up)
	pitch = math.Asin(Clamp(-f[1], -1, 1))
	roll = math.Atan2(r[1], u[1])
	return pitch, roll
}
