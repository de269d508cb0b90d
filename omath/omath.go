package omath

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance below which vector lengths are treated as zero.
const Epsilon = 1e-9

var (
	// Up is the world up axis. The simulation is Y-up.
	Up = mgl64.Vec3{0, 1, 0}
	// Forward is the body-local forward axis.
	Forward = mgl64.Vec3{0, 0, 1}
	// Right is the body-local right axis.
	Right = mgl64.Vec3{1, 0, 0}
)

// Vec32To64 converts a 32 bit vector to a 64 bit one.
func Vec32To64(vec3 mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(vec3[0]), float64(vec3[1]), float64(vec3[2])}
}

// Vec64To32 converts a 64 bit vector to a 32 bit one.
func Vec64To32(vec3 mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(vec3[0]), float32(vec3[1]), float32(vec3[2])}
}

// Round will round a number to a given precision.
func Round(val float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(val*p) / p
}

// Clamp clamps the given value to the given range.
func Clamp(num, min, max float64) float64 {
	if num < min {
		return min
	}
	return math.Min(num, max)
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Deadzone returns zero for any value whose magnitude is below threshold.
func Deadzone(v, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// ClampMagnitude rescales v so that its length does not exceed max. The direction
// of v is preserved. A non-positive max disables the clamp.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if !(max > 0) {
		return v
	}
	lenSq := v.LenSqr()
	if lenSq <= max*max {
		return v
	}
	return v.Mul(max / math.Sqrt(lenSq))
}

// SafeNormalize normalizes v, returning the zero vector and false if v is too
// short to have a direction.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Finite returns true if every component of v is neither NaN nor infinite.
func Finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// WrapPhase reduces an angle in radians to [0, 2π).
func WrapPhase(phase float64) float64 {
	phase = math.Mod(phase, 2*math.Pi)
	if phase < 0 {
		phase += 2 * math.Pi
	}
	return phase
}

// WrapPhase32 is the single precision variant of WrapPhase.
func WrapPhase32(phase float32) float32 {
	phase = math32.Mod(phase, 2*math32.Pi)
	if phase < 0 {
		phase += 2 * math32.Pi
	}
	return phase
}
