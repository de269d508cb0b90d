package vehicle

import (
	"math"

	"github.com/oomph-ac/subsim/omath"
)

// Deadzone is the analog input magnitude below which an axis is treated as idle.
const Deadzone = 0.1

// Inputs are the pilot's commands for a single tick. They are read once and not
// retained.
type Inputs struct {
	Surge, Sway, Heave, Yaw float64
	// ToggleDepthHold is the edge of the depth-hold button, set only on the tick it
	// was pressed.
	ToggleDepthHold bool
}

// Sanitized returns the inputs clamped to [-1, 1] with the deadzone applied. NaN
// axes are treated as idle.
func (in Inputs) Sanitized() Inputs {
	return Inputs{
		Surge:           axis(in.Surge),
		Sway:            axis(in.Sway),
		Heave:           axis(in.Heave),
		Yaw:             axis(in.Yaw),
		ToggleDepthHold: in.ToggleDepthHold,
	}
}

func axis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return omath.Deadzone(omath.Clamp(v, -1, 1), Deadzone)
}
