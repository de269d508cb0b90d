package vehicle

// DepthHoldMode is the state of the depth-hold assist.
type DepthHoldMode uint8

const (
	DepthHoldDisengaged DepthHoldMode = iota
	DepthHoldEngaged
)

// String ...
func (m DepthHoldMode) String() string {
	if m == DepthHoldEngaged {
		return "engaged"
	}
	return "disengaged"
}

// State is the control state a vehicle carries across ticks.
type State struct {
	DepthHold DepthHoldMode
	// TargetDepth is the Y position captured when depth hold was engaged.
	TargetDepth float64
}

// Engaged ...
func (s State) Engaged() bool {
	return s.DepthHold == DepthHoldEngaged
}

// update advances the depth-hold state machine for one tick. A toggle edge flips the
// mode and engaging captures depth as the target. Heave input while engaged is a pilot
// override and disengages the hold.
func (s *State) update(in Inputs, depth float64) {
	if in.ToggleDepthHold {
		if s.Engaged() {
			s.DepthHold = DepthHoldDisengaged
		} else {
			s.DepthHold = DepthHoldEngaged
			s.TargetDepth = depth
		}
	}
	if s.Engaged() && in.Heave != 0 {
		s.DepthHold = DepthHoldDisengaged
	}
}
