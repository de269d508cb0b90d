package buoyancy

// Transition is an edge in a body's in-water state.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionEnter
	TransitionExit
)

// String ...
func (t Transition) String() string {
	switch t {
	case TransitionEnter:
		return "enter"
	case TransitionExit:
		return "exit"
	default:
		return "none"
	}
}

// EnterThreshold is the submerged fraction a body must exceed to count as having
// entered the water. It leaves the water only once the fraction falls back to zero.
const EnterThreshold = PartialMin

// Tracker detects a body entering and leaving the water from its submerged fraction.
// The zero value is a body out of the water.
type Tracker struct {
	inWater bool
}

// Update feeds the latest submerged fraction and returns the transition it caused.
func (t *Tracker) Update(fraction float64) Transition {
	switch {
	case !t.inWater && fraction > EnterThreshold:
		t.inWater = true
		return TransitionEnter
	case t.inWater && fraction <= 0:
		t.inWater = false
		return TransitionExit
	}
	return TransitionNone
}

// InWater ...
func (t *Tracker) InWater() bool {
	return t.inWater
}
