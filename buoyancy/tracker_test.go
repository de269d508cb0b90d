package buoyancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	var tr Tracker
	steps := []struct {
		fraction float64
		want     Transition
		inWater  bool
	}{
		{0, TransitionNone, false},
		{0.05, TransitionNone, false},
		{0.1, TransitionNone, false},
		{0.2, TransitionEnter, true},
		{0.9, TransitionNone, true},
		{0.05, TransitionNone, true},
		{0, TransitionExit, false},
		{0, TransitionNone, false},
		{1, TransitionEnter, true},
	}
	for i, s := range steps {
		assert.Equal(t, s.want, tr.Update(s.fraction), "step %d", i)
		assert.Equal(t, s.inWater, tr.InWater(), "step %d", i)
	}
	assert.Equal(t, "enter", TransitionEnter.String())
	assert.Equal(t, "exit", TransitionExit.String())
	assert.Equal(t, "none", TransitionNone.String())
}
