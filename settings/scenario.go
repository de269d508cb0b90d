package settings

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/sim"
	"github.com/oomph-ac/subsim/vehicle"
)

// Scenario is a scripted sequence of pilot inputs.
type Scenario struct {
	Name     string
	Segments []Segment
}

// Segment holds a set of inputs for a duration in seconds. ToggleDepthHold is
// pressed on the first tick of the segment only.
type Segment struct {
	Duration float64

	Surge, Sway, Heave, Yaw float64
	ToggleDepthHold         bool
}

// DefaultScenarios ...
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "drift", Segments: []Segment{{Duration: 30}}},
		{Name: "dive", Segments: []Segment{
			{Duration: 4, Surge: 1, Heave: -1},
			{Duration: 1, ToggleDepthHold: true},
			{Duration: 10, Surge: 0.6, Yaw: 0.5},
			{Duration: 15, Surge: 1},
		}},
		{Name: "breach", Segments: []Segment{
			{Duration: 10, Heave: 1, Surge: 0.3},
			{Duration: 20},
		}},
	}
}

// Validate ...
func (s Scenario) Validate() error {
	if s.Name == "" {
		return oerror.Config("scenario", "Name", "must not be empty")
	}
	for _, seg := range s.Segments {
		if !(seg.Duration > 0) || math.IsInf(seg.Duration, 0) {
			return oerror.Config("scenario", "Duration", "%s: segment duration must be a finite value > 0, got %v", s.Name, seg.Duration)
		}
	}
	return nil
}

// Duration returns the total length of the scenario in seconds.
func (s Scenario) Duration() float64 {
	var d float64
	for _, seg := range s.Segments {
		d += seg.Duration
	}
	return d
}

// Source returns an input source that plays the scenario back at a tick duration of
// dt. Once every segment has played, the inputs are idle.
func (s Scenario) Source(dt float64) sim.InputSource {
	// starts[i] is the first tick of segment i; the final entry is the end of the script.
	starts := make([]uint64, len(s.Segments)+1)
	var elapsed float64
	for i, seg := range s.Segments {
		elapsed += seg.Duration
		starts[i+1] = uint64(math.Round(elapsed / dt))
	}
	return sim.InputFunc(func(tick uint64, _ float64) vehicle.Inputs {
		for i, seg := range s.Segments {
			if tick < starts[i] || tick >= starts[i+1] {
				continue
			}
			return vehicle.Inputs{
				Surge:           seg.Surge,
				Sway:            seg.Sway,
				Heave:           seg.Heave,
				Yaw:             seg.Yaw,
				ToggleDepthHold: seg.ToggleDepthHold && tick == starts[i],
			}
		}
		return vehicle.Inputs{}
	})
}

// boundsOf returns a collider box of the given size centred on the body origin.
func boundsOf(size mgl64.Vec3) cube.BBox {
	h := size.Mul(0.5)
	return cube.Box(-h[0], -h[1], -h[2], h[0], h[1], h[2])
}
