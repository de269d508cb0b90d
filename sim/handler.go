package sim

import (
	"github.com/oomph-ac/subsim/buoyancy"
	"github.com/oomph-ac/subsim/vehicle"
)

// Handler receives the discrete events of a simulated body. Methods are called
// synchronously from Tick, after the body has been integrated.
type Handler interface {
	// HandleWaterEnter is called when the submerged fraction rises above
	// buoyancy.EnterThreshold from zero.
	HandleWaterEnter(tick uint64, res buoyancy.Result)
	// HandleWaterExit is called when the submerged fraction falls back to zero.
	HandleWaterExit(tick uint64)
	// HandleDepthHold is called whenever depth hold is engaged or disengaged.
	HandleDepthHold(tick uint64, state vehicle.State)
}

// NopHandler implements Handler and does nothing. It may be embedded to implement
// only some of the methods.
type NopHandler struct{}

func (NopHandler) HandleWaterEnter(uint64, buoyancy.Result) {}
func (NopHandler) HandleWaterExit(uint64)                   {}
func (NopHandler) HandleDepthHold(uint64, vehicle.State)    {}
