package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/rigidbody"
	"github.com/oomph-ac/subsim/vehicle"
)

// Snapshot is the state of a body recorded at the end of a tick.
type Snapshot struct {
	Tick uint64
	Time float64

	Position        mgl64.Vec3
	Orientation     mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3

	Fraction float64
	Control  vehicle.State
}

func snapshotOf(res TickResult, body *rigidbody.State) Snapshot {
	return Snapshot{
		Tick:            res.Tick,
		Time:            res.Time,
		Position:        body.Position,
		Orientation:     body.Orientation,
		LinearVelocity:  body.LinearVelocity,
		AngularVelocity: body.AngularVelocity,
		Fraction:        res.Buoyancy.Fraction,
		Control:         res.Control,
	}
}

// History is a fixed-size circular buffer of the most recent snapshots of a body.
type History struct {
	buffer   []Snapshot
	capacity int
	head     int // next write position
	size     int
}

// NewHistory creates a History holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buffer:   make([]Snapshot, capacity),
		capacity: capacity,
	}
}

// Add records a snapshot, overwriting the oldest one if the buffer is full.
func (h *History) Add(s Snapshot) {
	h.buffer[h.head] = s
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// at returns the i-th most recent snapshot.
func (h *History) at(i int) Snapshot {
	return h.buffer[(h.head-1-i+h.capacity)%h.capacity]
}

// Get returns the snapshot recorded at tick, if it is still held.
func (h *History) Get(tick uint64) (Snapshot, bool) {
	for i := range h.size {
		s := h.at(i)
		if s.Tick == tick {
			return s, true
		}
		if s.Tick < tick {
			break
		}
	}
	return Snapshot{}, false
}

// GetClosest returns the held snapshot whose tick is nearest to tick.
func (h *History) GetClosest(tick uint64) (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	var (
		closest Snapshot
		best    uint64 = 1<<64 - 1
	)
	for i := range h.size {
		s := h.at(i)
		dist := s.Tick - tick
		if s.Tick < tick {
			dist = tick - s.Tick
		}
		if dist < best {
			best, closest = dist, s
		}
	}
	return closest, true
}

// Latest returns the most recent snapshot.
func (h *History) Latest() (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	return h.at(0), true
}

// Len returns the number of snapshots held.
func (h *History) Len() int {
	return h.size
}

// Capacity ...
func (h *History) Capacity() int {
	return h.capacity
}
