package wave

// Surface is anything that can report the height of the water surface at a point
// on the XZ plane at a given simulation time.
type Surface interface {
	Height(x, z, t float64) float64
}

// Flat is a calm water surface at a constant level.
type Flat struct {
	Level float64
}

// Height ...
func (f Flat) Height(_, _, _ float64) float64 {
	return f.Level
}

// Offset raises a Surface by a constant level. It is used to place a Field, which
// oscillates around zero, at the configured water-surface Y of a scene.
type Offset struct {
	Surface Surface
	Level   float64
}

// Height ...
func (o Offset) Height(x, z, t float64) float64 {
	if o.Surface == nil {
		return o.Level
	}
	return o.Level + o.Surface.Height(x, z, t)
}
