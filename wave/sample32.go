package wave

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/subsim/omath"
)

// Sample32 returns the surface height and normal at (x, z) at time t in single
// precision. It is intended for consumers that work in float32, such as mesh
// builders, and follows the same phase reduction as Height.
func (f *Field) Sample32(x, z, t float32) (float32, mgl32.Vec3) {
	freq, weight := float32(f.conf.Frequency), float32(f.weight)
	temporal := omath.WrapPhase32(float32(f.conf.Speed) * t)

	var h, dx, dz float32
	for _, d := range f.dirs {
		dirX, dirZ := float32(d[0]), float32(d[1])
		phase := omath.WrapPhase32(freq*(dirX*x+dirZ*z)) - temporal
		sin, cos := math32.Sincos(phase)
		h += weight * sin
		c := weight * freq * cos
		dx += c * dirX
		dz += c * dirZ
	}
	return h, mgl32.Vec3{-dx, 1, -dz}.Normalize()
}

// HeightGrid samples the surface on a regular w×d grid starting at (minX, minZ)
// with the given spacing. Heights are written row by row along X.
func (f *Field) HeightGrid(minX, minZ, spacing float32, w, d int, t float32) []float32 {
	if w <= 0 || d <= 0 {
		return nil
	}
	heights := make([]float32, 0, w*d)
	for iz := range d {
		z := minZ + float32(iz)*spacing
		for ix := range w {
			h, _ := f.Sample32(minX+float32(ix)*spacing, z, t)
			heights = append(heights, h)
		}
	}
	return heights
}
