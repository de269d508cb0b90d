package buoyancy

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/oerror"
	"github.com/oomph-ac/subsim/omath"
)

// MinResolution is the lowest number of samples per axis a VoxelGrid accepts.
const MinResolution = 3

// VoxelGrid is an immutable set of body-local sample points filling a collider's
// bounding box. It is built once per body and shared read-only for its lifetime.
type VoxelGrid struct {
	bounds     cube.BBox
	resolution int
	points     []mgl64.Vec3
}

// NewVoxelGrid fills bounds with resolution³ points, evenly spaced by linear
// interpolation between the box's min and max corners. Bounds of zero volume give
// a degenerate grid, which a Solver treats as a no-op.
func NewVoxelGrid(bounds cube.BBox, resolution int) (*VoxelGrid, error) {
	if resolution < MinResolution {
		return nil, oerror.Config("buoyancy", "Resolution", "need at least %d samples per axis, got %d", MinResolution, resolution)
	}
	g := &VoxelGrid{
		bounds:     bounds,
		resolution: resolution,
		points:     make([]mgl64.Vec3, 0, resolution*resolution*resolution),
	}

	min, max := bounds.Min(), bounds.Max()
	step := 1 / float64(resolution-1)
	for ix := range resolution {
		x := omath.Lerp(min[0], max[0], float64(ix)*step)
		for iy := range resolution {
			y := omath.Lerp(min[1], max[1], float64(iy)*step)
			for iz := range resolution {
				z := omath.Lerp(min[2], max[2], float64(iz)*step)
				g.points = append(g.points, mgl64.Vec3{x, y, z})
			}
		}
	}
	return g, nil
}

// Bounds returns the body-local box the grid was generated from.
func (g *VoxelGrid) Bounds() cube.BBox {
	return g.bounds
}

// Resolution returns the number of samples along each axis.
func (g *VoxelGrid) Resolution() int {
	return g.resolution
}

// Len returns the total number of sample points.
func (g *VoxelGrid) Len() int {
	return len(g.points)
}

// At returns the i-th body-local sample point.
func (g *VoxelGrid) At(i int) mgl64.Vec3 {
	return g.points[i]
}

// Volume returns the volume of the grid's bounding box.
func (g *VoxelGrid) Volume() float64 {
	return g.bounds.Width() * g.bounds.Height() * g.bounds.Length()
}

// Degenerate reports whether the grid's bounds enclose no volume.
func (g *VoxelGrid) Degenerate() bool {
	return !(g.Volume() > 0)
}
