// Package collision tracks arena/obstacle boundaries and the pairwise and
// obstacle collision counters accumulated while a simulation runs.
package collision

import (
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

// Arena is the read-only outer boundary agents are shilled back into.
type Arena struct {
	Shape  config.ArenaShape
	Center geom.Vec3
	Radius float64 // disc radius, or square half-side
}

// NewArena builds an Arena from the flocking parameter block.
func NewArena(p config.FlockingParams) Arena {
	return Arena{
		Shape:  p.ArenaShape,
		Center: geom.Vec3{p.ArenaCenterX, p.ArenaCenterY, 0},
		Radius: p.ArenaRadius,
	}
}

// Contains reports whether pt lies within the arena boundary.
func (a Arena) Contains(pt geom.Vec3) bool {
	rel := pt.Sub(a.Center)
	switch a.Shape {
	case config.ArenaSquare:
		return rel[0] >= -a.Radius && rel[0] <= a.Radius && rel[1] >= -a.Radius && rel[1] <= a.Radius
	default:
		return rel.Abs().Norm() <= a.Radius
	}
}

// NearestBoundaryPoint returns the point on the arena boundary closest to
// pt, and the unit vector from the arena centre toward that point. For a
// disc this is the outward normal; for a square it equals the face normal
// only at the middle of a face.
func (a Arena) NearestBoundaryPoint(pt geom.Vec3) (geom.Vec3, geom.Vec3) {
	rel := pt.Sub(a.Center)
	switch a.Shape {
	case config.ArenaSquare:
		clamped := geom.Vec3{
			geom.Clip(rel[0], -a.Radius, a.Radius),
			geom.Clip(rel[1], -a.Radius, a.Radius),
			0,
		}
		// Project onto whichever face is closest.
		dx := a.Radius - clamped.Abs()[0]
		dy := a.Radius - clamped.Abs()[1]
		if dx < dy {
			clamped[0] = sign(rel[0]) * a.Radius
		} else {
			clamped[1] = sign(rel[1]) * a.Radius
		}
		return a.Center.Add(clamped), clamped.Unit()
	default:
		n := rel.Unit()
		if rel.Norm() < 1e-12 {
			n = geom.Vec3{1, 0, 0}
		}
		return a.Center.Add(n.Scale(a.Radius)), n
	}
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// Obstacle is a convex polygon obstruction, read-only after load.
type Obstacle struct {
	Polygon geom.Polygon
}

// NewObstacle wraps a polygon as an Obstacle.
func NewObstacle(p geom.Polygon) Obstacle {
	return Obstacle{Polygon: p}
}
