package force

import (
	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
)

// ShillWallLinSqrt implements C6.i: a virtual shill agent sits on the
// arena boundary. If self is outside, the shill pushes it back toward the
// centre; if inside, it pushes away from the boundary once self gets
// close, gated by the linsqrt braking curve.
func ShillWallLinSqrt(self geom.Vec3, arena collision.Arena, p config.FlockingParams) geom.Vec3 {
	boundary, outwardNormal := arena.NearestBoundaryPoint(self)
	d := geom.Dist(self, boundary)

	if !arena.Contains(self) {
		return boundary.Sub(self).Unit().Scale(p.VShill)
	}

	dv := geom.VelDecayLinSqrt(d, p.SlopeShill, p.AccShill, p.R0Shill)
	if dv <= 0 {
		return geom.Zero
	}
	return outwardNormal.Scale(-geom.Clip(dv, 0, p.VShill))
}

// ShillObstacleLinSqrt implements C6.j: same shape as ShillWallLinSqrt but
// against the nearest point of each obstacle polygon, and marks the
// counters when self crosses into an obstacle's interior.
func ShillObstacleLinSqrt(self geom.Vec3, selfID int, obstacles []collision.Obstacle, p config.FlockingParams, counters *collision.Counters) geom.Vec3 {
	if counters != nil {
		counters.UpdateObstacleState(selfID, self, obstacles)
	}

	sum := geom.Zero
	for _, o := range obstacles {
		nearest, d, _, err := geom.NearestPointOnPolygon(self, o.Polygon)
		if err != nil {
			continue
		}
		inside := geom.PointInPolygon(self, o.Polygon)
		if inside {
			// Inside the obstacle the shill points toward the nearest exit
			// point, not away from it.
			sum = sum.Add(nearest.Sub(self).Unit().Scale(p.VShill))
			continue
		}
		dv := geom.VelDecayLinSqrt(d, p.SlopeShill, p.AccShill, p.R0Shill)
		if dv <= 0 {
			continue
		}
		sum = sum.Add(self.Sub(nearest).Unit().Scale(geom.Clip(dv, 0, p.VShill)))
	}
	return sum
}
