package ego

import "github.com/flocksim/swarmcore/geom"

// ComputePressure is C5 step 5: for each neighbour within r0, accumulate
// r0-distance; divide by the count of such neighbours; 0 if none. This
// "pressure" metric feeds the pressure-repulsion force term (C6.e). As a
// mean, it drops when a neighbour farther than the current mean is added.
func ComputePressure(self geom.Vec3, neighborPositions []geom.Vec3, r0 float64) float64 {
	sum := 0.0
	count := 0
	for _, pos := range neighborPositions {
		d := geom.Dist(self, pos)
		if d < r0 {
			sum += r0 - d
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
