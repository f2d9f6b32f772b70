package collision

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/flocksim/swarmcore/geom"
)

// Counters accumulates pairwise and obstacle collision events across a
// simulation run. Pairwise and Obstacle are atomic so the parallel
// scheduler variant can increment them from multiple goroutines without a
// shared lock; per-agent obstacle occupancy is guarded separately since
// map writes are not otherwise safe for concurrent distinct keys.
type Counters struct {
	Pairwise atomic.Int64
	Obstacle atomic.Int64

	mu             sync.Mutex
	insideObstacle map[int]bool // agent ID -> was inside an obstacle last tick
}

// NewCounters creates a zeroed Counters.
func NewCounters() *Counters {
	return &Counters{insideObstacle: make(map[int]bool)}
}

// CountPairwise scans all agent pairs and increments Pairwise once per
// pair closer than radius. It does not mutate phase.
func (c *Counters) CountPairwise(coordinates []geom.Vec3, radius float64) {
	for i := 0; i < len(coordinates); i++ {
		for j := i + 1; j < len(coordinates); j++ {
			if geom.Dist(coordinates[i], coordinates[j]) < radius {
				c.Pairwise.Inc()
			}
		}
	}
}

// UpdateObstacleState checks whether agent id has newly entered polygon
// interior since the last call and increments Obstacle exactly once per
// entry, without double-counting while the agent remains inside.
func (c *Counters) UpdateObstacleState(id int, pos geom.Vec3, obstacles []Obstacle) {
	inside := false
	for _, o := range obstacles {
		if geom.PointInPolygon(pos, o.Polygon) {
			inside = true
			break
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if inside && !c.insideObstacle[id] {
		c.Obstacle.Inc()
	}
	c.insideObstacle[id] = inside
}

// Reset zeroes both counters and forgets per-agent obstacle occupancy.
func (c *Counters) Reset() {
	c.Pairwise.Store(0)
	c.Obstacle.Store(0)
	c.mu.Lock()
	c.insideObstacle = make(map[int]bool)
	c.mu.Unlock()
}
