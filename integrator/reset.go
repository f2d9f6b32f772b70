package integrator

import (
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/randstream"
)

// ResetBounds describes the volume new positions are drawn from when a
// reset is requested.
type ResetBounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// RandomPositionIn draws a uniform random position within bounds using
// stream, zeroing Z when dim is 2.
func RandomPositionIn(bounds ResetBounds, stream *randstream.Stream, dim int) geom.Vec3 {
	p := geom.Vec3{
		bounds.MinX + stream.Float64()*(bounds.MaxX-bounds.MinX),
		bounds.MinY + stream.Float64()*(bounds.MaxY-bounds.MinY),
		bounds.MinZ + stream.Float64()*(bounds.MaxZ-bounds.MinZ),
	}
	if dim == 2 {
		p = p.Flatten()
	}
	return p
}

// Reset clears a Workspace's remembered velocities, used when a
// simulation restarts an agent at a fresh position.
func (w *Workspace) Reset() {
	w.PreferredVelocity = geom.Zero
	w.PreviousVelocity = geom.Zero
	w.elapsedSinceGPS = 0
}
