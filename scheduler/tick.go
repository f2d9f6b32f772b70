package scheduler

import (
	"fmt"
	"math"

	"github.com/flocksim/swarmcore/connectivity"
	"github.com/flocksim/swarmcore/ego"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/integrator"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/strategy"
	"golang.org/x/sync/errgroup"
)

// prepare runs the shared, non-agent-parallel part of a tick: pairwise
// collision counting, leader-rank bookkeeping, the Laplacian/Fiedler pass,
// and the global (noiseless) neighbour-set cache every ego-view is built
// against for Jaccard similarity. It returns the inputs every per-agent
// step needs.
func (s *Scheduler) prepare() (globalNeigh [][]int, lambda2 float64, v2 []float64, laplacian [][]float64, r0 float64, err error) {
	s.counters.CountPairwise(s.truth.Coordinates, s.cfg.Situation.Radius)

	for id := range s.truth.InnerStates {
		rank := 0.0
		if id == s.LeaderID {
			rank = 1.0
		}
		s.truth.InnerStates[id][phase.IdxLeaderRank] = rank
	}

	lambda2, v2, laplacian, err = connectivity.FiedlerPair(s.truth.Coordinates, s.connectivityRadius())
	if err != nil {
		return nil, 0, nil, nil, 0, fmt.Errorf("scheduler: fiedler: %w", err)
	}
	s.trend.Record(lambda2)

	globalNeigh = ego.ComputeGlobalNeighborSets(s.truth, s.cfg, s.obstaclePoly)

	r0 = s.cfg.Flocking.R0
	if s.Coverage != nil {
		r0 = s.Coverage.Tick(s.truth)
	}
	return globalNeigh, lambda2, v2, laplacian, r0, nil
}

// stepAgent builds agent id's ego-view, evaluates its strategy, integrates
// one step, and returns its new velocity and position plus its
// self-pressure (to be written back into the committed Phase so other
// agents can read it, delayed, on later ticks).
func (s *Scheduler) stepAgent(id int, globalNeigh [][]int, lambda2 float64, v2 []float64, r0 float64) (geom.Vec3, geom.Vec3, float64, error) {
	view, err := s.builder.Build(id, s.truth, s.history, globalNeigh, s.obstaclePoly, s.cfg, s.streams[id], s.Oracle)
	if err != nil {
		return geom.Zero, geom.Zero, 0, fmt.Errorf("scheduler: agent %d: %w", id, err)
	}
	view.SecondEigenvalue = lambda2
	view.SecondEigenvector = v2

	flocking := s.cfg.Flocking
	flocking.R0 = r0

	target := s.Target
	hasTarget := s.HasTarget
	if s.Coverage != nil {
		target = s.Coverage.CurrentTarget()
		hasTarget = true
	}

	ctx := strategy.Context{
		Arena:      s.arena,
		Obstacles:  s.obstacles,
		Counters:   s.counters,
		Target:     target,
		HasTarget:  hasTarget,
		IsLeader:   id == s.LeaderID,
		FiedlerIdx: id,
		FiedlerIdxOf: func(slot int) int {
			return view.RealIDs[slot]
		},
		Connectivity:   s.connectivityParams(),
		Potential:      s.potentialParams(),
		RSense:         float64(s.cfg.Flocking.SizeNeighbourhood) * r0,
		GradientRSense: (math.Sqrt2 + 1) * r0,
	}

	preferred := strategy.Evaluate(view, flocking, s.cfg.Unit, ctx)

	ws := s.workspaces[id]
	if ws.ShouldRecomputePreferred(s.cfg.Situation.DeltaT, s.cfg.Unit.TGPS) {
		ws.PreferredVelocity = preferred
	}

	res := integrator.Step(ws, s.truth.Coordinates[id], s.truth.Velocities[id], s.cfg.Situation.DeltaT, s.cfg.Unit, s.streams[id], s.cfg.Flocking.Dim)
	res.Velocity = integrator.ClampSpeed(res.Velocity, s.cfg.Flocking.VMax)

	if geom.Dist(res.Position, s.arena.Center) > runawayFactor*s.arena.Radius {
		bounds := integrator.ResetBounds{
			MinX: s.arena.Center[0] - s.arena.Radius, MaxX: s.arena.Center[0] + s.arena.Radius,
			MinY: s.arena.Center[1] - s.arena.Radius, MaxY: s.arena.Center[1] + s.arena.Radius,
			MinZ: -s.arena.Radius, MaxZ: s.arena.Radius,
		}
		res.Position = integrator.RandomPositionIn(bounds, s.streams[id], s.cfg.Flocking.Dim)
		res.Velocity = geom.Zero
		ws.Reset()
	}

	return res.Velocity, res.Position, view.Pressure[0], nil
}

// stepAll runs prepare and then every agent's stepAgent, either
// sequentially (pool == nil) or fanned out across pool's goroutines, and
// assembles the results into the next committed Phase.
func (s *Scheduler) stepAll(pool *errgroup.Group) (phase.Phase, error) {
	globalNeigh, lambda2, v2, laplacian, r0, err := s.prepare()
	if err != nil {
		return phase.Phase{}, err
	}

	next := s.truth.Clone()
	n := s.truth.NumberOfAgents

	if pool == nil {
		for id := 0; id < n; id++ {
			v, pos, pressure, err := s.stepAgent(id, globalNeigh, lambda2, v2, r0)
			if err != nil {
				return phase.Phase{}, err
			}
			next.Velocities[id] = v
			next.Coordinates[id] = pos
			next.Pressure[id] = pressure
		}
	} else {
		for id := 0; id < n; id++ {
			id := id
			pool.Go(func() error {
				v, pos, pressure, err := s.stepAgent(id, globalNeigh, lambda2, v2, r0)
				if err != nil {
					return err
				}
				next.Velocities[id] = v
				next.Coordinates[id] = pos
				next.Pressure[id] = pressure
				return nil
			})
		}
		if err := pool.Wait(); err != nil {
			return phase.Phase{}, err
		}
	}

	if err := next.Validate(); err != nil {
		return phase.Phase{}, err
	}
	connectivity.ApplyTo(&next, lambda2, v2, laplacian)
	return next, nil
}

// TickParallel advances the simulation by one step, fanning per-agent
// work out across an errgroup after the shared Laplacian/Fiedler pass.
// Each agent draws from its own random stream and writes to a distinct
// index of the committed slices, so no locking is needed across agents.
func (s *Scheduler) TickParallel() error {
	g := new(errgroup.Group)
	next, err := s.stepAll(g)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}
