// Package scheduler drives the per-tick orchestration of every other
// package into a runnable simulation: collision counting, connectivity
// analysis, per-agent ego-view construction and strategy evaluation,
// integration, and commit to the delayed-observation history.
package scheduler

import (
	"fmt"

	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/connectivity"
	"github.com/flocksim/swarmcore/cosim"
	"github.com/flocksim/swarmcore/ego"
	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/integrator"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/internal/randstream"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/strategy"
)

// runawayFactor bounds how far outside the arena an agent may drift
// before the scheduler treats it as diverged and resets it to a fresh
// random position inside the square bounding the arena.
const runawayFactor = 5.0

// Scheduler owns one simulation's mutable state and advances it one tick
// at a time. It is not safe for concurrent use by multiple goroutines
// calling Tick/TickParallel simultaneously; TickParallel's internal
// fan-out is the only concurrency it performs.
type Scheduler struct {
	cfg config.Params

	truth   phase.Phase
	history *phase.History
	builder *ego.Builder

	arena        collision.Arena
	obstacles    []collision.Obstacle
	obstaclePoly []geom.Polygon
	counters     *collision.Counters

	workspaces []*integrator.Workspace
	streams    []*randstream.Stream

	trend *connectivity.Trend

	// LeaderID names the agent treated as the flock's leader by the
	// leader-follow term and the leader+target strategy branches.
	LeaderID int
	// Target and HasTarget feed the leader's target-tracking term. They
	// are ignored once Coverage is set, which supplies its own rotating
	// target to every agent instead.
	Target    geom.Vec3
	HasTarget bool
	// Oracle, if set, bypasses local radio/neighbour computation for
	// every agent in favour of externally-supplied neighbour lists.
	Oracle cosim.RadioOracle
	// Coverage, if set, switches the scheduler into spatial-coverage
	// mode: every agent tracks Coverage's current waypoint and R0 is
	// substituted from Coverage.Tick each tick.
	Coverage *strategy.CoverageState

	tick int
}

// New builds a Scheduler for initial positions/velocities init, seeding
// each agent's random stream from baseSeed.
func New(cfg config.Params, init phase.Phase, obstacles []geom.Polygon, baseSeed int64) (*Scheduler, error) {
	if err := cfg.NormalizeAndValidate(); err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	if init.NumberOfAgents != cfg.Situation.NumberOfAgents {
		return nil, fmt.Errorf("scheduler: init has %d agents, config wants %d", init.NumberOfAgents, cfg.Situation.NumberOfAgents)
	}

	n := cfg.Situation.NumberOfAgents
	capacity := phase.CapacityForDelay(cfg.Unit.TDelay, cfg.Situation.DeltaT)
	hist := phase.NewHistory(capacity)
	hist.Write(init)

	obst := make([]collision.Obstacle, len(obstacles))
	for i, o := range obstacles {
		obst[i] = collision.NewObstacle(o)
	}

	s := &Scheduler{
		cfg:          cfg,
		truth:        init,
		history:      hist,
		builder:      ego.NewBuilder(n, cfg.Unit),
		arena:        collision.NewArena(cfg.Flocking),
		obstacles:    obst,
		obstaclePoly: obstacles,
		counters:     collision.NewCounters(),
		workspaces:   make([]*integrator.Workspace, n),
		streams:      make([]*randstream.Stream, n),
		trend:        connectivity.NewTrend(50),
		LeaderID:     0,
	}
	for i := 0; i < n; i++ {
		s.workspaces[i] = integrator.NewWorkspace()
		s.streams[i] = randstream.New(baseSeed, i)
	}
	return s, nil
}

// Truth returns the current global state. Callers must not mutate the
// returned Phase's slices in place; use Phase.Clone first.
func (s *Scheduler) Truth() phase.Phase { return s.truth }

// TickCount returns the current tick count (ticks committed so far).
func (s *Scheduler) TickCount() int { return s.tick }

// Counters returns the accumulated collision counters.
func (s *Scheduler) Counters() *collision.Counters { return s.counters }

// ConnectivityTrend returns the algebraic-connectivity trend tracker.
func (s *Scheduler) ConnectivityTrend() *connectivity.Trend { return s.trend }

// connectivityRadius is the distance cutoff used to build the weighted
// Laplacian and to gate the global connectivity controller's per-edge
// contribution: agents beyond it are treated as structurally
// disconnected regardless of radio range.
func (s *Scheduler) connectivityRadius() float64 {
	return s.cfg.Flocking.R0 * float64(s.cfg.Flocking.SizeNeighbourhood)
}

// connectivityParams derives the gains for the global connectivity
// controller from the flat parameter block: a fixed feedback gain and
// sigmoid steepness scaled to the configured target lambda2.
func (s *Scheduler) connectivityParams() force.ConnectivityParams {
	return force.ConnectivityParams{
		KC0:        s.cfg.Flocking.VFlock * 0.1,
		Sigma0:     s.cfg.Flocking.Lambda2 * 0.25,
		LambdaStar: s.cfg.Flocking.Lambda2,
		Theta:      s.cfg.Flocking.R0,
		RL:         s.connectivityRadius(),
	}
}

// potentialParams derives the adjacency-potential band from R0: a
// zero-force equilibrium between 0.8*R0 and 1.5*R0.
func (s *Scheduler) potentialParams() force.PotentialParams {
	r0 := s.cfg.Flocking.R0
	return force.PotentialParams{
		R: r0 * 3, R1: r0 * 0.8, R2: r0 * 1.5,
		Mu1: s.cfg.Flocking.SlopeRep, Mu2: s.cfg.Flocking.SlopeAtt,
	}
}

// Tick advances the simulation by one step, sequentially over agents.
func (s *Scheduler) Tick() error {
	next, err := s.stepAll(nil)
	if err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// commit writes the freshly computed Phase to history and swaps it in as
// the new truth.
func (s *Scheduler) commit(next phase.Phase) {
	s.truth = next
	s.history.Write(next)
	s.tick++
}
