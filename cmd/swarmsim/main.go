// Command swarmsim drives the flocking core: it loads a scenario config
// and optional arena/obstacle files, runs the scheduler tick loop, and
// optionally pushes phase snapshots to a telemetry server. It is a thin
// runnability wrapper, in the same spirit as the teacher repo's
// examples/ and simulations/ trees, not part of the core's own contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/flocksim/swarmcore/arenafile"
	"github.com/flocksim/swarmcore/collision"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/internal/config"
	"github.com/flocksim/swarmcore/ioconfig"
	"github.com/flocksim/swarmcore/phase"
	"github.com/flocksim/swarmcore/scheduler"
	"github.com/flocksim/swarmcore/strategy"
	"github.com/flocksim/swarmcore/telemetry"
)

func main() {
	configPath := flag.String("config", "", "YAML scenario file (overrides config.DefaultParams())")
	arenaPath := flag.String("arena", "", "arena text file (shape/center/radius records)")
	obstPath := flag.String("obst", "", "obstacle text file (polygon vertex records)")
	ticks := flag.Int("ticks", 1000, "number of ticks to run (0 runs until interrupted)")
	parallel := flag.Bool("parallel", false, "use the errgroup-parallel scheduler tick")
	seed := flag.Int64("seed", 1, "base seed for per-agent random streams")
	telemetryAddr := flag.String("telemetry", "", "address to serve a websocket phase-snapshot feed on (e.g. :8090); empty disables it")
	targets := flag.String("targets", "", "space-separated x,y waypoints for spatial-coverage mode (flockingtype 3); defaults to a square patrol of the arena when unset")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(log, runArgs{
		configPath:    *configPath,
		arenaPath:     *arenaPath,
		obstPath:      *obstPath,
		ticks:         *ticks,
		parallel:      *parallel,
		seed:          *seed,
		telemetryAddr: *telemetryAddr,
		targets:       *targets,
	}); err != nil {
		log.Error("swarmsim: fatal", "error", err)
		os.Exit(1)
	}
}

type runArgs struct {
	configPath    string
	arenaPath     string
	obstPath      string
	ticks         int
	parallel      bool
	seed          int64
	telemetryAddr string
	targets       string
}

func run(log *slog.Logger, args runArgs) error {
	cfg, err := loadConfig(args.configPath)
	if err != nil {
		return err
	}

	if args.arenaPath != "" {
		spec, err := arenafile.LoadArena(args.arenaPath)
		if err != nil {
			return err
		}
		cfg.Flocking.ArenaShape = spec.Shape
		cfg.Flocking.ArenaCenterX = spec.Center[0]
		cfg.Flocking.ArenaCenterY = spec.Center[1]
		cfg.Flocking.ArenaRadius = spec.Radius
	}

	var obstacles []geom.Polygon
	if args.obstPath != "" {
		obstacles, err = arenafile.LoadObstacles(args.obstPath)
		if err != nil {
			return err
		}
	}

	init := randomInitialPhase(cfg, args.seed)
	sched, err := scheduler.New(cfg, init, obstacles, args.seed)
	if err != nil {
		return err
	}

	if cfg.Unit.FlockingType == 3 {
		waypoints, err := coverageWaypoints(args.targets, cfg.Flocking)
		if err != nil {
			return err
		}
		sched.Coverage = strategy.NewCoverageState(
			waypoints, 1000,
			10000, 4000, 15000, 4,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	var telem *telemetry.Server
	if args.telemetryAddr != "" {
		telem = telemetry.NewServer(args.telemetryAddr, log)
		go func() {
			if err := telem.Serve(ctx); err != nil {
				log.Error("telemetry: serve failed", "error", err)
			}
		}()
		log.Info("telemetry: serving", "addr", args.telemetryAddr)
	}

	log.Info("swarmsim: starting", "agents", cfg.Situation.NumberOfAgents, "parallel", args.parallel, "ticks", args.ticks)

	for i := 0; args.ticks == 0 || i < args.ticks; i++ {
		select {
		case <-ctx.Done():
			log.Info("swarmsim: interrupted", "tick", sched.TickCount())
			return nil
		default:
		}

		if args.parallel {
			err = sched.TickParallel()
		} else {
			err = sched.Tick()
		}
		if err != nil {
			return err
		}

		if telem != nil {
			telem.Publish(telemetry.SnapshotOf(sched.TickCount(), sched.Truth()))
		}
		if sched.TickCount()%100 == 0 {
			log.Info("swarmsim: progress", "tick", sched.TickCount(), "lambda2", sched.ConnectivityTrend().Latest())
		}
	}

	log.Info("swarmsim: done", "ticks", sched.TickCount(), "pairwise_collisions", sched.Counters().Pairwise.Load())
	return nil
}

func loadConfig(path string) (config.Params, error) {
	if path == "" {
		return config.DefaultParams(), nil
	}
	return ioconfig.Load(path)
}

// randomInitialPhase scatters agents uniformly inside the configured
// arena's disc/square boundary with zero initial velocity.
func randomInitialPhase(cfg config.Params, seed int64) phase.Phase {
	n := cfg.Situation.NumberOfAgents
	p := phase.New(n, phase.NumInnerStates)
	arena := collision.NewArena(cfg.Flocking)
	rng := newSeededSource(seed)

	for i := 0; i < n; i++ {
		p.Coordinates[i] = randomPointInArena(arena, cfg.Flocking.Dim, rng)
	}
	return p
}

// seededSource is a small splitmix64 generator for randomInitialPhase,
// kept narrow so the CLI's one-off initial scatter doesn't reach for
// a full internal/randstream.Stream (whose per-agent independence matters
// only once the scheduler is ticking).
type seededSource struct {
	state uint64
}

func newSeededSource(seed int64) *seededSource {
	return &seededSource{state: uint64(seed) ^ 0x9E3779B97F4A7C15}
}

// next returns the next float64 in [0,1) from a splitmix64 step, enough
// uniformity for scattering initial positions.
func (s *seededSource) next() float64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return float64(z>>11) / float64(1<<53)
}

func randomPointInArena(a collision.Arena, dim int, rng *seededSource) geom.Vec3 {
	switch a.Shape {
	case config.ArenaSquare:
		x := a.Center[0] + (rng.next()*2-1)*a.Radius
		y := a.Center[1] + (rng.next()*2-1)*a.Radius
		z := 0.0
		if dim == 3 {
			z = (rng.next()*2 - 1) * a.Radius
		}
		return geom.Vec3{x, y, z}
	default:
		theta := rng.next() * 2 * math.Pi
		r := a.Radius * math.Sqrt(rng.next())
		x := a.Center[0] + r*math.Cos(theta)
		y := a.Center[1] + r*math.Sin(theta)
		z := 0.0
		if dim == 3 {
			z = (rng.next()*2 - 1) * a.Radius
		}
		return geom.Vec3{x, y, z}
	}
}

// coverageWaypoints parses a "-targets" flag value of space-separated
// "x,y" pairs, or, when empty, patrols the four corners of a square
// inscribed in the configured arena so spatial-coverage mode (flockingtype
// 3) always has somewhere to go.
func coverageWaypoints(raw string, fp config.FlockingParams) ([]geom.Vec3, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		half := fp.ArenaRadius / math.Sqrt2 * 0.999
		cx, cy := fp.ArenaCenterX, fp.ArenaCenterY
		return []geom.Vec3{
			{cx + half, cy + half, 0},
			{cx + half, cy - half, 0},
			{cx - half, cy - half, 0},
			{cx - half, cy + half, 0},
		}, nil
	}

	fields := strings.Fields(raw)
	waypoints := make([]geom.Vec3, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("swarmsim: invalid -targets waypoint %q: want x,y", f)
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("swarmsim: invalid -targets waypoint %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("swarmsim: invalid -targets waypoint %q: %w", f, err)
		}
		waypoints = append(waypoints, geom.Vec3{x, y, 0})
	}
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("swarmsim: -targets parsed to zero waypoints")
	}
	return waypoints, nil
}

func handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	cancel()
}
