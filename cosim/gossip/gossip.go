//go:build !nogossip
// +build !nogossip

// Package gossip adapts cosim.RadioOracle onto a hashicorp/memberlist
// cluster: each simulator process gossips its locally-computed neighbour
// set and link-power row to every other member, so a RadioOracle can
// answer NeighborsFor/PowersFor with values observed elsewhere in the
// cluster instead of the core's own radio model. Build with -tags nogossip
// to drop the memberlist dependency entirely.
package gossip

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/memberlist"

	"github.com/flocksim/swarmcore/cosim"
)

// Oracle is a cosim.RadioOracle backed by a memberlist cluster. Every
// member broadcasts its own row of the neighbour and power matrices on
// Publish; Oracle assembles the latest rows it has heard from each member
// (including itself) into the matrices NeighborsFor/PowersFor serve from.
type Oracle struct {
	list   *memberlist.Memberlist
	queue  *memberlist.TransmitLimitedQueue
	selfID int

	mu        sync.RWMutex
	neighbors map[int][]int
	powers    map[int][]float64
}

// NewOracle joins or starts a gossip cluster listening on bindPort at
// memberlist's default local bind address.
// name must be unique per process; selfID is this process's agent ID
// within the shared Phase.
func NewOracle(name string, bindPort, selfID int, join []string) (*Oracle, error) {
	o := &Oracle{
		selfID:    selfID,
		neighbors: make(map[int][]int),
		powers:    make(map[int][]float64),
	}

	cfg := memberlist.DefaultLocalConfig()
	cfg.Name = name
	cfg.BindPort = bindPort
	cfg.AdvertisePort = bindPort
	cfg.Delegate = &delegate{oracle: o}

	list, err := memberlist.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("gossip: create memberlist: %w", err)
	}
	o.list = list
	o.queue = &memberlist.TransmitLimitedQueue{
		NumNodes:       list.NumMembers,
		RetransmitMult: 3,
	}

	if len(join) > 0 {
		if _, err := list.Join(join); err != nil {
			return nil, fmt.Errorf("gossip: join cluster: %w", err)
		}
	}
	return o, nil
}

// Publish broadcasts this process's current neighbour row and power row
// to the cluster. Callers invoke it once per tick after computing both.
func (o *Oracle) Publish(neighbors []int, powers []float64) error {
	payload, err := encodeRow(o.selfID, neighbors, powers)
	if err != nil {
		return fmt.Errorf("gossip: encode row: %w", err)
	}
	o.queue.QueueBroadcast(&broadcast{msg: payload})

	o.mu.Lock()
	o.neighbors[o.selfID] = neighbors
	o.powers[o.selfID] = powers
	o.mu.Unlock()
	return nil
}

// NeighborsFor implements cosim.RadioOracle using the most recent row
// gossiped for id, falling back to an empty set if nothing has arrived
// yet (e.g. a newly-joined member).
func (o *Oracle) NeighborsFor(id int) ([]int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	row, ok := o.neighbors[id]
	if !ok {
		return nil, nil
	}
	out := make([]int, len(row))
	copy(out, row)
	return out, nil
}

// PowersFor implements cosim.RadioOracle the same way, for link power.
func (o *Oracle) PowersFor(id int) ([]float64, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	row, ok := o.powers[id]
	if !ok {
		return nil, nil
	}
	out := make([]float64, len(row))
	copy(out, row)
	return out, nil
}

// Leave gracefully departs the cluster, waiting up to timeout for the
// leave broadcast to propagate.
func (o *Oracle) Leave(timeout time.Duration) error {
	if err := o.list.Leave(timeout); err != nil {
		return fmt.Errorf("gossip: leave: %w", err)
	}
	return o.list.Shutdown()
}

func (o *Oracle) recordRow(fromID int, neighbors []int, powers []float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.neighbors[fromID] = neighbors
	o.powers[fromID] = powers
}
