package force_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flocksim/swarmcore/force"
	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

func TestCentreOfMassAveragesSelfAndNeighbours(t *testing.T) {
	ego := phase.New(3, phase.NumInnerStates)
	ego.RealIDs = []int{0, 1, 2}
	ego.Coordinates[0] = geom.Vec3{0, 0, 0}
	ego.Coordinates[1] = geom.Vec3{300, 0, 0}
	ego.Coordinates[2] = geom.Vec3{0, 300, 0}

	com := force.CentreOfMass(ego)
	assert.InDelta(t, 100, com[0], 1e-9)
	assert.InDelta(t, 100, com[1], 1e-9)
}

func TestTargetTrackingSaturatesAtVFlock(t *testing.T) {
	f := force.TargetTracking(geom.Vec3{0, 0, 0}, geom.Vec3{10000, 0, 0}, 400, 1000)
	if got := f.Norm(); got < 399.9 {
		t.Errorf("far target should saturate speed at vFlock, got %v", got)
	}
}

func TestChooseLeaderTieBreaksByID(t *testing.T) {
	ego := phase.New(3, phase.NumInnerStates)
	ego.RealIDs = []int{5, 2, 9}
	ego.InnerStates[0][phase.IdxLeaderRank] = 3
	ego.InnerStates[1][phase.IdxLeaderRank] = 3
	ego.InnerStates[2][phase.IdxLeaderRank] = 1

	slot := force.ChooseLeader(ego)
	if ego.RealIDs[slot] != 2 {
		t.Errorf("tie on rank should favour the lowest ID, got leader ID %d", ego.RealIDs[slot])
	}
}

func TestChooseLeaderSelfWhenUnbeaten(t *testing.T) {
	ego := phase.New(2, phase.NumInnerStates)
	ego.RealIDs = []int{0, 1}
	ego.InnerStates[0][phase.IdxLeaderRank] = 5
	ego.InnerStates[1][phase.IdxLeaderRank] = 1
	if slot := force.ChooseLeader(ego); slot != 0 {
		t.Errorf("self should remain leader, got slot %d", slot)
	}
}
