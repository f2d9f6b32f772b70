package phase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocksim/swarmcore/geom"
	"github.com/flocksim/swarmcore/phase"
)

func TestNewRejectsNothingButAllocatesFullyPerAgent(t *testing.T) {
	p := phase.New(3, phase.NumInnerStates)
	require.Len(t, p.InnerStates, 3)
	for _, row := range p.InnerStates {
		assert.Len(t, row, phase.NumInnerStates)
	}
	assert.Equal(t, []int{0, 1, 2}, p.RealIDs)
}

func makePhase(x float64) phase.Phase {
	p := phase.New(1, phase.NumInnerStates)
	p.Coordinates[0] = geom.Vec3{x, 0, 0}
	return p
}

func TestHistoryRoundTrip(t *testing.T) {
	// Writing phase P at tick t and reading it back exactly
	// ceil(t_delay/dt) writes later must return P unchanged.
	cap := phase.CapacityForDelay(0.5, 0.1) // 6
	h := phase.NewHistory(cap)

	for t := 0; t < 6; t++ {
		h.Write(makePhase(float64(t)))
	}
	// Tick 5 is "now"; tick 0 is 5 steps back.
	got, ok := h.ReadBack(5)
	if !ok {
		t.Fatal("expected a value")
	}
	if got.Coordinates[0][0] != 0 {
		t.Errorf("ReadBack(5) = %v, want tick 0's phase", got.Coordinates[0][0])
	}

	latest, _ := h.Latest()
	if latest.Coordinates[0][0] != 5 {
		t.Errorf("Latest() = %v, want tick 5", latest.Coordinates[0][0])
	}
}

func TestHistoryReadBeforeWriteReturnsOldest(t *testing.T) {
	h := phase.NewHistory(4)
	h.Write(makePhase(42))
	got, ok := h.ReadBack(10)
	if !ok || got.Coordinates[0][0] != 42 {
		t.Errorf("reading past the start should return the oldest phase, got %v", got)
	}
}

func TestHistoryEvicts(t *testing.T) {
	h := phase.NewHistory(3)
	for i := 0; i < 10; i++ {
		h.Write(makePhase(float64(i)))
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	oldest, _ := h.ReadBack(2)
	if oldest.Coordinates[0][0] != 7 {
		t.Errorf("oldest retained phase = %v, want 7", oldest.Coordinates[0][0])
	}
}

func TestCapacityForDelay(t *testing.T) {
	if got := phase.CapacityForDelay(0.5, 0.1); got != 6 {
		t.Errorf("CapacityForDelay(0.5,0.1) = %d, want 6", got)
	}
	if got := phase.CapacityForDelay(0, 0.1); got != 1 {
		t.Errorf("CapacityForDelay(0,0.1) = %d, want 1", got)
	}
}
