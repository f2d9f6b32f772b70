package phase

import (
	"sync"

	"github.com/gammazero/deque"
)

// History is the delayed-observation ring buffer: a circular buffer of
// capacity W = ceil(t_delay/dt) + 1 holding the most recently written
// Phase snapshots, used to serve other agents' communication-delayed
// views of this one.
type History struct {
	mu       sync.RWMutex
	buf      *deque.Deque[Phase]
	capacity int
	written  int
}

// NewHistory creates a History with the given capacity. capacity must be
// >= 1; a capacity of 1 degenerates to "always read the latest write".
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf:      deque.New[Phase](capacity),
		capacity: capacity,
	}
}

// CapacityForDelay computes W = ceil(tDelay/dt) + 1, the minimum window
// size needed to serve a read delayed by tDelay seconds at tick size dt.
func CapacityForDelay(tDelay, dt float64) int {
	if dt <= 0 {
		return 1
	}
	steps := int(tDelay / dt)
	if float64(steps)*dt < tDelay {
		steps++
	}
	return steps + 1
}

// Write appends a new Phase, evicting the oldest one once at capacity.
// Writes are expected to be monotone (one per tick); History does not
// itself track tick numbers, only relative recency.
func (h *History) Write(p Phase) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.buf.Len() >= h.capacity {
		h.buf.PopFront()
	}
	h.buf.PushBack(p)
	h.written++
}

// ReadBack returns the Phase written `stepsBack` writes ago (0 = most
// recent). If fewer than stepsBack+1 phases have been written, it returns
// the oldest phase available, and ok is false iff nothing has been
// written at all.
func (h *History) ReadBack(stepsBack int) (p Phase, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := h.buf.Len()
	if n == 0 {
		return Phase{}, false
	}
	idx := n - 1 - stepsBack
	if idx < 0 {
		idx = 0
	}
	return h.buf.At(idx), true
}

// Latest returns the most recently written Phase.
func (h *History) Latest() (Phase, bool) {
	return h.ReadBack(0)
}

// Len returns the number of phases currently buffered.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.Len()
}
