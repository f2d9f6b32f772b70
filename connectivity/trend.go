package connectivity

import (
	"sync"

	"github.com/gammazero/deque"
)

// Trend tracks algebraic connectivity (lambda2) over a sliding window of
// recent ticks and reports its regression slope and whether it is rising.
type Trend struct {
	mu         sync.Mutex
	history    *deque.Deque[float64]
	windowSize int
}

// NewTrend creates a Trend over the given window size (ticks).
func NewTrend(windowSize int) *Trend {
	if windowSize <= 0 {
		windowSize = 50
	}
	return &Trend{
		history:    deque.New[float64](windowSize),
		windowSize: windowSize,
	}
}

// Record appends the latest lambda2 sample, evicting the oldest once the
// window is full.
func (t *Trend) Record(lambda2 float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.history.Len() >= t.windowSize {
		t.history.PopFront()
	}
	t.history.PushBack(lambda2)
}

// Slope returns the least-squares linear slope of lambda2 over the
// current window, 0 if fewer than two samples have been recorded.
func (t *Trend) Slope() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.history.Len()
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := t.history.At(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := float64(n)*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / denom
}

// IsRising reports whether the recent trend is non-decreasing (the
// scenario this drives: lambda2 should climb monotonically toward a
// connectivity target).
func (t *Trend) IsRising() bool {
	return t.Slope() >= -1e-9
}

// Latest returns the most recently recorded sample, 0 if none yet.
func (t *Trend) Latest() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.history.Len() == 0 {
		return 0
	}
	return t.history.At(t.history.Len() - 1)
}
