package ego

import (
	"math"

	"github.com/flocksim/swarmcore/internal/randstream"
)

// AR1Filter is a first-order autoregressive noise filter, one per axis
// group (XY or Z), ticked at most once every t_GPS seconds.
type AR1Filter struct {
	rho          float64 // autocorrelation coefficient
	sigma        float64 // stationary standard deviation
	value        float64
	elapsed      float64 // seconds since last tick
	tickInterval float64
}

// NewAR1Filter creates a filter with the given stationary standard
// deviation and GPS tick interval. rho is fixed at 0.9, a mild smoothing
// factor consistent with slowly-drifting GPS bias rather than white noise.
func NewAR1Filter(sigma, tickInterval float64) *AR1Filter {
	return &AR1Filter{rho: 0.9, sigma: sigma, tickInterval: tickInterval}
}

// Advance steps the filter by dt seconds of simulated time, drawing a new
// noise sample from stream only once the accumulated time reaches the GPS
// tick interval, and returns the current bias value.
func (f *AR1Filter) Advance(dt float64, stream *randstream.Stream) float64 {
	f.elapsed += dt
	if f.tickInterval <= 0 || f.elapsed+1e-12 >= f.tickInterval {
		f.elapsed = 0
		innovationStd := f.sigma * math.Sqrt(math.Max(0, 1-f.rho*f.rho))
		f.value = f.rho*f.value + stream.Gaussian(0, innovationStd)
	}
	return f.value
}
