// Package radio implements the path-loss link model and neighbour
// selection policy.
package radio

import "math"

// SpeedOfLight in m/s, used to derive the frequency-dependent constant of
// the log-distance path loss model from wavelength lambda = c/f.
const SpeedOfLight = 299_792_458.0

// CommunicationType selects the loss kernel; mode selection never changes
// the function's interface, only how the obstacle term is folded in.
type CommunicationType int

const (
	// LogDistance is the plain log-distance model with free-space
	// reference loss and a single obstacle attenuation term.
	LogDistance CommunicationType = iota
	// LogDistanceShadowed additionally halves the obstacle attenuation
	// exponent's effective reach, modelling a less destructive multipath
	// environment (e.g. indoor/cluttered short-range radios).
	LogDistanceShadowed
	// LogDistanceHardened doubles the obstacle attenuation, modelling a
	// link more sensitive to line-of-sight obstruction (e.g. mmWave).
	LogDistanceHardened
)

// frequencyConstant returns K(f), the free-space path loss at the
// reference distance dRef for wavelength c/f: K(f) = 20*log10(lambda/(4*pi*dRef)).
func frequencyConstant(freq, dRef float64) float64 {
	if freq <= 0 || dRef <= 0 {
		return 0
	}
	lambda := SpeedOfLight / freq
	return 20 * math.Log10(lambda/(4*math.Pi*dRef))
}

// ComputeReceivedPower returns the received power in dBm between two
// agents at distance d (metres) with obstructed-path length dObst (metres,
// 0 if line-of-sight is clear):
//
//	P = Ptx - 10*gamma*log10(d/dRef) - 10*gammaObst*log10(max(dObst,dRef)/dRef) + K(f)
//
// d == 0 (self) returns negative infinity, the documented sentinel for
// "no link to self".
func ComputeReceivedPower(model CommunicationType, d, dObst, dRef, pTx, gamma, gammaObst, freq float64) float64 {
	if d <= 0 {
		return math.Inf(-1)
	}
	if dRef <= 0 {
		dRef = 1
	}

	effGammaObst := gammaObst
	switch model {
	case LogDistanceShadowed:
		effGammaObst *= 0.5
	case LogDistanceHardened:
		effGammaObst *= 2
	}

	pathLoss := 10 * gamma * math.Log10(d/dRef)
	obstLoss := 10 * effGammaObst * math.Log10(math.Max(dObst, dRef)/dRef)
	return pTx - pathLoss - obstLoss + frequencyConstant(freq, dRef)
}
