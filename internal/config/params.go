// Package config holds the flat, named configuration parameters of the
// flocking core as typed, immutable-once-validated structs: named fields
// grouped by concern, a constructor with sane defaults, and a
// NormalizeAndValidate pass that rejects out-of-range values instead of
// silently clamping them at load time.
package config

// FlockingParams holds the force-law and arena parameters.
type FlockingParams struct {
	VFlock              float64 // m/s, saturation speed of the summed flocking force
	VRep                float64 // m/s, repulsion saturation speed
	VFrict              float64 // m/s, minimum friction braking speed
	VMax                float64 // m/s, hard velocity ceiling
	R0                  float64 // m, equilibrium inter-agent distance
	KPress              float64 // pressure-repulsion gain
	R0OffsetFrict       float64 // m, offset added to R0 for the friction reference distance
	R0Shill             float64 // m, reference distance for the wall/obstacle shill term
	SlopeRep            float64
	SlopeAtt            float64
	SlopeFrict          float64
	AccFrict            float64 // m/s^2, braking deceleration budget for friction
	SlopeShill          float64
	VShill              float64 // m/s, shill agent speed
	AccShill            float64 // m/s^2
	HBump               float64 // bump function plateau fraction, (0,1)
	Epsilon             float64 // sigma-norm smoothing parameter
	AActionFunction     float64
	BActionFunction     float64
	SizeNeighbourhood   int
	ArenaRadius         float64
	Lambda2             float64 // target algebraic connectivity λ*
	CFrict              float64
	ArenaCenterX        float64
	ArenaCenterY        float64
	ArenaShape          ArenaShape
	Dim                 int // 2 or 3
}

// ArenaShape selects the arena boundary geometry.
type ArenaShape int

const (
	ArenaDisc ArenaShape = iota
	ArenaSquare
)

// UnitParams holds the actuator/sensing unit model.
type UnitParams struct {
	TauPIDXY           float64 // s, first-order response time constant, XY
	TauPIDZ            float64 // s, first-order response time constant, Z
	SigmaOuterXY       float64
	SigmaOuterZ        float64
	SigmaGPSXY         float64
	SigmaGPSZ          float64
	TDelay             float64 // s, observation delay
	TGPS               float64 // s, GPS/preferred-velocity recompute period
	AMax               float64 // m/s^2
	CommunicationType  int     // 0,1,2
	SensitivityThresh  float64 // dBm
	TransmitPower      float64 // dBm
	RefDistance        float64 // m
	Gamma              float64 // path-loss exponent
	GammaObst          float64 // obstacle attenuation exponent
	Freq               float64 // Hz
	FlockingType       int     // 0..6
}

// SituationParams holds the scenario/topology parameters.
type SituationParams struct {
	NumberOfAgents int
	Radius         float64 // m, collision radius
	DeltaT         float64 // s, integration step
	InitialX       float64
	InitialY       float64
	InitialZ       float64
	Resolution     float64
}

// Params is the full, flat configuration block passed into the core.
type Params struct {
	Flocking  FlockingParams
	Unit      UnitParams
	Situation SituationParams
}

// DefaultParams returns a reference parameter set at a scale suitable for
// small-swarm convergence and connectivity scenarios.
func DefaultParams() Params {
	return Params{
		Flocking: FlockingParams{
			VFlock: 400, VRep: 400, VFrict: 40, VMax: 1500,
			R0: 1000, KPress: 1.0, R0OffsetFrict: 200, R0Shill: 100,
			SlopeRep: 1.0, SlopeAtt: 0.2, SlopeFrict: 4.0, AccFrict: 2.5,
			SlopeShill: 1.0, VShill: 400, AccShill: 2.5,
			HBump: 0.2, Epsilon: 0.1, AActionFunction: 1.0, BActionFunction: 1.0,
			SizeNeighbourhood: 6, ArenaRadius: 10000, Lambda2: 4.0, CFrict: 4.0,
			ArenaCenterX: 0, ArenaCenterY: 0, ArenaShape: ArenaDisc, Dim: 2,
		},
		Unit: UnitParams{
			TauPIDXY: 0.5, TauPIDZ: 0.5,
			SigmaOuterXY: 0.05, SigmaOuterZ: 0.05,
			SigmaGPSXY: 0.1, SigmaGPSZ: 0.1,
			TDelay: 0.3, TGPS: 0.1, AMax: 2.5,
			CommunicationType: 0, SensitivityThresh: -90,
			TransmitPower: 20, RefDistance: 1, Gamma: 2.5, GammaObst: 5.0,
			Freq: 2.4e9, FlockingType: 0,
		},
		Situation: SituationParams{
			NumberOfAgents: 10, Radius: 50, DeltaT: 0.1,
			InitialX: 0, InitialY: 0, InitialZ: 0, Resolution: 1,
		},
	}
}

// NormalizeAndValidate rejects configuration errors at init (fatal)
// rather than silently clamping them.
func (p Params) NormalizeAndValidate() error {
	var errs ValidationErrors

	f := p.Flocking
	errs.checkRange("Flocking.VFlock", f.VFlock, 0, 1e6)
	errs.checkRange("Flocking.VRep", f.VRep, 0, 1e6)
	errs.checkRange("Flocking.VFrict", f.VFrict, 0, 1e6)
	errs.checkRange("Flocking.VMax", f.VMax, 0, 1e6)
	errs.checkRange("Flocking.R0", f.R0, 0, 1e9)
	errs.checkRange("Flocking.Epsilon", f.Epsilon, 1e-9, 10)
	errs.checkRange("Flocking.HBump", f.HBump, 1e-6, 1-1e-6)
	if f.SizeNeighbourhood < 0 {
		errs.reject("Flocking.SizeNeighbourhood", f.SizeNeighbourhood, "must be >= 0")
	}
	if f.Dim != 2 && f.Dim != 3 {
		errs.reject("Flocking.Dim", f.Dim, "must be 2 or 3")
	}
	if f.ArenaShape != ArenaDisc && f.ArenaShape != ArenaSquare {
		errs.reject("Flocking.ArenaShape", f.ArenaShape, "must be disc(0) or square(1)")
	}

	u := p.Unit
	errs.checkRange("Unit.TauPIDXY", u.TauPIDXY, 1e-6, 1e6)
	errs.checkRange("Unit.TauPIDZ", u.TauPIDZ, 1e-6, 1e6)
	errs.checkRange("Unit.TDelay", u.TDelay, 0, 1e6)
	errs.checkRange("Unit.TGPS", u.TGPS, 1e-6, 1e6)
	errs.checkRange("Unit.AMax", u.AMax, 1e-9, 1e6)
	if u.CommunicationType < 0 || u.CommunicationType > 2 {
		errs.reject("Unit.CommunicationType", u.CommunicationType, "must be 0, 1 or 2")
	}
	if u.FlockingType < 0 || u.FlockingType > 6 {
		errs.reject("Unit.FlockingType", u.FlockingType, "must be 0..6")
	}

	s := p.Situation
	if s.NumberOfAgents < 1 {
		errs.reject("Situation.NumberOfAgents", s.NumberOfAgents, "must be >= 1")
	}
	errs.checkRange("Situation.DeltaT", s.DeltaT, 1e-9, 1e6)
	errs.checkRange("Situation.Radius", s.Radius, 0, 1e9)

	if len(errs) > 0 {
		return errs
	}
	return nil
}
