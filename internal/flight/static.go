package flight

// StaticStability is a sign-based read of the stability derivatives, the
// quick judgment an engineer makes before looking at a trajectory.
type StaticStability struct {
	LongitudinalStable bool    // CM_alpha < 0
	DirectionalStable  bool    // Cn_beta > 0
	LateralStable      bool    // Cl_beta < 0
	StaticMargin       float64 // -CM_alpha / CL_alpha

	PitchDamping float64 // CM_q
	RollDamping  float64 // Cl_p
	YawDamping   float64 // Cn_r
}

// StaticStability evaluates the derivative signs of the model.
func (m AeroModel) StaticStability() StaticStability {
	ss := StaticStability{
		LongitudinalStable: m.CMAlpha < 0,
		DirectionalStable:  m.CnBeta > 0,
		LateralStable:      m.ClBeta < 0,
		PitchDamping:       m.CMQ,
		RollDamping:        m.ClP,
		YawDamping:         m.CnR,
	}
	if m.CLAlpha != 0 {
		ss.StaticMargin = -m.CMAlpha / m.CLAlpha
	}
	return ss
}

// Envelope is a coarse operating-range estimate for reporting.
type Envelope struct {
	AltitudeMin, AltitudeMax     float64 // m
	SpeedMin, SpeedMax           float64 // m/s
	LoadFactorMin, LoadFactorMax float64
	AlphaMinDeg, AlphaMaxDeg     float64 // degrees
}

// DefaultEnvelope is the fixed estimate used when no vehicle-specific
// envelope is available.
func DefaultEnvelope() Envelope {
	return Envelope{
		AltitudeMin: 0, AltitudeMax: 15000,
		SpeedMin: 50, SpeedMax: 300,
		LoadFactorMin: -2, LoadFactorMax: 6,
		AlphaMinDeg: -10, AlphaMaxDeg: 25,
	}
}
