package flight

// AeroModel is the aerodynamic characterization of one vehicle condition:
// six baseline coefficients plus the stability derivatives that linearize
// them around that condition. The values are opaque numbers supplied by an
// upstream analysis stage (CFD, wind tunnel, estimate); the dynamics core
// never asks where they came from.
//
// The struct is fixed-shape on purpose: a missing derivative is a zero slope,
// not a runtime lookup failure.
type AeroModel struct {
	// Baseline coefficients.
	CL float64 `yaml:"cl"` // lift
	CD float64 `yaml:"cd"` // drag
	CY float64 `yaml:"cy"` // side force
	Cl float64 `yaml:"cl_roll"` // rolling moment
	CM float64 `yaml:"cm"` // pitching moment
	Cn float64 `yaml:"cn"` // yawing moment

	// Stability derivatives.
	CLAlpha float64 `yaml:"cl_alpha"` // ∂CL/∂α
	CDAlpha float64 `yaml:"cd_alpha"` // ∂CD/∂α
	CMAlpha float64 `yaml:"cm_alpha"` // ∂CM/∂α
	CLQ     float64 `yaml:"cl_q"`     // ∂CL/∂q̂
	CMQ     float64 `yaml:"cm_q"`     // ∂CM/∂q̂
	CYBeta  float64 `yaml:"cy_beta"`  // ∂CY/∂β
	ClBeta  float64 `yaml:"cl_beta"`  // ∂Cl/∂β
	CnBeta  float64 `yaml:"cn_beta"`  // ∂Cn/∂β
	ClP     float64 `yaml:"cl_p"`     // ∂Cl/∂p̂
	CnR     float64 `yaml:"cn_r"`     // ∂Cn/∂r̂
}

// DefaultAeroModel is a generic statically stable airframe, the same nominal
// values the upstream analysis stage falls back to.
func DefaultAeroModel() AeroModel {
	return AeroModel{
		CL: 0.5, CD: 0.05,
		CLAlpha: 5.0, CDAlpha: 0.5, CMAlpha: -1.0,
		CLQ: 8.0, CMQ: -20.0,
		CYBeta: -0.5, ClBeta: -0.1, CnBeta: 0.1,
		ClP: -0.5, CnR: -0.3,
	}
}
