package flight

import (
	"math"
	"testing"
)

func TestStaticStability_DefaultModel(t *testing.T) {
	ss := DefaultAeroModel().StaticStability()

	if !ss.LongitudinalStable {
		t.Error("default model should be longitudinally stable (CM_alpha < 0)")
	}
	if !ss.DirectionalStable {
		t.Error("default model should be directionally stable (Cn_beta > 0)")
	}
	if !ss.LateralStable {
		t.Error("default model should be laterally stable (Cl_beta < 0)")
	}

	// -(-1)/5 = 0.2
	if math.Abs(ss.StaticMargin-0.2) > 1e-12 {
		t.Errorf("static margin = %g, want 0.2", ss.StaticMargin)
	}
	if ss.PitchDamping >= 0 || ss.RollDamping >= 0 || ss.YawDamping >= 0 {
		t.Errorf("default damping derivatives not negative: %+v", ss)
	}
}

func TestStaticStability_UnstableSigns(t *testing.T) {
	m := AeroModel{CMAlpha: 0.5, CnBeta: -0.1, ClBeta: 0.2}
	ss := m.StaticStability()

	if ss.LongitudinalStable || ss.DirectionalStable || ss.LateralStable {
		t.Errorf("flipped derivatives still judged stable: %+v", ss)
	}
}

func TestStaticStability_ZeroLiftSlope(t *testing.T) {
	m := AeroModel{CMAlpha: -1}
	if sm := m.StaticStability().StaticMargin; sm != 0 {
		t.Errorf("static margin with CL_alpha=0 is %g, want 0", sm)
	}
}

func TestDefaultEnvelopeOrdering(t *testing.T) {
	e := DefaultEnvelope()
	if e.AltitudeMin >= e.AltitudeMax || e.SpeedMin >= e.SpeedMax ||
		e.LoadFactorMin >= e.LoadFactorMax || e.AlphaMinDeg >= e.AlphaMaxDeg {
		t.Errorf("envelope bounds out of order: %+v", e)
	}
}
