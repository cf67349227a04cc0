package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/postflight/internal/sim"
)

// ControllabilityAnalysis scores how much rate response each axis showed
// over a run. Effectiveness comes from the excursion range of each angular
// rate channel, response time from the first rate change exceeding one
// standard deviation of its own increments, and authority from the peak
// rate across all axes. Like the stability scores these are documented
// heuristics, not control-theoretic observability.
type ControllabilityAnalysis struct {
	Pitch   float64 `json:"pitch_control_effectiveness"` // 0-100
	Roll    float64 `json:"roll_control_effectiveness"`
	Yaw     float64 `json:"yaw_control_effectiveness"`
	Overall float64 `json:"overall_controllability"`

	ResponseTime     float64 `json:"response_time"`     // s
	ControlAuthority float64 `json:"control_authority"` // 0-100
}

func effectiveness(rateDeg []float64) float64 {
	if len(rateDeg) <= minStabilitySamples {
		return 0
	}
	span := floats.Max(rateDeg) - floats.Min(rateDeg)
	return math.Min(100, span*5)
}

func AnalyzeControllability(tr *sim.Trajectory) ControllabilityAnalysis {
	ch := extract(tr)

	ca := ControllabilityAnalysis{
		Roll:  effectiveness(ch.pDeg),
		Pitch: effectiveness(ch.qDeg),
		Yaw:   effectiveness(ch.rDeg),
	}
	ca.Overall = (ca.Pitch + ca.Roll + ca.Yaw) / 3

	ca.ResponseTime = responseTime(ch.qDeg, ch.sampleInterval())

	peak := 0.0
	for i := range ch.pDeg {
		peak = math.Max(peak, math.Abs(ch.pDeg[i]))
		peak = math.Max(peak, math.Abs(ch.qDeg[i]))
		peak = math.Max(peak, math.Abs(ch.rDeg[i]))
	}
	ca.ControlAuthority = math.Min(100, peak*2)

	return ca
}

// responseTime finds the first pitch-rate increment larger than one standard
// deviation of all increments and reports when it happened.
func responseTime(qDeg []float64, dt float64) float64 {
	if len(qDeg) <= 5 || dt <= 0 {
		return 0
	}

	diffs := make([]float64, len(qDeg)-1)
	for i := range diffs {
		diffs[i] = math.Abs(qDeg[i+1] - qDeg[i])
	}
	sigma := stat.PopStdDev(diffs, nil)
	if sigma == 0 {
		return 0
	}

	for i, d := range diffs {
		if d > sigma {
			return float64(i) * dt
		}
	}
	return 0
}

func (ca ControllabilityAnalysis) named() map[string]float64 {
	return map[string]float64{
		"pitch_control_effectiveness": ca.Pitch,
		"roll_control_effectiveness":  ca.Roll,
		"yaw_control_effectiveness":   ca.Yaw,
		"overall_controllability":     ca.Overall,
		"response_time":               ca.ResponseTime,
		"control_authority":           ca.ControlAuthority,
	}
}
