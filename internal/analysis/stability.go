package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/postflight/internal/sim"
)

// StabilityAnalysis scores how steady the vehicle held its attitude over a
// run. Scores are 0-100, computed from Euler-angle variance in degrees;
// lower scatter means a higher score. The oscillation estimate is spectral:
// dominant pitch frequency plus a first-half/second-half amplitude ratio as
// a damping proxy.
type StabilityAnalysis struct {
	Longitudinal float64 `json:"longitudinal_stability"` // pitch-axis score
	Lateral      float64 `json:"lateral_stability"`      // roll-axis score
	Directional  float64 `json:"directional_stability"`  // yaw-axis score
	Overall      float64 `json:"overall_stability"`      // mean of the three

	OscillationFrequency float64 `json:"oscillation_frequency"` // Hz, dominant pitch component
	DampingRatio         float64 `json:"damping_ratio"`         // 0-1, amplitude-decay proxy
}

// minStabilitySamples is the shortest run the variance scores are meaningful
// for; shorter runs score zero rather than pretending precision.
const minStabilitySamples = 10

func axisScore(deg []float64) float64 {
	if len(deg) <= minStabilitySamples {
		return 0
	}
	return math.Max(0, 100-stat.PopVariance(deg, nil)*10)
}

func AnalyzeStability(tr *sim.Trajectory) StabilityAnalysis {
	ch := extract(tr)

	sa := StabilityAnalysis{
		Longitudinal: axisScore(ch.thetaDeg),
		Lateral:      axisScore(ch.phiDeg),
		Directional:  axisScore(ch.psiDeg),
	}
	sa.Overall = (sa.Longitudinal + sa.Lateral + sa.Directional) / 3

	if len(ch.thetaDeg) > 20 {
		sa.OscillationFrequency = DominantFrequency(ch.thetaDeg, ch.sampleInterval())

		if sa.OscillationFrequency > 0 {
			half := len(ch.thetaDeg) / 2
			early := stat.PopStdDev(ch.thetaDeg[:half], nil)
			late := stat.PopStdDev(ch.thetaDeg[half:], nil)
			if late > 0 {
				sa.DampingRatio = math.Min(1, early/late/2)
			}
		}
	}
	return sa
}

func (sa StabilityAnalysis) named() map[string]float64 {
	return map[string]float64{
		"longitudinal_stability": sa.Longitudinal,
		"lateral_stability":      sa.Lateral,
		"directional_stability":  sa.Directional,
		"overall_stability":      sa.Overall,
		"oscillation_frequency":  sa.OscillationFrequency,
		"damping_ratio":          sa.DampingRatio,
	}
}
