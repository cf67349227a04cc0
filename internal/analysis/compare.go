package analysis

import (
	"math"

	"github.com/san-kum/postflight/internal/sim"
)

// RunSummary bundles the three analyses of one trajectory.
type RunSummary struct {
	Metrics         TrajectoryMetrics       `json:"trajectory_metrics"`
	Stability       StabilityAnalysis       `json:"stability_analysis"`
	Controllability ControllabilityAnalysis `json:"controllability_analysis"`
}

// Summarize runs the full analysis suite on one trajectory.
func Summarize(tr *sim.Trajectory) RunSummary {
	return RunSummary{
		Metrics:         Metrics(tr),
		Stability:       AnalyzeStability(tr),
		Controllability: AnalyzeControllability(tr),
	}
}

// ComparisonReport quantifies degradation of a damaged run against its
// reference. Degradation maps hold signed percentage change per named
// metric, (reference − damaged) / reference × 100, defined as 0 when the
// reference value is exactly 0. Deviations are mean absolute differences
// over the overlapping prefix of the two time axes.
type ComparisonReport struct {
	Reference RunSummary `json:"reference"`
	Damaged   RunSummary `json:"damaged"`

	MetricsDegradation         map[string]float64 `json:"metrics_degradation"`
	StabilityDegradation       map[string]float64 `json:"stability_degradation"`
	ControllabilityDegradation map[string]float64 `json:"controllability_degradation"`

	// PerformanceDegradation is filled by AddPerformance when the caller
	// has the aircraft parameters needed for the performance analysis.
	PerformanceDegradation map[string]float64 `json:"performance_degradation,omitempty"`

	AltitudeDeviation float64 `json:"altitude_deviation"` // m
	SpeedDeviation    float64 `json:"speed_deviation"`    // m/s
}

// PercentChange is the signed degradation of damaged relative to reference,
// 0 when the reference is exactly 0.
func PercentChange(reference, damaged float64) float64 {
	if reference == 0 {
		return 0
	}
	return (reference - damaged) / reference * 100
}

func degradation(ref, dam map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(ref))
	for name, rv := range ref {
		out[name] = PercentChange(rv, dam[name])
	}
	return out
}

// Compare analyzes both trajectories independently and differences every
// named metric. Both trajectories must come from successful runs; failed
// runs never reach this point because the simulator returns no trajectory
// for them.
func Compare(reference, damaged *sim.Trajectory) *ComparisonReport {
	rep := &ComparisonReport{
		Reference: Summarize(reference),
		Damaged:   Summarize(damaged),
	}

	rep.MetricsDegradation = degradation(rep.Reference.Metrics.named(), rep.Damaged.Metrics.named())
	rep.StabilityDegradation = degradation(rep.Reference.Stability.named(), rep.Damaged.Stability.named())
	rep.ControllabilityDegradation = degradation(rep.Reference.Controllability.named(), rep.Damaged.Controllability.named())

	rep.AltitudeDeviation, rep.SpeedDeviation = deviations(reference, damaged)
	return rep
}

// AddPerformance folds a flight-performance comparison into the report.
func (rep *ComparisonReport) AddPerformance(reference, damaged FlightPerformance) {
	rep.PerformanceDegradation = degradation(reference.named(), damaged.named())
}

// deviations aligns the two runs sample-by-sample, truncated to the shorter
// trajectory, and averages the absolute altitude and speed differences.
func deviations(a, b *sim.Trajectory) (altitude, speed float64) {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	if n == 0 {
		return 0, 0
	}

	for i := 0; i < n; i++ {
		altitude += math.Abs(a.States[i].Altitude() - b.States[i].Altitude())
		speed += math.Abs(a.States[i].Airspeed() - b.States[i].Airspeed())
	}
	return altitude / float64(n), speed / float64(n)
}
