package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/postflight/internal/sim"
)

// TrajectoryMetrics are scalar summaries of one run. The stability margin
// and controllability index are deliberate engineering proxies (attitude
// scatter and rate RMS), not modal analysis; their formulas are part of the
// tool's contract.
type TrajectoryMetrics struct {
	MaxAltitude    float64 `json:"max_altitude"`    // m
	MaxRange       float64 `json:"max_range"`       // m
	FlightTime     float64 `json:"flight_time"`     // s
	ImpactVelocity float64 `json:"impact_velocity"` // final speed, m/s
	ImpactAngleDeg float64 `json:"impact_angle"`    // final flight-path angle, degrees

	// StabilityMargin is 10 minus the pitch-angle standard deviation in
	// degrees, floored at zero.
	StabilityMargin float64 `json:"stability_margin"`

	// ControllabilityIndex is 100 minus the combined angular-rate RMS in
	// degrees per second, floored at zero.
	ControllabilityIndex float64 `json:"controllability_index"`
}

// Metrics summarizes a completed trajectory. Deterministic: the same
// trajectory always yields the same numbers.
func Metrics(tr *sim.Trajectory) TrajectoryMetrics {
	n := tr.Len()
	if n == 0 {
		return TrajectoryMetrics{}
	}
	ch := extract(tr)

	m := TrajectoryMetrics{
		MaxAltitude: floats.Max(ch.altitude),
		MaxRange:    floats.Max(ch.rng),
		FlightTime:  tr.Duration(),
	}
	m.ImpactVelocity = ch.speed[n-1]
	m.ImpactAngleDeg = ch.fpaDeg[n-1]

	if n > 1 {
		m.StabilityMargin = math.Max(0, 10-stat.PopStdDev(ch.thetaDeg, nil))

		sumSq := 0.0
		for i := 0; i < n; i++ {
			sumSq += ch.pDeg[i]*ch.pDeg[i] + ch.qDeg[i]*ch.qDeg[i] + ch.rDeg[i]*ch.rDeg[i]
		}
		rms := math.Sqrt(sumSq / float64(n))
		m.ControllabilityIndex = math.Max(0, 100-rms)
	}
	return m
}

// named returns the metrics keyed for the comparison engine.
func (m TrajectoryMetrics) named() map[string]float64 {
	return map[string]float64{
		"max_altitude":          m.MaxAltitude,
		"max_range":             m.MaxRange,
		"flight_time":           m.FlightTime,
		"impact_velocity":       m.ImpactVelocity,
		"impact_angle":          m.ImpactAngleDeg,
		"stability_margin":      m.StabilityMargin,
		"controllability_index": m.ControllabilityIndex,
	}
}
