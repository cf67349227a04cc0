package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/postflight/internal/flight"
	"github.com/san-kum/postflight/internal/sim"
)

// FlightPerformance summarizes how well the vehicle flew: speed, climb and
// turn behavior, normal load and specific-energy loss over the run.
type FlightPerformance struct {
	AverageSpeed float64 `json:"average_speed"` // m/s
	MaxSpeed     float64 `json:"max_speed"`     // m/s
	ClimbRate    float64 `json:"climb_rate"`    // mean positive climb rate, m/s
	TurnRate     float64 `json:"turn_rate"`     // mean |Δψ| per sample, deg/s
	LoadFactor   float64 `json:"load_factor"`   // mean |Fz| / (m·g)
	EnergyLoss   float64 `json:"energy_loss"`   // specific energy lost start to end, J/kg
}

// AnalyzePerformance derives the performance summary; aircraft mass and
// gravity are needed for the load factor and energy bookkeeping.
func AnalyzePerformance(tr *sim.Trajectory, ac flight.Aircraft, env flight.Environment) FlightPerformance {
	n := tr.Len()
	if n == 0 {
		return FlightPerformance{}
	}
	ch := extract(tr)

	perf := FlightPerformance{
		AverageSpeed: stat.Mean(ch.speed, nil),
		MaxSpeed:     floats.Max(ch.speed),
	}

	dt := ch.sampleInterval()
	if n > 1 && dt > 0 {
		climbSum, climbN := 0.0, 0
		turnSum := 0.0
		for i := 1; i < n; i++ {
			rate := (ch.altitude[i] - ch.altitude[i-1]) / dt
			if rate > 0 {
				climbSum += rate
				climbN++
			}
			turnSum += math.Abs(ch.psiDeg[i] - ch.psiDeg[i-1])
		}
		if climbN > 0 {
			perf.ClimbRate = climbSum / float64(climbN)
		}
		perf.TurnRate = turnSum / float64(n-1) / dt
	}

	if ac.Mass > 0 && env.Gravity > 0 && len(tr.Forces) > 0 {
		sum := 0.0
		for _, f := range tr.Forces {
			sum += math.Abs(f[2])
		}
		perf.LoadFactor = sum / float64(len(tr.Forces)) / (ac.Mass * env.Gravity)
	}

	if n > 1 {
		g := env.Gravity
		initial := 0.5*ch.speed[0]*ch.speed[0] + g*ch.altitude[0]
		final := 0.5*ch.speed[n-1]*ch.speed[n-1] + g*ch.altitude[n-1]
		perf.EnergyLoss = initial - final
	}

	return perf
}

func (p FlightPerformance) named() map[string]float64 {
	return map[string]float64{
		"average_speed": p.AverageSpeed,
		"max_speed":     p.MaxSpeed,
		"climb_rate":    p.ClimbRate,
		"turn_rate":     p.TurnRate,
		"load_factor":   p.LoadFactor,
		"energy_loss":   p.EnergyLoss,
	}
}
