package sim

import "github.com/san-kum/postflight/internal/flight"

// Trajectory is the completed record of one run: states sampled on the
// reporting grid together with the body-axis force and moment at each
// sample. It is materialized in full before any analysis sees it; a failed
// run produces no trajectory at all.
type Trajectory struct {
	Times   []float64
	States  []flight.State
	Forces  []flight.Vec3 // aerodynamic + gravity, body axes
	Moments []flight.Vec3 // aerodynamic, body axes
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Duration is the span of the time axis.
func (tr *Trajectory) Duration() float64 {
	if len(tr.Times) == 0 {
		return 0
	}
	return tr.Times[len(tr.Times)-1] - tr.Times[0]
}

// SampleInterval is the reporting cadence the run was recorded at.
func (tr *Trajectory) SampleInterval() float64 {
	if len(tr.Times) < 2 {
		return 0
	}
	return tr.Times[1] - tr.Times[0]
}

func (tr *Trajectory) Final() flight.State {
	return tr.States[len(tr.States)-1]
}
