package dynamo

import "math"

// State is a flat ODE state vector. The flight package defines what the
// components mean; dynamo only moves numbers around.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is a finite real number.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is an ODE dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Hamiltonian is implemented by systems that can report total mechanical
// energy, used for conservation checks.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator advances with local error control. StepAdaptive returns
// the accepted state, the step actually taken and a suggestion for the next
// step. It fails only when the step would have to shrink below dtMin to meet
// tolerance.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt, rtol, atol, dtMin float64) (next State, dtUsed, dtNext float64, err error)
}
