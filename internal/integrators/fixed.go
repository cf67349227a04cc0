package integrators

import (
	"fmt"

	"github.com/san-kum/postflight/internal/dynamo"
)

// Fixed adapts a fixed-step scheme to the adaptive interface: every step is
// taken at exactly the size it is offered, tolerances are ignored and no step
// is ever rejected. Used to run RK4 and Euler through the same simulator for
// accuracy comparisons.
type Fixed struct {
	inner dynamo.Integrator
}

func NewFixed(inner dynamo.Integrator) *Fixed {
	return &Fixed{inner: inner}
}

func (f *Fixed) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return f.inner.Step(sys, x, t, dt)
}

func (f *Fixed) StepAdaptive(sys dynamo.System, x dynamo.State, t, dt, rtol, atol, dtMin float64) (dynamo.State, float64, float64, error) {
	return f.inner.Step(sys, x, t, dt), dt, dt, nil
}

// New maps a config name to an integrator. The empty name means the default
// adaptive RK45; "rk4" and "euler" run fixed-step at the configured initial
// step size.
func New(name string) (dynamo.AdaptiveIntegrator, error) {
	switch name {
	case "", "rk45":
		return NewRK45(), nil
	case "rk4":
		return NewFixed(NewRK4()), nil
	case "euler":
		return NewFixed(NewEuler()), nil
	}
	return nil, fmt.Errorf("unknown integrator %q (rk45, rk4, euler)", name)
}
