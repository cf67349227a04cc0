package integrators

import "github.com/san-kum/postflight/internal/dynamo"

// Euler is the first-order explicit scheme. Too crude for production runs;
// kept as the accuracy baseline in integrator comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	k := sys.Derive(x, t)
	next := make(dynamo.State, len(x))
	for i := range x {
		next[i] = x[i] + dt*k[i]
	}
	return next
}
