package integrators

import "github.com/san-kum/postflight/internal/dynamo"

// RK4 is the classical fixed-step fourth-order scheme, kept as a
// benchmarking alternative to the adaptive RK45.
type RK4 struct {
	scratch dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	if len(r.scratch) != n {
		r.scratch = make(dynamo.State, n)
	}
	xs := r.scratch

	k1 := sys.Derive(x, t)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(xs, t+dt*0.5)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := sys.Derive(xs, t+dt*0.5)

	for i := 0; i < n; i++ {
		xs[i] = x[i] + dt*k3[i]
	}
	k4 := sys.Derive(xs, t+dt)

	next := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		next[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return next
}
