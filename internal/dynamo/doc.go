// Package dynamo provides the numerical primitives shared by the flight
// dynamics core:
//
//   - [State]: flat ODE state vector
//   - [System]: the ODE right-hand side dX/dt = f(X, t)
//   - [Integrator] / [AdaptiveIntegrator]: stepping schemes
//   - failure kinds for simulation runs (see errors.go)
//
// The package has no flight-specific knowledge; internal/flight owns the
// meaning of the state components and internal/sim owns the run loop.
package dynamo
