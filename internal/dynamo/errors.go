package dynamo

import (
	"errors"
	"fmt"
)

// Failure kinds for simulation runs. A run either fully succeeds or fails
// with exactly one of these; no partial trajectories are returned.
var (
	// ErrInvalidInitialState indicates a NaN/Inf component in the supplied
	// initial state, or a non-positive mass/inertia parameter. Detected
	// before integration begins.
	ErrInvalidInitialState = errors.New("dynamo: invalid initial state")

	// ErrDivergence indicates the adaptive integrator could not satisfy
	// tolerance above its step floor, a derivative evaluation produced a
	// non-finite value mid-run, or the step budget was exhausted.
	ErrDivergence = errors.New("dynamo: integration divergence")

	// ErrSingularKinematics indicates pitch approached ±90° closely enough
	// that the Euler-angle rate equations are unusable (gimbal lock).
	ErrSingularKinematics = errors.New("dynamo: singular attitude kinematics")

	// ErrStepTooSmall indicates the adaptive timestep fell below its floor.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)

// SimulationError wraps a failure kind with the step and time it occurred at.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%v at t=%g (step %d)", e.Wrapped, e.Time, e.Step)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
