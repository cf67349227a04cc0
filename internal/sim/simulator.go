package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/postflight/internal/dynamo"
	"github.com/san-kum/postflight/internal/flight"
	"github.com/san-kum/postflight/internal/integrators"
)

// Config controls one simulation run.
type Config struct {
	TStart   float64
	TEnd     float64
	DtReport float64 // fixed reporting cadence; the trajectory time axis

	RTol float64 // relative tolerance for the adaptive integrator
	ATol float64 // absolute tolerance

	InitialDt float64 // first internal step attempt
	MinDt     float64 // internal step floor; going below fails the run

	// MaxSteps bounds the number of internal steps. The core has no
	// wall-clock notion, so exhausting the budget counts as divergence.
	MaxSteps int
}

func DefaultConfig() Config {
	return Config{
		TStart:    0,
		TEnd:      10,
		DtReport:  0.01,
		RTol:      1e-6,
		ATol:      1e-8,
		InitialDt: 0.01,
		MinDt:     1e-10,
		MaxSteps:  2_000_000,
	}
}

// Simulator integrates one vehicle condition over a time window. It owns no
// mutable state between runs; the same Simulator may be reused sequentially,
// and distinct Simulators run concurrently with no sharing.
type Simulator struct {
	dyn   *flight.Dynamics
	integ dynamo.AdaptiveIntegrator
}

func New(dyn *flight.Dynamics) *Simulator {
	return &Simulator{dyn: dyn, integ: integrators.NewRK45()}
}

// NewWith uses a specific adaptive integrator instead of the default RK45.
func NewWith(dyn *flight.Dynamics, integ dynamo.AdaptiveIntegrator) *Simulator {
	return &Simulator{dyn: dyn, integ: integ}
}

func (s *Simulator) validate(x0 flight.State, cfg Config) error {
	if cfg.DtReport <= 0 {
		return fmt.Errorf("dt_report must be positive, got %g", cfg.DtReport)
	}
	if cfg.TEnd <= cfg.TStart {
		return fmt.Errorf("t_end must exceed t_start, got [%g, %g]", cfg.TStart, cfg.TEnd)
	}
	if cfg.RTol <= 0 || cfg.ATol <= 0 {
		return fmt.Errorf("tolerances must be positive, got rtol=%g atol=%g", cfg.RTol, cfg.ATol)
	}

	if !x0.Valid() {
		return &dynamo.SimulationError{Time: cfg.TStart, Wrapped: dynamo.ErrInvalidInitialState}
	}
	if err := s.dyn.Aircraft.Validate(); err != nil {
		return &dynamo.SimulationError{Time: cfg.TStart, Wrapped: fmt.Errorf("%w: %v", dynamo.ErrInvalidInitialState, err)}
	}
	if s.dyn.Singular(x0) {
		return &dynamo.SimulationError{Time: cfg.TStart, Wrapped: dynamo.ErrSingularKinematics}
	}
	return nil
}

// Run integrates from x0 over [TStart, TEnd] and reports the state at every
// DtReport multiple, endpoint included. Internal adaptive steps are clamped
// so each report time is hit exactly; forces and moments are recomputed at
// the reported states rather than reused from RK stages.
//
// Failures are all-or-nothing: on any error the partial trajectory is
// discarded and the returned error unwraps to one of the dynamo failure
// kinds.
func (s *Simulator) Run(ctx context.Context, x0 flight.State, cfg Config) (*Trajectory, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	reports := int(math.Round((cfg.TEnd - cfg.TStart) / cfg.DtReport))
	if reports < 1 {
		reports = 1
	}

	tr := &Trajectory{
		Times:   make([]float64, 0, reports+1),
		States:  make([]flight.State, 0, reports+1),
		Forces:  make([]flight.Vec3, 0, reports+1),
		Moments: make([]flight.Vec3, 0, reports+1),
	}

	x := x0.Vector()
	t := cfg.TStart
	s.record(tr, t, x0)

	dt := cfg.InitialDt
	if dt <= 0 || dt > cfg.DtReport {
		dt = cfg.DtReport
	}
	minDt := cfg.MinDt
	if minDt <= 0 {
		minDt = 1e-10
	}

	taken := 0
	for i := 1; i <= reports; i++ {
		target := cfg.TStart + float64(i)*cfg.DtReport
		if i == reports {
			target = cfg.TEnd
		}

		for t < target-1e-12*math.Max(1, math.Abs(target)) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			h := math.Min(dt, target-t)
			next, used, dtNext, err := s.integ.StepAdaptive(s.dyn, x, t, h, cfg.RTol, cfg.ATol, minDt)
			if err != nil {
				// Tolerance unreachable above the step floor.
				return nil, &dynamo.SimulationError{Step: taken, Time: t, Wrapped: dynamo.ErrDivergence}
			}

			taken++
			if cfg.MaxSteps > 0 && taken > cfg.MaxSteps {
				return nil, &dynamo.SimulationError{Step: taken, Time: t, Wrapped: dynamo.ErrDivergence}
			}
			if !next.IsValid() {
				return nil, &dynamo.SimulationError{Step: taken, Time: t, Wrapped: dynamo.ErrDivergence}
			}

			st := flight.FromVector(next)
			if s.dyn.Singular(st) {
				return nil, &dynamo.SimulationError{Step: taken, Time: t, Wrapped: dynamo.ErrSingularKinematics}
			}

			x = next
			t += used
			if h >= dt || dtNext < dt {
				dt = dtNext
			}
		}

		t = target // kill accumulated rounding on the report grid
		s.record(tr, t, flight.FromVector(x))
	}

	return tr, nil
}

func (s *Simulator) record(tr *Trajectory, t float64, st flight.State) {
	force, moment := flight.TotalForcesMoments(st, s.dyn.Aero, s.dyn.Aircraft, s.dyn.Env)
	tr.Times = append(tr.Times, t)
	tr.States = append(tr.States, st)
	tr.Forces = append(tr.Forces, force)
	tr.Moments = append(tr.Moments, moment)
}

// FailureKind maps a run error to its taxonomy entry, or nil for
// caller-input errors that are not part of the taxonomy.
func FailureKind(err error) error {
	for _, kind := range []error{
		dynamo.ErrInvalidInitialState,
		dynamo.ErrDivergence,
		dynamo.ErrSingularKinematics,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
