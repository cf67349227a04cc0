package scenario

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/postflight/internal/analysis"
	"github.com/san-kum/postflight/internal/config"
	"github.com/san-kum/postflight/internal/flight"
	"github.com/san-kum/postflight/internal/integrators"
	"github.com/san-kum/postflight/internal/sim"
)

// Scenario couples one vehicle, environment and initial condition with a
// reference aerodynamic model and the damaged model to be judged against it.
// The damage itself was quantified upstream; here it is just two coefficient
// sets.
type Scenario struct {
	Name string

	Aircraft flight.Aircraft
	Env      flight.Environment

	Reference flight.AeroModel
	Damaged   flight.AeroModel

	Initial flight.State
	Sim     sim.Config

	// Integrator names the scheme both conditions run with; empty means
	// the default adaptive RK45.
	Integrator string
}

// FromConfig builds a runnable scenario out of a loaded config file.
func FromConfig(cfg *config.Config) *Scenario {
	return &Scenario{
		Name:      cfg.Name,
		Aircraft:  cfg.Aircraft,
		Env:       cfg.Environment,
		Reference: cfg.Baseline,
		Damaged:   cfg.Damaged,
		Initial:   cfg.InitState.State(),
		Sim: sim.Config{
			TStart:   cfg.Window.TStart,
			TEnd:     cfg.Window.TEnd,
			DtReport: cfg.Window.DtReport,
			RTol:     cfg.Window.RTol,
			ATol:     cfg.Window.ATol,
			MaxSteps: cfg.Window.MaxSteps,
		},
		Integrator: cfg.Window.Integrator,
	}
}

func (s *Scenario) referenceDynamics() *flight.Dynamics {
	return flight.NewDynamics(s.Aircraft, s.Reference, s.Env)
}

func (s *Scenario) damagedDynamics() *flight.Dynamics {
	return flight.NewDynamics(s.Aircraft, s.Damaged, s.Env)
}

func (s *Scenario) simulator(dyn *flight.Dynamics) (*sim.Simulator, error) {
	integ, err := integrators.New(s.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.NewWith(dyn, integ), nil
}

// RunReference simulates the undamaged condition alone.
func (s *Scenario) RunReference(ctx context.Context) (*sim.Trajectory, error) {
	sm, err := s.simulator(s.referenceDynamics())
	if err != nil {
		return nil, err
	}
	return sm.Run(ctx, s.Initial, s.Sim)
}

// RunDamaged simulates the damaged condition alone.
func (s *Scenario) RunDamaged(ctx context.Context) (*sim.Trajectory, error) {
	sm, err := s.simulator(s.damagedDynamics())
	if err != nil {
		return nil, err
	}
	return sm.Run(ctx, s.Initial, s.Sim)
}

// RunComparison simulates both conditions concurrently and quantifies the
// degradation. A failure of either run fails the whole comparison; there is
// no partial report.
func (s *Scenario) RunComparison(ctx context.Context, log zerolog.Logger) (*analysis.ComparisonReport, error) {
	log.Info().
		Str("scenario", s.Name).
		Float64("t_end", s.Sim.TEnd).
		Float64("dt_report", s.Sim.DtReport).
		Msg("running reference and damaged conditions")

	refSim, err := s.simulator(s.referenceDynamics())
	if err != nil {
		return nil, err
	}
	damSim, err := s.simulator(s.damagedDynamics())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ref, dam, err := sim.RunPair(ctx, refSim, damSim, s.Initial, s.Sim)
	if err != nil {
		log.Error().Err(err).Str("scenario", s.Name).Msg("simulation failed")
		return nil, err
	}
	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("samples", ref.Len()).
		Msg("runs complete")

	rep := analysis.Compare(ref, dam)
	rep.AddPerformance(
		analysis.AnalyzePerformance(ref, s.Aircraft, s.Env),
		analysis.AnalyzePerformance(dam, s.Aircraft, s.Env),
	)
	return rep, nil
}

// StaticReport is the pre-flight derivative read on both conditions.
type StaticReport struct {
	Reference flight.StaticStability `json:"reference"`
	Damaged   flight.StaticStability `json:"damaged"`
	Envelope  flight.Envelope        `json:"envelope"`
}

// Static evaluates the sign-based stability judgments without running a
// simulation.
func (s *Scenario) Static() StaticReport {
	return StaticReport{
		Reference: s.Reference.StaticStability(),
		Damaged:   s.Damaged.StaticStability(),
		Envelope:  flight.DefaultEnvelope(),
	}
}
