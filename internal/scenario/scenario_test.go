package scenario

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/san-kum/postflight/internal/config"
	"github.com/san-kum/postflight/internal/dynamo"
	"github.com/san-kum/postflight/internal/flight"
)

func shortScenario(name string) *Scenario {
	cfg := config.GetPreset(name)
	s := FromConfig(cfg)
	s.Sim.TEnd = 2
	s.Sim.DtReport = 0.05
	return s
}

func TestFromConfigCarriesEverything(t *testing.T) {
	cfg := config.GetPreset("wing-damage")
	s := FromConfig(cfg)

	if s.Name != "wing-damage" {
		t.Errorf("name = %q", s.Name)
	}
	if s.Aircraft != cfg.Aircraft || s.Reference != cfg.Baseline || s.Damaged != cfg.Damaged {
		t.Error("vehicle or aero models not carried over")
	}
	if s.Initial != cfg.InitState.State() {
		t.Errorf("initial state = %+v", s.Initial)
	}
	if s.Sim.TEnd != cfg.Window.TEnd || s.Sim.DtReport != cfg.Window.DtReport {
		t.Errorf("window not carried over: %+v", s.Sim)
	}
	if s.Integrator != cfg.Window.Integrator {
		t.Errorf("integrator = %q, want %q", s.Integrator, cfg.Window.Integrator)
	}
}

func TestIntegratorSelection(t *testing.T) {
	// A fixed-step scheme selected through the config must still track
	// the free-fall closed form on the ballistic preset.
	s := shortScenario("ballistic")
	s.Integrator = "rk4"

	tr, err := s.RunReference(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	last := tr.Final()
	tEnd := tr.Times[tr.Len()-1]
	wantZ := -10000 - 200*math.Sin(0.087)*tEnd + 0.5*9.81*tEnd*tEnd
	if math.Abs(last.Z-wantZ) > 1e-3 {
		t.Errorf("z = %g, want %g", last.Z, wantZ)
	}
}

func TestUnknownIntegratorFailsRun(t *testing.T) {
	s := shortScenario("undamaged")
	s.Integrator = "leapfrog"

	if _, err := s.RunReference(context.Background()); err == nil {
		t.Error("unknown integrator accepted by RunReference")
	}
	if _, err := s.RunComparison(context.Background(), zerolog.Nop()); err == nil {
		t.Error("unknown integrator accepted by RunComparison")
	}
}

func TestRunComparison_Undamaged(t *testing.T) {
	s := shortScenario("undamaged")

	rep, err := s.RunComparison(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	// Identical models: every degradation is exactly zero.
	for name, v := range rep.MetricsDegradation {
		if v != 0 {
			t.Errorf("metric %q degraded %g%% with identical models", name, v)
		}
	}
	if rep.AltitudeDeviation != 0 || rep.SpeedDeviation != 0 {
		t.Errorf("deviations %g / %g with identical models", rep.AltitudeDeviation, rep.SpeedDeviation)
	}
	if rep.PerformanceDegradation == nil {
		t.Error("performance comparison missing")
	}
}

func TestRunComparison_WingDamageDiverges(t *testing.T) {
	s := shortScenario("wing-damage")

	rep, err := s.RunComparison(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if rep.AltitudeDeviation == 0 && rep.SpeedDeviation == 0 {
		t.Error("degraded lift produced no trajectory deviation")
	}
}

func TestRunComparison_FailurePropagates(t *testing.T) {
	s := shortScenario("undamaged")
	s.Aircraft.Mass = -1

	_, err := s.RunComparison(context.Background(), zerolog.Nop())
	if !errors.Is(err, dynamo.ErrInvalidInitialState) {
		t.Fatalf("got %v, want ErrInvalidInitialState", err)
	}
}

func TestRunReferenceAndDamagedSeparately(t *testing.T) {
	s := shortScenario("ballistic")

	ref, err := s.RunReference(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	dam, err := s.RunDamaged(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ref.Len() != dam.Len() {
		t.Errorf("lengths differ: %d vs %d", ref.Len(), dam.Len())
	}
	// Ballistic preset has no aero on either side.
	if ref.Final() != dam.Final() {
		t.Error("identical ballistic conditions diverged")
	}
}

func TestStaticReport(t *testing.T) {
	s := shortScenario("tail-damage")
	rep := s.Static()

	if !rep.Reference.LongitudinalStable {
		t.Error("reference model should be longitudinally stable")
	}
	// Tail damage weakens pitch stiffness but does not flip its sign.
	if !rep.Damaged.LongitudinalStable {
		t.Error("tail-damage model flipped CM_alpha sign")
	}
	if rep.Damaged.StaticMargin >= rep.Reference.StaticMargin {
		t.Errorf("damaged static margin %g not below reference %g",
			rep.Damaged.StaticMargin, rep.Reference.StaticMargin)
	}
	if rep.Envelope != (flight.Envelope{}) && rep.Envelope.SpeedMax <= rep.Envelope.SpeedMin {
		t.Errorf("envelope malformed: %+v", rep.Envelope)
	}
}
