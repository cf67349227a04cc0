package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/postflight/internal/dynamo"
)

func TestNewByName(t *testing.T) {
	for _, name := range []string{"", "rk45", "rk4", "euler"} {
		integ, err := New(name)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
		if integ == nil {
			t.Errorf("New(%q) returned nil", name)
		}
	}

	if _, err := New("rk2"); err == nil {
		t.Error("unknown scheme accepted")
	}
}

func TestNewDefaultsToAdaptive(t *testing.T) {
	integ, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := integ.(*RK45); !ok {
		t.Errorf("empty name gave %T, want *RK45", integ)
	}
}

func TestFixed_NeverRejectsStep(t *testing.T) {
	// The adapter must take the offered step verbatim even under
	// tolerances an adaptive scheme could not meet.
	sys := &harmonicOscillator{omega: 10}
	integ := NewFixed(NewRK4())

	x := dynamo.State{1, 0}
	next, used, dtNext, err := integ.StepAdaptive(sys, x, 0, 0.5, 1e-14, 1e-16, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	if used != 0.5 || dtNext != 0.5 {
		t.Errorf("used=%g next=%g, want the offered 0.5", used, dtNext)
	}
	if want := NewRK4().Step(sys, x, 0, 0.5); next[0] != want[0] || next[1] != want[1] {
		t.Error("adapter result differs from the wrapped scheme")
	}
}

func TestFixed_MatchesUnderlyingAccuracy(t *testing.T) {
	sys := &harmonicOscillator{omega: 1}
	integ, err := New("euler")
	if err != nil {
		t.Fatal(err)
	}

	x := dynamo.State{1, 0}
	dt := 0.01
	tNow := 0.0
	for i := 0; i < 100; i++ {
		next, used, _, err := integ.StepAdaptive(sys, x, tNow, dt, 1e-6, 1e-9, 1e-12)
		if err != nil {
			t.Fatal(err)
		}
		x = next
		tNow += used
	}

	// First-order scheme: coarse but bounded error over one second.
	if diff := math.Abs(x[0] - math.Cos(tNow)); diff > 0.01 {
		t.Errorf("euler error %g after 1 s, expected below 0.01", diff)
	}
}
