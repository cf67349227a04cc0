package dynamo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1 {
		t.Error("clone aliases the original")
	}
	if len(c) != len(s) {
		t.Errorf("clone length %d, want %d", len(c), len(s))
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{0, -1.5, 1e300}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{0, math.NaN()}).IsValid() {
		t.Error("NaN not detected")
	}
	if (State{math.Inf(-1), 0}).IsValid() {
		t.Error("-Inf not detected")
	}
	if !(State{}).IsValid() {
		t.Error("empty state should be trivially valid")
	}
}

func TestStateNorm(t *testing.T) {
	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("norm = %g, want 5", got)
	}
	if got := (State{}).Norm(); got != 0 {
		t.Errorf("empty norm = %g, want 0", got)
	}
}

func TestStatePool(t *testing.T) {
	p := NewStatePool(4)

	s := p.Get()
	if len(s) != 4 {
		t.Fatalf("pooled state has dimension %d, want 4", len(s))
	}

	s[0], s[3] = 7, -2
	p.Put(s)

	again := p.Get()
	for i, v := range again {
		if v != 0 {
			t.Errorf("recycled state not zeroed at %d: %g", i, v)
		}
	}

	// Wrong-size vectors must not poison the pool.
	p.Put(State{1, 2})
	if got := p.Get(); len(got) != 4 {
		t.Errorf("pool returned dimension %d after bad Put", len(got))
	}
}

func TestSimulationErrorUnwrap(t *testing.T) {
	err := &SimulationError{Step: 42, Time: 1.5, Wrapped: ErrDivergence}

	if !errors.Is(err, ErrDivergence) {
		t.Error("wrapped kind not reachable through errors.Is")
	}
	if errors.Is(err, ErrSingularKinematics) {
		t.Error("matches a kind it does not wrap")
	}

	msg := err.Error()
	if !strings.Contains(msg, "divergence") || !strings.Contains(msg, "1.5") {
		t.Errorf("message %q missing kind or time", msg)
	}
}
