package globe

import (
	"math"
	"testing"
	"time"
)

const frame = time.Second / 60

func TestDefaultSpringIsAtLeastCriticallyDamped(t *testing.T) {
	if z := DefaultSpringConfig.DampingRatio(); z < 1 {
		t.Fatalf("default damping ratio %.3f < 1, spring would oscillate", z)
	}
}

func TestSpringApproachesTargetWithoutOvershoot(t *testing.T) {
	s := NewSpring(DefaultSpringConfig)
	s.SetTarget(1)

	prev := s.Value()
	for i := 0; i < 600; i++ {
		s.Step(frame)
		if s.Value() > 1+1e-9 {
			t.Fatalf("frame %d: value %.9f overshot target", i, s.Value())
		}
		if s.Value() < prev-1e-12 {
			t.Fatalf("frame %d: value moved away from target (%.9f -> %.9f)", i, prev, s.Value())
		}
		prev = s.Value()
	}
	if !s.Settled(1e-6) {
		t.Fatalf("spring not settled after 10s: value=%v velocity=%v", s.Value(), s.Velocity())
	}
}

func TestSpringStepIsStableForLongFrames(t *testing.T) {
	s := NewSpring(DefaultSpringConfig)
	s.SetTarget(-2)
	s.Step(5 * time.Second)
	if math.IsNaN(s.Value()) || math.Abs(s.Value()+2) > 1e-3 {
		t.Fatalf("expected value near -2 after one long step, got %v", s.Value())
	}
}

func TestSpringSnapAndRebase(t *testing.T) {
	s := NewSpring(DefaultSpringConfig)
	s.SetTarget(3)
	s.Step(100 * time.Millisecond)

	v, vel := s.Value(), s.Velocity()
	s.Rebase(-3)
	if s.Target() != 0 || math.Abs(s.Value()-(v-3)) > 1e-12 || s.Velocity() != vel {
		t.Fatalf("rebase changed relative motion: target=%v value=%v velocity=%v", s.Target(), s.Value(), s.Velocity())
	}

	s.Snap(0)
	if s.Value() != 0 || s.Target() != 0 || s.Velocity() != 0 {
		t.Fatalf("snap left residual state: %+v", s)
	}
}

func TestSpringIgnoresNonFiniteTarget(t *testing.T) {
	s := NewSpring(DefaultSpringConfig)
	s.SetTarget(math.NaN())
	s.SetTarget(math.Inf(1))
	if s.Target() != 0 {
		t.Fatalf("expected target to stay 0, got %v", s.Target())
	}
}
