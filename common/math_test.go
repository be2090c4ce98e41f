package common

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside range", 1, 1},
		{"full turn", TwoPi, 0},
		{"negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"several turns", 5*TwoPi + 0.25, 0.25},
		{"tiny negative", -1e-18, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(-1), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapAngle(tc.in)
			if got < 0 || got >= TwoPi {
				t.Fatalf("WrapAngle(%v) = %v, outside [0, 2π)", tc.in, got)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("WrapAngle(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAngleDelta(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0.5, 0.5},
		{0.5, 0, -0.5},
		{TwoPi - 0.1, 0.1, 0.2},
		{0.1, TwoPi - 0.1, -0.2},
		{0, math.Pi, math.Pi},
	}

	for _, tc := range tests {
		if got := AngleDelta(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("AngleDelta(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Fatalf("endpoints: got %v and %v", EaseOutCubic(0), EaseOutCubic(1))
	}
	if EaseOutCubic(-3) != 0 || EaseOutCubic(7) != 1 {
		t.Fatalf("out-of-range input was not clamped")
	}
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 1e-12 {
		t.Fatalf("EaseOutCubic(0.5) = %v, want 0.875", got)
	}

	prev := 0.0
	for i := 1; i <= 100; i++ {
		cur := EaseOutCubic(float64(i) / 100)
		if cur < prev {
			t.Fatalf("not monotone at %d: %v < %v", i, cur, prev)
		}
		prev = cur
	}
}

func TestDegreeConversions(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Fatalf("RadToDeg(π/2) = %v", got)
	}
}

func TestClampAndCoalesce(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatalf("Clamp returned unexpected values")
	}
	if got := Coalesce("", "", "x", "y"); got != "x" {
		t.Fatalf("Coalesce = %q, want x", got)
	}
}

func TestStructToBytes(t *testing.T) {
	v := struct {
		A float32
		B uint32
	}{A: 1, B: 7}
	b := StructToBytes(&v)
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(b))
	}
}
