package profiler

import (
	"testing"
	"time"
)

func TestProfilerReportsFPSPerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithLogging(false))

	for i := 0; i < 49; i++ {
		now = now.Add(20 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("window completed early at frame %d", i)
		}
	}
	now = now.Add(20 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("expected the window to complete after one second")
	}

	if fps := p.Last().FPS; fps != 50 {
		t.Fatalf("FPS = %v, want 50", fps)
	}
	if p.Last().SysMB <= 0 {
		t.Fatalf("expected memory statistics to be populated")
	}
}

func TestProfilerCustomInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }), WithInterval(250*time.Millisecond), WithLogging(false))

	now = now.Add(100 * time.Millisecond)
	if p.Tick() {
		t.Fatalf("window completed before interval")
	}
	now = now.Add(150 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("expected window at 250ms")
	}
	if fps := p.Last().FPS; fps != 8 {
		t.Fatalf("FPS = %v, want 8", fps)
	}
}
