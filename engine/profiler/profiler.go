package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting window's worth of frame and memory statistics.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for the render loop.
// Outputs stats to the log at a configurable interval. Not safe for concurrent use; call Tick
// from the render goroutine only.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last    Stats
	clock   func() time.Time
	logging bool
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are computed and logged.
//
// Parameters:
//   - interval: reporting window; non-positive values are ignored
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces the wall clock.
//
// Parameters:
//   - clock: function returning the current time
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(clock func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogging toggles the periodic log line. Stats are still collected when disabled.
//
// Parameters:
//   - enabled: true to log each window's stats
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogging(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}

// NewProfiler creates a new Profiler. The interval defaults to 1 second and logging is on.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		clock:          time.Now,
		logging:        true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock()
	return p
}

// Tick should be called once per rendered frame.
// Computes statistics when the update interval has elapsed and logs them if logging is enabled.
//
// Returns:
//   - bool: true if a new Stats window was completed this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := p.clock()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		GCCount:     p.memStats.NumGC,
	}

	if gcCount := s.GCCount; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if p.logging {
		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	}

	p.last = s
	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently completed statistics window.
//
// Returns:
//   - Stats: zero until the first window completes
func (p *Profiler) Last() Stats {
	return p.last
}
