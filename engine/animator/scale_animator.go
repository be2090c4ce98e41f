package animator

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// ScaleAnimator drives a time-based cubic ease-out ramp between two scale values.
//
// The animator is idle until Start is called. Sampling before Start returns the start value.
// All methods are safe for concurrent use.
type ScaleAnimator interface {
	// Start begins (or restarts) the ramp at the given instant.
	//
	// Parameters:
	//   - now: the instant the ramp starts
	Start(now time.Time)

	// StartNow begins the ramp at the animator's clock time.
	StartNow()

	// Sample returns the eased scale at the given instant.
	// Elapsed time <= 0 yields From; elapsed >= Duration yields To exactly.
	//
	// Parameters:
	//   - now: the instant to sample at
	//
	// Returns:
	//   - float64: the scale value
	Sample(now time.Time) float64

	// Progress returns the linear progress of the ramp in [0, 1].
	//
	// Parameters:
	//   - now: the instant to evaluate
	//
	// Returns:
	//   - float64: 0 before or at start, 1 at or after completion
	Progress(now time.Time) float64

	// Done reports whether a started ramp has reached its end value.
	//
	// Parameters:
	//   - now: the instant to evaluate
	//
	// Returns:
	//   - bool: true if started and elapsed >= Duration
	Done(now time.Time) bool

	// Running reports whether the ramp has been started and has not yet completed.
	Running(now time.Time) bool

	// Reset returns the animator to idle so Sample yields From again.
	Reset()

	// From returns the start value.
	From() float64

	// To returns the end value.
	To() float64

	// Duration returns the ramp length.
	Duration() time.Duration

	// Now returns the animator's clock time.
	Now() time.Time
}

type scaleAnimatorImpl struct {
	mu *sync.Mutex

	from     float64
	to       float64
	duration time.Duration

	started bool
	start   time.Time

	clock func() time.Time
}

var _ ScaleAnimator = &scaleAnimatorImpl{}

// NewScaleAnimator creates an idle animator ramping from -> to over duration.
// A non-positive duration makes the ramp complete the instant it starts.
//
// Parameters:
//   - from: start scale
//   - to: end scale
//   - duration: ramp length
//   - options: functional options to configure the animator
//
// Returns:
//   - ScaleAnimator: the newly created animator
func NewScaleAnimator(from, to float64, duration time.Duration, options ...ScaleAnimatorOption) ScaleAnimator {
	a := &scaleAnimatorImpl{
		mu:       &sync.Mutex{},
		from:     from,
		to:       to,
		duration: max(duration, 0),
		clock:    time.Now,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// progress computes linear progress. Caller must hold the mutex.
func (a *scaleAnimatorImpl) progress(now time.Time) float64 {
	if !a.started {
		return 0
	}
	elapsed := now.Sub(a.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= a.duration {
		return 1
	}
	return float64(elapsed) / float64(a.duration)
}

func (a *scaleAnimatorImpl) Start(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started = true
	a.start = now
}

func (a *scaleAnimatorImpl) StartNow() {
	a.Start(a.clock())
}

func (a *scaleAnimatorImpl) Sample(now time.Time) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.progress(now)
	switch p {
	case 0:
		return a.from
	case 1:
		return a.to
	}
	return common.Lerp(a.from, a.to, common.EaseOutCubic(p))
}

func (a *scaleAnimatorImpl) Progress(now time.Time) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress(now)
}

func (a *scaleAnimatorImpl) Done(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started && a.progress(now) == 1
}

func (a *scaleAnimatorImpl) Running(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started && a.progress(now) < 1
}

func (a *scaleAnimatorImpl) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started = false
	a.start = time.Time{}
}

func (a *scaleAnimatorImpl) From() float64 { return a.from }

func (a *scaleAnimatorImpl) To() float64 { return a.to }

func (a *scaleAnimatorImpl) Duration() time.Duration { return a.duration }

func (a *scaleAnimatorImpl) Now() time.Time { return a.clock() }
