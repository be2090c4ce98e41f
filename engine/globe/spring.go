package globe

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// maxSpringStep bounds a single integration step. Larger frame deltas are split into sub-steps so a
// long frame (window drag, breakpoint) cannot destabilise the integrator.
const maxSpringStep = time.Second / 240

// SpringConfig holds the physical parameters of a damped second-order spring.
type SpringConfig struct {
	// Mass of the simulated body. Must be > 0.
	Mass float64
	// Stiffness is the spring constant pulling the value toward its target.
	Stiffness float64
	// Damping is the velocity-proportional friction coefficient.
	Damping float64
}

// DefaultSpringConfig is over-damped (ζ = 1.5) so the offset settles without visible oscillation.
var DefaultSpringConfig = SpringConfig{Mass: 1, Stiffness: 100, Damping: 30}

// DampingRatio returns ζ = c / (2·sqrt(k·m)). Values >= 1 never overshoot.
//
// Returns:
//   - float64: the damping ratio, or +Inf when mass or stiffness is not positive
func (c SpringConfig) DampingRatio() float64 {
	if c.Mass <= 0 || c.Stiffness <= 0 {
		return math.Inf(1)
	}
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Spring is a damped second-order filter that turns a discrete target into continuous motion.
// The zero value is not usable; construct one with NewSpring.
type Spring struct {
	cfg      SpringConfig
	value    float64
	velocity float64
	target   float64
}

// NewSpring creates a spring resting at zero with the given configuration.
// A non-positive mass falls back to 1.
//
// Parameters:
//   - cfg: the spring's physical parameters
//
// Returns:
//   - *Spring: the spring at rest
func NewSpring(cfg SpringConfig) *Spring {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	return &Spring{cfg: cfg}
}

// Config returns the spring's physical parameters.
func (s *Spring) Config() SpringConfig { return s.cfg }

// Value returns the current smoothed value.
func (s *Spring) Value() float64 { return s.value }

// Velocity returns the current rate of change of the value.
func (s *Spring) Velocity() float64 { return s.velocity }

// Target returns the value the spring is converging toward.
func (s *Spring) Target() float64 { return s.target }

// SetTarget moves the spring's rest point. The value follows over subsequent Step calls.
// Non-finite targets are ignored.
func (s *Spring) SetTarget(target float64) {
	if !common.IsFinite(target) {
		return
	}
	s.target = target
}

// Snap jumps the spring to v with no residual momentum.
func (s *Spring) Snap(v float64) {
	s.value = v
	s.target = v
	s.velocity = 0
}

// Rebase shifts value and target by the same amount, leaving velocity and the relative motion intact.
func (s *Spring) Rebase(delta float64) {
	s.value += delta
	s.target += delta
}

// Step integrates the spring forward by dt using semi-implicit Euler in bounded sub-steps.
//
// Parameters:
//   - dt: elapsed wall-clock time; non-positive values are a no-op
func (s *Spring) Step(dt time.Duration) {
	for dt > 0 {
		h := min(dt, maxSpringStep)
		dt -= h
		sec := h.Seconds()

		force := -s.cfg.Stiffness*(s.value-s.target) - s.cfg.Damping*s.velocity
		s.velocity += force / s.cfg.Mass * sec
		s.value += s.velocity * sec
	}
}

// Settled reports whether the spring is within eps of its target and nearly at rest.
//
// Parameters:
//   - eps: tolerance applied to both displacement and velocity
//
// Returns:
//   - bool: true once the spring has converged
func (s *Spring) Settled(eps float64) bool {
	return math.Abs(s.value-s.target) <= eps && math.Abs(s.velocity) <= eps
}
