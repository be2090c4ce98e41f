package animator

import "time"

const (
	// DefaultZoomFrom is the resting globe scale.
	DefaultZoomFrom = 1.0

	// DefaultZoomTo is the scale reached after a search.
	DefaultZoomTo = 1.4

	// DefaultZoomDuration is the length of the search zoom ramp.
	DefaultZoomDuration = 1500 * time.Millisecond
)

// ScaleAnimatorOption is a functional option for configuring a ScaleAnimator.
type ScaleAnimatorOption func(*scaleAnimatorImpl)

// WithClock replaces the wall clock used by StartNow and Now.
//
// Parameters:
//   - clock: function returning the current time; nil is ignored
//
// Returns:
//   - ScaleAnimatorOption: functional option to set the clock
func WithClock(clock func() time.Time) ScaleAnimatorOption {
	return func(a *scaleAnimatorImpl) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// NewZoomAnimator creates the default search zoom ramp (1.0 -> 1.4 over 1.5s).
func NewZoomAnimator(options ...ScaleAnimatorOption) ScaleAnimator {
	return NewScaleAnimator(DefaultZoomFrom, DefaultZoomTo, DefaultZoomDuration, options...)
}
