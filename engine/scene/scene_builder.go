package scene

import "github.com/Carmen-Shannon/oxy-globe/engine/animator"

// SceneBuilderOption is a functional option for configuring a Scene.
type SceneBuilderOption func(*scene)

// WithActive sets whether the scene is drawn from the start.
//
// Parameters:
//   - active: true to draw the scene immediately
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithScaleAnimator attaches the animator that drives the globe's scale while started.
//
// Parameters:
//   - a: the zoom animator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithScaleAnimator(a animator.ScaleAnimator) SceneBuilderOption {
	return func(s *scene) {
		s.zoom = a
	}
}
