package globe

import (
	"log"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/golang/geo/s2"
)

const (
	// DefaultLatitude is the initial tilt toward the viewer in radians.
	DefaultLatitude = 0.3

	// DefaultSpinSpeed is the auto-spin rate in radians per second (0.005 rad per frame at 60 Hz).
	DefaultSpinSpeed = 0.3

	// DefaultMovementDamping is the number of drag pixels per radian of rotation.
	DefaultMovementDamping = 1400.0
)

// GlobeBuilderOption is a functional option for configuring a Globe.
type GlobeBuilderOption func(*globeImpl)

// WithInitialRotation sets the starting base orientation.
//
// Parameters:
//   - longitude: initial longitude angle in radians (wrapped into [0, 2π))
//   - latitude: initial latitude angle in radians
//
// Returns:
//   - GlobeBuilderOption: functional option to set the rotation
func WithInitialRotation(longitude, latitude float64) GlobeBuilderOption {
	return func(g *globeImpl) {
		if !common.IsFinite(longitude) || !common.IsFinite(latitude) {
			return
		}
		g.rotation = RotationState{Longitude: longitude, Latitude: latitude}
	}
}

// WithSpinSpeed sets the auto-spin rate.
//
// Parameters:
//   - radiansPerSecond: rotation rate; must be > 0, other values are ignored
//
// Returns:
//   - GlobeBuilderOption: functional option to set the spin speed
func WithSpinSpeed(radiansPerSecond float64) GlobeBuilderOption {
	return func(g *globeImpl) {
		if common.IsFinite(radiansPerSecond) && radiansPerSecond > 0 {
			g.spinSpeed = radiansPerSecond
		}
	}
}

// WithMovementDamping sets how many pixels of drag produce one radian of rotation.
// Larger values limit the maximum rotation speed per pixel.
//
// Parameters:
//   - pixelsPerRadian: divisor applied to pointer deltas; must be > 0
//
// Returns:
//   - GlobeBuilderOption: functional option to set the movement damping
func WithMovementDamping(pixelsPerRadian float64) GlobeBuilderOption {
	return func(g *globeImpl) {
		if common.IsFinite(pixelsPerRadian) && pixelsPerRadian > 0 {
			g.movementDamping = pixelsPerRadian
		}
	}
}

// WithSpring sets the drag springs' physical parameters.
// Configurations with a damping ratio below 1 are rejected because they visibly oscillate.
//
// Parameters:
//   - cfg: mass, stiffness and damping
//
// Returns:
//   - GlobeBuilderOption: functional option to set the spring configuration
func WithSpring(cfg SpringConfig) GlobeBuilderOption {
	return func(g *globeImpl) {
		if cfg.Mass <= 0 || cfg.Stiffness <= 0 {
			log.Printf("[Globe] ignoring spring config with non-positive mass or stiffness: %+v", cfg)
			return
		}
		if cfg.DampingRatio() < 1 {
			log.Printf("[Globe] ignoring under-damped spring config (ζ=%.2f): %+v", cfg.DampingRatio(), cfg)
			return
		}
		g.springConfig = cfg
	}
}

// WithScale sets the initial visual scale factor. Non-positive values are ignored.
//
// Parameters:
//   - scale: positive scale factor
//
// Returns:
//   - GlobeBuilderOption: functional option to set the scale
func WithScale(scale float64) GlobeBuilderOption {
	return func(g *globeImpl) {
		if common.IsFinite(scale) && scale > 0 {
			g.scale = scale
		}
	}
}

// WithMarkers sets the marker list shown on the sphere. Markers with invalid coordinates or a
// non-positive size are dropped and logged.
//
// Parameters:
//   - markers: markers in draw order
//
// Returns:
//   - GlobeBuilderOption: functional option to set the markers
func WithMarkers(markers []common.Marker) GlobeBuilderOption {
	return func(g *globeImpl) {
		g.markers = g.markers[:0]
		for _, m := range markers {
			if !s2.LatLngFromDegrees(m.Location.Lat, m.Location.Lng).IsValid() || !(m.Size > 0) {
				log.Printf("[Globe] dropping invalid marker %+v", m)
				continue
			}
			g.markers = append(g.markers, m)
		}
	}
}
