package globe

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/golang/geo/s2"
)

var (
	// ErrInvalidCoordinates is returned when a latitude or longitude is non-finite or out of range.
	ErrInvalidCoordinates = errors.New("globe: coordinates out of range")

	// ErrInvalidToken is returned when a fly-to trigger token is nil, not comparable, or NaN.
	ErrInvalidToken = errors.New("globe: invalid trigger token")
)

// FlyToRequest asks the globe to face a geographic location.
// Only a change in Token signals a new request; repeating the same token is ignored even when the
// coordinates differ, and changing the token alone re-triggers for identical coordinates.
type FlyToRequest struct {
	// Lat is the target latitude in degrees, [-90, 90].
	Lat float64 `json:"lat"`
	// Lng is the target longitude in degrees, [-180, 180].
	Lng float64 `json:"lng"`
	// Token is any comparable value. Its change, not its presence, triggers the transition.
	Token any `json:"token"`
}

// Validate checks the request's coordinates and token.
//
// Returns:
//   - error: ErrInvalidCoordinates or ErrInvalidToken (wrapped with detail), or nil
func (r FlyToRequest) Validate() error {
	if !s2.LatLngFromDegrees(r.Lat, r.Lng).IsValid() {
		return fmt.Errorf("%w: lat=%v lng=%v", ErrInvalidCoordinates, r.Lat, r.Lng)
	}
	return validateToken(r.Token)
}

// validateToken rejects tokens that cannot be compared reliably against the previous one.
// Comparability is checked on the dynamic value so interface fields holding slices or maps are
// caught. A token containing NaN at any depth never equals itself and would re-trigger on every
// evaluation.
func validateToken(token any) error {
	if token == nil {
		return fmt.Errorf("%w: nil", ErrInvalidToken)
	}
	if !reflect.ValueOf(token).Comparable() {
		return fmt.Errorf("%w: %T is not comparable", ErrInvalidToken, token)
	}
	if token != token {
		return fmt.Errorf("%w: %v does not equal itself", ErrInvalidToken, token)
	}
	return nil
}
