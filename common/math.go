package common

import (
	"cmp"
	"math"
	"unsafe"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// DegToRad converts an angle in degrees to radians.
//
// Parameters:
//   - deg: angle in degrees
//
// Returns:
//   - float64: angle in radians
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// RadToDeg converts an angle in radians to degrees.
//
// Parameters:
//   - rad: angle in radians
//
// Returns:
//   - float64: angle in degrees
func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

// WrapAngle normalizes an angle into the half-open range [0, 2π).
// Non-finite input maps to 0 so a bad value can never poison accumulated rotation.
//
// Parameters:
//   - a: angle in radians, any magnitude
//
// Returns:
//   - float64: equivalent angle in [0, 2π)
func WrapAngle(a float64) float64 {
	if !IsFinite(a) {
		return 0
	}
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDelta returns the signed shortest rotation from a to b, in (-π, π].
//
// Parameters:
//   - a: start angle in radians
//   - b: end angle in radians
//
// Returns:
//   - float64: signed difference in radians
func AngleDelta(a, b float64) float64 {
	d := WrapAngle(b - a)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic maps linear progress p in [0, 1] onto a cubic ease-out curve.
// Input outside the unit range is clamped first.
//
// Parameters:
//   - p: linear progress
//
// Returns:
//   - float64: eased progress, 0 at p=0 and exactly 1 at p=1
func EaseOutCubic(p float64) float64 {
	p = Clamp(p, 0, 1)
	inv := 1 - p
	return 1 - inv*inv*inv
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory and shares its storage.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
