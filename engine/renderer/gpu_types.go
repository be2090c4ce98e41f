package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
)

// MaxMarkers is the number of marker slots in the uniform buffer.
const MaxMarkers = 64

// GlobeUniforms is the CPU-side mirror of the Globe uniform struct in globe.wgsl.
// Field order and sizes must match the shader exactly.
type GlobeUniforms struct {
	Phi         float32
	Theta       float32
	Scale       float32
	MarkerCount uint32

	Dark          float32
	Diffuse       float32
	MapBrightness float32
	_             float32

	BaseColor   [4]float32
	MarkerColor [4]float32
	GlowColor   [4]float32

	// Markers holds the unit sphere position in xyz and the marker size in w.
	Markers [MaxMarkers][4]float32
}

// Style holds the visual parameters of the globe that do not change per frame.
type Style struct {
	Dark          float32
	Diffuse       float32
	MapBrightness float32
	BaseColor     common.Color
	MarkerColor   common.Color
	GlowColor     common.Color
	ClearColor    common.Color
}

// DefaultStyle is a light globe with orange markers on a white page.
var DefaultStyle = Style{
	Dark:          0,
	Diffuse:       0.4,
	MapBrightness: 1.2,
	BaseColor:     common.Color{1, 1, 1},
	MarkerColor:   common.Color{251.0 / 255, 100.0 / 255, 21.0 / 255},
	GlowColor:     common.Color{1, 1, 1},
	ClearColor:    common.Color{1, 1, 1},
}

func rgba(c common.Color) [4]float32 {
	return [4]float32{c[0], c[1], c[2], 1}
}

// markerPosition returns the unit vector of a lat/lng pair in the shader's globe space
// (+y north, lng 0 facing +z).
func markerPosition(m common.Marker) [3]float32 {
	lat := common.DegToRad(m.Location.Lat)
	lng := common.DegToRad(m.Location.Lng)
	return [3]float32{
		float32(math.Cos(lat) * math.Sin(lng)),
		float32(math.Sin(lat)),
		float32(math.Cos(lat) * math.Cos(lng)),
	}
}

// NewGlobeUniforms packs a frame snapshot and a style into the uniform layout.
// Markers beyond MaxMarkers are dropped.
//
// Parameters:
//   - frame: the globe state to draw
//   - style: the visual parameters
//
// Returns:
//   - GlobeUniforms: the packed uniform block
func NewGlobeUniforms(frame globe.Frame, style Style) GlobeUniforms {
	u := GlobeUniforms{
		Phi:           float32(common.WrapAngle(frame.Orientation.Phi)),
		Theta:         float32(frame.Orientation.Theta),
		Scale:         float32(frame.Scale),
		Dark:          style.Dark,
		Diffuse:       style.Diffuse,
		MapBrightness: style.MapBrightness,
		BaseColor:     rgba(style.BaseColor),
		MarkerColor:   rgba(style.MarkerColor),
		GlowColor:     rgba(style.GlowColor),
	}
	if u.Scale <= 0 {
		u.Scale = 1
	}

	n := min(len(frame.Markers), MaxMarkers)
	for i := 0; i < n; i++ {
		pos := markerPosition(frame.Markers[i])
		u.Markers[i] = [4]float32{pos[0], pos[1], pos[2], float32(frame.Markers[i].Size)}
	}
	u.MarkerCount = uint32(n)
	return u
}
