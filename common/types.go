// Package common contains small value types and helpers shared across the globe engine. They are plain structs,
// not interface-wrapped, and carry no behaviour beyond simple accessors.
package common

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	// Lat is the latitude in degrees, valid range [-90, 90].
	Lat float64 `json:"lat" yaml:"lat"`
	// Lng is the longitude in degrees, valid range [-180, 180].
	Lng float64 `json:"lng" yaml:"lng"`
}

// Marker is a highlighted location drawn on the sphere surface.
// Markers are supplied once at initialization and are not mutated afterwards.
type Marker struct {
	// Location is the marker's position on the globe.
	Location LatLng `json:"location" yaml:"location"`
	// Size is the marker radius as a fraction of the globe radius.
	Size float64 `json:"size" yaml:"size"`
}

// Color is a linear RGB color with components in [0, 1].
type Color [3]float32

// DefaultMarkers is the marker set shown when no marker file is configured.
// It mirrors the showcase cities used by the prediction flow.
var DefaultMarkers = []Marker{
	{Location: LatLng{Lat: 14.5995, Lng: 120.9842}, Size: 0.03},
	{Location: LatLng{Lat: 19.076, Lng: 72.8777}, Size: 0.1},
	{Location: LatLng{Lat: 23.8103, Lng: 90.4125}, Size: 0.05},
	{Location: LatLng{Lat: 30.0444, Lng: 31.2357}, Size: 0.07},
	{Location: LatLng{Lat: 39.9042, Lng: 116.4074}, Size: 0.08},
	{Location: LatLng{Lat: -23.5505, Lng: -46.6333}, Size: 0.1},
	{Location: LatLng{Lat: 19.4326, Lng: -99.1332}, Size: 0.1},
	{Location: LatLng{Lat: 40.7128, Lng: -74.006}, Size: 0.1},
	{Location: LatLng{Lat: 34.6937, Lng: 135.5022}, Size: 0.05},
	{Location: LatLng{Lat: 41.0082, Lng: 28.9784}, Size: 0.06},
}
