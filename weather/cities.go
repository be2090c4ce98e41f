package weather

import (
	"math/rand/v2"
	"strings"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"golang.org/x/text/cases"
)

// City is a named landing spot for the prediction fly-to.
type City struct {
	Name     string        `json:"name" yaml:"name"`
	Location common.LatLng `json:"location" yaml:"location"`
}

// DefaultCities are the showcase cities the globe flies to after a search.
var DefaultCities = []City{
	{Name: "Manila", Location: common.LatLng{Lat: 14.5995, Lng: 120.9842}},
	{Name: "Mumbai", Location: common.LatLng{Lat: 19.076, Lng: 72.8777}},
	{Name: "Dhaka", Location: common.LatLng{Lat: 23.8103, Lng: 90.4125}},
	{Name: "Cairo", Location: common.LatLng{Lat: 30.0444, Lng: 31.2357}},
	{Name: "Beijing", Location: common.LatLng{Lat: 39.9042, Lng: 116.4074}},
	{Name: "Sao Paulo", Location: common.LatLng{Lat: -23.5505, Lng: -46.6333}},
	{Name: "Mexico City", Location: common.LatLng{Lat: 19.4326, Lng: -99.1332}},
	{Name: "New York", Location: common.LatLng{Lat: 40.7128, Lng: -74.006}},
	{Name: "Osaka", Location: common.LatLng{Lat: 34.6937, Lng: 135.5022}},
	{Name: "Istanbul", Location: common.LatLng{Lat: 41.0082, Lng: 28.9784}},
}

// LookupCity finds a city by name, ignoring case and surrounding whitespace.
func LookupCity(cities []City, name string) (City, bool) {
	fold := cases.Fold()
	key := fold.String(strings.TrimSpace(name))
	if key == "" {
		return City{}, false
	}
	for _, c := range cities {
		if fold.String(c.Name) == key {
			return c, true
		}
	}
	return City{}, false
}

// RandomCity picks one city uniformly. It returns false for an empty list.
// A nil rng uses the package-level source.
func RandomCity(cities []City, rng *rand.Rand) (City, bool) {
	if len(cities) == 0 {
		return City{}, false
	}
	if rng == nil {
		return cities[rand.IntN(len(cities))], true
	}
	return cities[rng.IntN(len(cities))], true
}

// CityMarkers converts cities into globe markers of a uniform size.
func CityMarkers(cities []City, size float64) []common.Marker {
	markers := make([]common.Marker, 0, len(cities))
	for _, c := range cities {
		markers = append(markers, common.Marker{Location: c.Location, Size: size})
	}
	return markers
}
