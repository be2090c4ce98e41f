package weather

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// DefaultMarkerSize is used for GeoJSON points that carry no "size" property.
const DefaultMarkerSize = 0.05

// ParseMarkers reads globe markers from a GeoJSON FeatureCollection.
// Only Point features are used. A numeric "size" property overrides DefaultMarkerSize.
//
// Parameters:
//   - data: the raw GeoJSON document
//
// Returns:
//   - []common.Marker: the markers in document order
//   - error: a decoding error, or an error naming the first feature with invalid coordinates or size
func ParseMarkers(data []byte) ([]common.Marker, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse marker collection: %w", err)
	}

	markers := make([]common.Marker, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		loc := common.LatLng{Lat: p.Lat(), Lng: p.Lon()}
		if !s2.LatLngFromDegrees(loc.Lat, loc.Lng).IsValid() {
			return nil, fmt.Errorf("feature %d: coordinates (%v, %v) out of range", i, loc.Lat, loc.Lng)
		}

		size := DefaultMarkerSize
		if raw, present := f.Properties["size"]; present {
			v, ok := raw.(float64)
			if !ok || !common.IsFinite(v) || v <= 0 {
				return nil, fmt.Errorf("feature %d: invalid size %v", i, raw)
			}
			size = v
		}
		markers = append(markers, common.Marker{Location: loc, Size: size})
	}
	return markers, nil
}

// LoadMarkersFile reads a GeoJSON marker file from disk.
func LoadMarkersFile(path string) ([]common.Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read marker file: %w", err)
	}
	return ParseMarkers(data)
}

// MarkersGeoJSON encodes markers as a GeoJSON FeatureCollection of points with a "size" property.
func MarkersGeoJSON(markers []common.Marker) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		f := geojson.NewFeature(orb.Point{m.Location.Lng, m.Location.Lat})
		f.Properties["size"] = m.Size
		fc.Append(f)
	}
	return json.Marshal(fc)
}

// CitiesGeoJSON encodes cities as a GeoJSON FeatureCollection of points with a "name" property.
func CitiesGeoJSON(cities []City) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, c := range cities {
		f := geojson.NewFeature(orb.Point{c.Location.Lng, c.Location.Lat})
		f.Properties["name"] = c.Name
		fc.Append(f)
	}
	return json.Marshal(fc)
}
