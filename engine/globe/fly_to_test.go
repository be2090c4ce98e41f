package globe

import (
	"errors"
	"math"
	"testing"
)

func TestAnglesFor(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantLon float64
		wantLat float64
	}{
		{name: "origin", lat: 0, lng: 0, wantLon: 0, wantLat: 0},
		{name: "north pole antimeridian", lat: 90, lng: 180, wantLon: -math.Pi, wantLat: math.Pi / 2},
		{name: "south pole west", lat: -90, lng: -180, wantLon: math.Pi, wantLat: -math.Pi / 2},
		{name: "new york", lat: 40.7128, lng: -74.006, wantLon: 74.006 * math.Pi / 180, wantLat: 40.7128 * math.Pi / 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lon, lat := AnglesFor(tc.lat, tc.lng)
			if math.Abs(lon-tc.wantLon) > 1e-12 || math.Abs(lat-tc.wantLat) > 1e-12 {
				t.Fatalf("AnglesFor(%v, %v) = (%v, %v), want (%v, %v)", tc.lat, tc.lng, lon, lat, tc.wantLon, tc.wantLat)
			}
		})
	}
}

func TestFlyToRequestValidate(t *testing.T) {
	type key struct{ a, b int }
	type boxed struct{ V any }
	type reading struct{ F float64 }

	tests := []struct {
		name    string
		req     FlyToRequest
		wantErr error
	}{
		{name: "valid string token", req: FlyToRequest{Lat: 10, Lng: 20, Token: "paris"}},
		{name: "valid struct token", req: FlyToRequest{Lat: -90, Lng: 180, Token: key{1, 2}}},
		{name: "latitude too high", req: FlyToRequest{Lat: 90.5, Lng: 0, Token: 1}, wantErr: ErrInvalidCoordinates},
		{name: "longitude too low", req: FlyToRequest{Lat: 0, Lng: -181, Token: 1}, wantErr: ErrInvalidCoordinates},
		{name: "NaN latitude", req: FlyToRequest{Lat: math.NaN(), Lng: 0, Token: 1}, wantErr: ErrInvalidCoordinates},
		{name: "infinite longitude", req: FlyToRequest{Lat: 0, Lng: math.Inf(1), Token: 1}, wantErr: ErrInvalidCoordinates},
		{name: "nil token", req: FlyToRequest{Lat: 0, Lng: 0}, wantErr: ErrInvalidToken},
		{name: "NaN token", req: FlyToRequest{Lat: 0, Lng: 0, Token: math.NaN()}, wantErr: ErrInvalidToken},
		{name: "slice token", req: FlyToRequest{Lat: 0, Lng: 0, Token: []string{"x"}}, wantErr: ErrInvalidToken},
		{name: "boxed comparable token", req: FlyToRequest{Lat: 0, Lng: 0, Token: boxed{V: "x"}}},
		{name: "boxed slice token", req: FlyToRequest{Lat: 0, Lng: 0, Token: boxed{V: []int{1}}}, wantErr: ErrInvalidToken},
		{name: "nested NaN token", req: FlyToRequest{Lat: 0, Lng: 0, Token: reading{F: math.NaN()}}, wantErr: ErrInvalidToken},
		{name: "boxed NaN token", req: FlyToRequest{Lat: 0, Lng: 0, Token: boxed{V: math.NaN()}}, wantErr: ErrInvalidToken},
		{name: "NaN array token", req: FlyToRequest{Lat: 0, Lng: 0, Token: [2]float64{1, math.NaN()}}, wantErr: ErrInvalidToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
