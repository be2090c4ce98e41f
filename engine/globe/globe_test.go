package globe

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

func advanceFrames(g Globe, n int) {
	for i := 0; i < n; i++ {
		g.Advance(frame)
	}
}

func TestNewGlobeDefaults(t *testing.T) {
	g := NewGlobe()

	if g.Mode() != ModeAutoSpin || !g.AutoSpinEnabled() {
		t.Fatalf("expected auto-spin on creation, got mode %v", g.Mode())
	}
	r := g.Rotation()
	if r.Longitude != 0 || r.Latitude != DefaultLatitude {
		t.Fatalf("unexpected initial rotation %+v", r)
	}
	if off := g.DragOffset(); off != (DragOffset{}) {
		t.Fatalf("expected zero drag offset, got %+v", off)
	}
	if g.Scale() != 1 {
		t.Fatalf("expected scale 1, got %v", g.Scale())
	}
}

func TestDragReleaseConvergesToZeroOffset(t *testing.T) {
	g := NewGlobe()

	g.PointerDown(100, 100)
	if g.Mode() != ModeDragging {
		t.Fatalf("expected dragging after pointer down, got %v", g.Mode())
	}
	for i := 0; i < 10; i++ {
		g.PointerMove(100+float64(i)*30, 100+float64(i)*5)
		g.Advance(frame)
	}
	if off := g.DragOffset(); off.DeltaLongitude <= 0 {
		t.Fatalf("expected a positive longitude offset while dragging right, got %+v", off)
	}

	before := g.Orientation()
	g.PointerUp()
	after := g.Orientation()
	if math.Abs(common.AngleDelta(before.Phi, after.Phi)) > 1e-9 || math.Abs(before.Theta-after.Theta) > 1e-9 {
		t.Fatalf("orientation jumped on release: %+v -> %+v", before, after)
	}
	if g.Mode() != ModeAutoSpin {
		t.Fatalf("expected auto-spin after release, got %v", g.Mode())
	}

	const maxFrames = 300
	settled := -1
	for i := 0; i < maxFrames; i++ {
		g.Advance(frame)
		off := g.DragOffset()
		if math.Abs(off.DeltaLongitude) < 1e-4 && math.Abs(off.DeltaLatitude) < 1e-4 {
			settled = i
			break
		}
	}
	if settled < 0 {
		t.Fatalf("drag offset did not converge within %d frames: %+v", maxFrames, g.DragOffset())
	}
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	g := NewGlobe()
	g.PointerDown(0, 0)
	g.PointerLeave()
	if g.Mode() != ModeAutoSpin {
		t.Fatalf("expected auto-spin after pointer leave, got %v", g.Mode())
	}

	// Moves after release must not touch the springs.
	g.PointerMove(500, 500)
	advanceFrames(g, 10)
	if off := g.DragOffset(); off != (DragOffset{}) {
		t.Fatalf("expected no offset from moves after release, got %+v", off)
	}
}

func TestFlyToSetsAnglesAndMode(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantLon float64
		wantLat float64
	}{
		{name: "origin", lat: 0, lng: 0, wantLon: 0, wantLat: 0},
		{name: "north pole antimeridian", lat: 90, lng: 180, wantLon: math.Pi, wantLat: math.Pi / 2},
		{name: "cairo", lat: 30.0444, lng: 31.2357, wantLon: common.WrapAngle(-31.2357 * math.Pi / 180), wantLat: 30.0444 * math.Pi / 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGlobe()
			advanceFrames(g, 30)

			ok, err := g.FlyTo(FlyToRequest{Lat: tc.lat, Lng: tc.lng, Token: tc.name})
			if err != nil || !ok {
				t.Fatalf("FlyTo = (%v, %v), want (true, nil)", ok, err)
			}
			r := g.Rotation()
			if math.Abs(common.AngleDelta(r.Longitude, tc.wantLon)) > 1e-12 || math.Abs(r.Latitude-tc.wantLat) > 1e-12 {
				t.Fatalf("rotation %+v, want lon=%v lat=%v", r, tc.wantLon, tc.wantLat)
			}
			if g.Mode() != ModeFlyingTo || g.AutoSpinEnabled() {
				t.Fatalf("expected FlyingTo with auto-spin disabled, got %v (autoSpin=%v)", g.Mode(), g.AutoSpinEnabled())
			}

			// FlyingTo holds still: no auto-spin.
			advanceFrames(g, 120)
			if got := g.Rotation(); got != r {
				t.Fatalf("rotation drifted while flying-to: %+v -> %+v", r, got)
			}
		})
	}
}

func TestFlyToTokenSemantics(t *testing.T) {
	g := NewGlobe()

	req := FlyToRequest{Lat: 10, Lng: 20, Token: "search-1"}
	if ok, err := g.FlyTo(req); err != nil || !ok {
		t.Fatalf("first request should trigger: (%v, %v)", ok, err)
	}

	// Perturb the state so a re-trigger would be observable.
	g.PointerDown(0, 0)
	g.PointerMove(200, 0)
	advanceFrames(g, 5)
	g.PointerUp()
	advanceFrames(g, 120)
	moved := g.Rotation()

	if ok, err := g.FlyTo(req); err != nil || ok {
		t.Fatalf("unchanged token must not re-trigger: (%v, %v)", ok, err)
	}
	if got := g.Rotation(); got != moved {
		t.Fatalf("unchanged token modified rotation: %+v -> %+v", moved, got)
	}

	req.Token = "search-2"
	if ok, err := g.FlyTo(req); err != nil || !ok {
		t.Fatalf("changed token with same coordinates must re-trigger: (%v, %v)", ok, err)
	}
	wantLon, wantLat := AnglesFor(10, 20)
	if r := g.Rotation(); math.Abs(common.AngleDelta(r.Longitude, wantLon)) > 1e-12 || r.Latitude != wantLat {
		t.Fatalf("re-trigger did not reposition: %+v", r)
	}
}

func TestFlyToRejectsInvalidInputWithoutConsumingToken(t *testing.T) {
	g := NewGlobe()
	before := g.Rotation()

	if _, err := g.FlyTo(FlyToRequest{Lat: 95, Lng: 0, Token: "a"}); !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
	if _, err := g.FlyTo(FlyToRequest{Lat: 0, Lng: 0, Token: math.NaN()}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if g.Rotation() != before || g.Mode() != ModeAutoSpin {
		t.Fatalf("invalid requests changed state: %+v mode=%v", g.Rotation(), g.Mode())
	}

	// The rejected token was not recorded, so a valid request with it still triggers.
	if ok, err := g.FlyTo(FlyToRequest{Lat: 5, Lng: 5, Token: "a"}); err != nil || !ok {
		t.Fatalf("expected trigger after rejected request, got (%v, %v)", ok, err)
	}
}

func TestFlyToRejectsNestedUnstableTokens(t *testing.T) {
	type boxed struct{ V any }
	type reading struct{ F float64 }

	tokens := []struct {
		name  string
		token any
	}{
		{name: "slice behind interface", token: boxed{V: []int{1}}},
		{name: "NaN field", token: reading{F: math.NaN()}},
	}

	for _, tc := range tokens {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGlobe()
			for i := 0; i < 2; i++ {
				ok, err := g.FlyTo(FlyToRequest{Lat: 10, Lng: 20, Token: tc.token})
				if !errors.Is(err, ErrInvalidToken) || ok {
					t.Fatalf("attempt %d: expected ErrInvalidToken without trigger, got (%v, %v)", i, ok, err)
				}
			}
			if g.Mode() != ModeAutoSpin {
				t.Fatalf("rejected tokens changed mode to %v", g.Mode())
			}
		})
	}
}

func TestFlyToCancelsActiveDrag(t *testing.T) {
	g := NewGlobe()
	var cursors []Cursor
	g.SetCursorCallback(func(c Cursor) { cursors = append(cursors, c) })

	g.PointerDown(50, 50)
	g.PointerMove(400, 300)
	advanceFrames(g, 3)

	if ok, err := g.FlyTo(FlyToRequest{Lat: 0, Lng: 0, Token: 1}); err != nil || !ok {
		t.Fatalf("FlyTo during drag = (%v, %v)", ok, err)
	}
	if off := g.DragOffset(); off != (DragOffset{}) {
		t.Fatalf("expected drag offset reset to zero, got %+v", off)
	}
	if g.Mode() != ModeFlyingTo {
		t.Fatalf("expected FlyingTo, got %v", g.Mode())
	}

	// The cancelled drag no longer tracks the pointer and its release changes nothing.
	g.PointerMove(900, 900)
	g.PointerUp()
	advanceFrames(g, 10)
	if off := g.DragOffset(); off != (DragOffset{}) {
		t.Fatalf("cancelled drag still moved the globe: %+v", off)
	}
	if g.Mode() != ModeFlyingTo {
		t.Fatalf("expected FlyingTo to persist, got %v", g.Mode())
	}

	want := []Cursor{CursorGrabbing, CursorGrab}
	if len(cursors) != len(want) || cursors[0] != want[0] || cursors[1] != want[1] {
		t.Fatalf("cursor sequence %v, want %v", cursors, want)
	}
}

func TestDragAfterFlyToReturnsToFlyingTo(t *testing.T) {
	g := NewGlobe()
	if _, err := g.FlyTo(FlyToRequest{Lat: 12, Lng: 34, Token: "x"}); err != nil {
		t.Fatal(err)
	}

	g.PointerDown(0, 0)
	if g.Mode() != ModeDragging {
		t.Fatalf("expected dragging, got %v", g.Mode())
	}
	g.PointerUp()
	if g.Mode() != ModeFlyingTo {
		t.Fatalf("auto-spin must stay disabled after fly-to, got %v", g.Mode())
	}

	g.ResumeAutoSpin()
	if g.Mode() != ModeAutoSpin || !g.AutoSpinEnabled() {
		t.Fatalf("expected auto-spin after resume, got %v", g.Mode())
	}
}

func TestAutoSpinIsMonotonic(t *testing.T) {
	g := NewGlobe()
	prev := g.Rotation().Longitude
	total := 0.0

	// Uneven frame times, long enough to wrap past 2π.
	steps := []time.Duration{frame, 3 * frame, time.Millisecond, 250 * time.Millisecond, frame / 2}
	for i := 0; i < 400; i++ {
		g.Advance(steps[i%len(steps)])
		cur := g.Rotation().Longitude
		if cur < 0 || cur >= common.TwoPi {
			t.Fatalf("longitude %v escaped [0, 2π)", cur)
		}
		d := common.AngleDelta(prev, cur)
		if d <= 0 {
			t.Fatalf("step %d: longitude did not increase (%v -> %v)", i, prev, cur)
		}
		total += d
		prev = cur
	}
	if total <= common.TwoPi {
		t.Fatalf("expected at least one full turn, got %v rad", total)
	}
}

func TestAutoSpinIsFrameRateIndependent(t *testing.T) {
	rates := []int{1, 30, 60, 144, 240}
	var want float64
	for i, hz := range rates {
		g := NewGlobe(WithSpinSpeed(0.5))
		dt := time.Second / time.Duration(hz)
		for n := 0; n < hz; n++ {
			g.Advance(dt)
		}
		got := g.Rotation().Longitude
		if i == 0 {
			want = got
			if math.Abs(got-0.5) > 1e-9 {
				t.Fatalf("expected 0.5 rad after 1s, got %v", got)
			}
			continue
		}
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("%d Hz: longitude %v differs from %v", hz, got, want)
		}
	}
}

func TestAdvanceIgnoresNonPositiveDelta(t *testing.T) {
	g := NewGlobe()
	g.Advance(0)
	g.Advance(-time.Second)
	if g.Rotation().Longitude != 0 {
		t.Fatalf("expected no spin for non-positive dt, got %v", g.Rotation().Longitude)
	}
}

func TestSetScale(t *testing.T) {
	g := NewGlobe()
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := g.SetScale(bad); !errors.Is(err, ErrInvalidScale) {
			t.Fatalf("SetScale(%v): expected ErrInvalidScale, got %v", bad, err)
		}
	}
	if err := g.SetScale(1.4); err != nil {
		t.Fatalf("SetScale(1.4): %v", err)
	}
	if f := g.Frame(); f.Scale != 1.4 {
		t.Fatalf("frame scale %v, want 1.4", f.Scale)
	}
}

func TestWithMarkersDropsInvalid(t *testing.T) {
	g := NewGlobe(WithMarkers([]common.Marker{
		{Location: common.LatLng{Lat: 10, Lng: 10}, Size: 0.1},
		{Location: common.LatLng{Lat: 100, Lng: 10}, Size: 0.1},
		{Location: common.LatLng{Lat: 10, Lng: 10}, Size: 0},
		{Location: common.LatLng{Lat: -10, Lng: -170}, Size: 0.05},
	}))
	m := g.Markers()
	if len(m) != 2 || m[1].Location.Lng != -170 {
		t.Fatalf("unexpected markers %+v", m)
	}
}

func TestWithSpringRejectsUnderDamped(t *testing.T) {
	g := NewGlobe(WithSpring(SpringConfig{Mass: 1, Stiffness: 500, Damping: 7})).(*globeImpl)
	if g.springConfig != DefaultSpringConfig {
		t.Fatalf("under-damped config should be ignored, got %+v", g.springConfig)
	}
}
