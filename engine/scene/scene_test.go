package scene

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/animator"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
)

type fakeRenderer struct {
	mu        sync.Mutex
	resizes   [][2]int
	frames    []globe.Frame
	destroyed int
	style     renderer.Style
}

func (f *fakeRenderer) Resize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resizes = append(f.resizes, [2]int{width, height})
	return nil
}

func (f *fakeRenderer) Viewport() renderer.Viewport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resizes) == 0 {
		return renderer.Viewport{}
	}
	last := f.resizes[len(f.resizes)-1]
	return renderer.SquareViewport(last[0], last[1])
}

func (f *fakeRenderer) Render(frame globe.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) SetStyle(style renderer.Style) { f.style = style }

func (f *fakeRenderer) Style() renderer.Style { return f.style }

func (f *fakeRenderer) Destroy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed++
}

const frame = time.Second / 60

func TestFrameAppliesOnlyLatestResize(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("test", globe.NewGlobe(), r, WithActive(true))

	s.RequestResize(640, 480)
	s.RequestResize(1024, 768)
	if err := s.Frame(frame); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{1024, 768} {
		t.Fatalf("expected a single resize to the latest size, got %v", r.resizes)
	}
	if vp := r.Viewport(); vp.Width != vp.Height || vp.Width != 768 {
		t.Fatalf("viewport not square: %+v", vp)
	}

	if err := s.Frame(frame); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(r.resizes) != 1 {
		t.Fatalf("resize applied twice: %v", r.resizes)
	}
	if len(r.frames) != 2 {
		t.Fatalf("expected 2 rendered frames, got %d", len(r.frames))
	}
}

func TestFrameAdvancesGlobe(t *testing.T) {
	r := &fakeRenderer{}
	g := globe.NewGlobe()
	s := NewScene("test", g, r)

	for i := 0; i < 60; i++ {
		if err := s.Frame(frame); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}
	if lon := g.Rotation().Longitude; math.Abs(lon-globe.DefaultSpinSpeed) > 1e-3 {
		t.Fatalf("expected ~%v rad after one second, got %v", globe.DefaultSpinSpeed, lon)
	}
	last := r.frames[len(r.frames)-1]
	if last.Orientation.Phi != g.Orientation().Phi {
		t.Fatalf("rendered frame does not match globe state")
	}
}

func TestFrameDrivesScaleFromAnimator(t *testing.T) {
	now := time.Unix(0, 0)
	zoom := animator.NewZoomAnimator(animator.WithClock(func() time.Time { return now }))
	r := &fakeRenderer{}
	g := globe.NewGlobe()
	s := NewScene("test", g, r, WithScaleAnimator(zoom))

	// Idle animator leaves the scale alone.
	if err := g.SetScale(1.2); err != nil {
		t.Fatal(err)
	}
	if err := s.Frame(frame); err != nil {
		t.Fatal(err)
	}
	if g.Scale() != 1.2 {
		t.Fatalf("idle animator overwrote scale: %v", g.Scale())
	}

	zoom.StartNow()
	prev := 0.0
	for i := 0; i < 100; i++ {
		now = now.Add(frame)
		if err := s.Frame(frame); err != nil {
			t.Fatal(err)
		}
		if sc := g.Scale(); sc < prev {
			t.Fatalf("scale decreased at frame %d: %v < %v", i, sc, prev)
		}
		prev = g.Scale()
	}
	if g.Scale() != animator.DefaultZoomTo {
		t.Fatalf("expected final scale %v, got %v", animator.DefaultZoomTo, g.Scale())
	}
	if s.Animator() != zoom {
		t.Fatalf("Animator() did not return the attached animator")
	}
}

func TestCloseDestroysRendererOnce(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("test", globe.NewGlobe(), r, WithActive(true))

	s.Close()
	s.Close()
	if r.destroyed != 1 {
		t.Fatalf("expected one Destroy, got %d", r.destroyed)
	}
	if s.Active() {
		t.Fatalf("closed scene must not be active")
	}
	if err := s.Frame(frame); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestNewScenePanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil renderer")
		}
	}()
	NewScene("bad", globe.NewGlobe(), nil)
}
