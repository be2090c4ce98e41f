package scene

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/animator"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
)

// ErrClosed is returned by Frame after Close.
var ErrClosed = errors.New("scene: closed")

// Scene binds one globe, its zoom animator and the renderer that draws it.
//
// Input handlers and background flows mutate the globe and animator directly; the scene's Frame,
// called from the render goroutine, is the only code that touches the draw surface. Resize
// requests from the window thread are recorded and applied at the start of the next frame.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently drawn by the render loop.
	Active() bool

	// SetActive sets whether this scene is drawn by the render loop.
	SetActive(active bool)

	// Globe returns the globe state machine.
	Globe() globe.Globe

	// Animator returns the zoom animator driving the globe's scale, or nil if none.
	Animator() animator.ScaleAnimator

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// RequestResize records the latest framebuffer size. Only the most recent request is kept.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	RequestResize(width, height int)

	// Frame advances the simulation by dt and draws one frame: pending resize first, then the
	// globe's motion, then the animator's scale, then the draw.
	//
	// Parameters:
	//   - dt: wall-clock time since the previous frame
	//
	// Returns:
	//   - error: ErrClosed after Close, or the renderer's error
	Frame(dt time.Duration) error

	// Close deactivates the scene and destroys its renderer. Safe to call more than once.
	Close()
}

type pendingSize struct {
	width  int
	height int
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	closed bool

	g    globe.Globe
	zoom animator.ScaleAnimator
	r    renderer.Renderer

	pending *pendingSize
}

var _ Scene = &scene{}

// NewScene creates an inactive scene for the given globe and renderer.
// Panics if either is nil.
//
// Parameters:
//   - name: identifier used in logs
//   - g: the globe to animate and draw
//   - r: the renderer owning the draw surface
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, g globe.Globe, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if g == nil {
		panic("scene: NewScene requires a non-nil Globe")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:   &sync.RWMutex{},
		name: name,
		g:    g,
		r:    r,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active && !s.closed
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Globe() globe.Globe {
	return s.g
}

func (s *scene) Animator() animator.ScaleAnimator {
	return s.zoom
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) RequestResize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &pendingSize{width: width, height: height}
}

// takePending returns and clears the pending resize.
func (s *scene) takePending() (*pendingSize, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p, s.closed
}

func (s *scene) Frame(dt time.Duration) error {
	size, closed := s.takePending()
	if closed {
		return ErrClosed
	}
	if size != nil {
		if err := s.r.Resize(size.width, size.height); err != nil {
			return err
		}
	}

	s.g.Advance(dt)

	// The animator only owns the scale while it has been started; after a reset the scale belongs
	// to whoever reset it.
	if s.zoom != nil {
		now := s.zoom.Now()
		if s.zoom.Running(now) || s.zoom.Done(now) {
			if err := s.g.SetScale(s.zoom.Sample(now)); err != nil {
				return err
			}
		}
	}

	return s.r.Render(s.g.Frame())
}

func (s *scene) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.active = false
	s.mu.Unlock()

	s.r.Destroy()
}
