package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/globe"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/globe.wgsl
var globeShaderSource string

// ErrDestroyed is returned by Render and Resize after Destroy.
var ErrDestroyed = errors.New("renderer: destroyed")

// SurfaceSource is anything that can describe a native surface and report its pixel size.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	style     Style
	viewport  Viewport
	destroyed bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
}

// Renderer draws globe frames into a native surface.
//
// The globe is always drawn into a centered square viewport so it never stretches, whatever the
// surface aspect ratio. The renderer is meant to be driven from a single goroutine (the render
// loop); Destroy may be called from any goroutine once that loop has stopped.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size and recomputes the square viewport.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: ErrDestroyed, or an error if the surface could not be reconfigured
	Resize(width, height int) error

	// Viewport returns the square region the globe is currently drawn into.
	//
	// Returns:
	//   - Viewport: the centered square viewport
	Viewport() Viewport

	// Render uploads the frame's uniforms and draws and presents one frame.
	//
	// Parameters:
	//   - frame: the globe snapshot to draw
	//
	// Returns:
	//   - error: ErrDestroyed, or an error if the frame could not be drawn
	Render(frame globe.Frame) error

	// SetPresentMode changes how frames are delivered. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetStyle replaces the visual parameters used from the next frame on.
	//
	// Parameters:
	//   - style: the new style
	SetStyle(style Style)

	// Style returns the current visual parameters.
	//
	// Returns:
	//   - Style: the current style
	Style() Style

	// Destroy releases every GPU resource. Further Render and Resize calls return ErrDestroyed.
	// Safe to call more than once.
	Destroy()
}

var _ Renderer = &renderer{}

// checkUniformLayout verifies the shader's Globe struct matches GlobeUniforms byte for byte.
func checkUniformLayout(source string) error {
	layout, err := parseWGSLStructLayout(source, "Globe")
	if err != nil {
		return fmt.Errorf("failed to lay out globe uniforms: %w", err)
	}
	var u GlobeUniforms
	size, markers := uint64(unsafe.Sizeof(u)), uint64(unsafe.Offsetof(u.Markers))
	if layout.size != size || layout.offsets["markers"] != markers {
		return fmt.Errorf("globe uniforms are %d bytes with markers at %d, shader expects %d and %d",
			size, markers, layout.size, layout.offsets["markers"])
	}
	return nil
}

// NewRenderer creates a Renderer for the given surface, configures it at the surface's current size
// and builds the globe pipeline.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window or other source of the native surface
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready-to-draw renderer
//   - error: an error if any GPU object could not be created
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		style:       DefaultStyle,
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
	}

	// Options first so adapter flags are known before the backend requests a GPU.
	for _, opt := range options {
		opt(r)
	}

	if err := checkUniformLayout(globeShaderSource); err != nil {
		return nil, err
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.style.ClearColor)
	if err := r.Resize(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}

	var uniforms GlobeUniforms
	if err := r.backend.CreateGlobePipeline(globeShaderSource, uint64(unsafe.Sizeof(uniforms))); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrDestroyed
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface %dx%d: %w", width, height, err)
	}
	if vp := SquareViewport(width, height); !vp.Empty() {
		r.viewport = vp
	}
	return nil
}

func (r *renderer) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *renderer) Render(frame globe.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return ErrDestroyed
	}
	uniforms := NewGlobeUniforms(frame, r.style)
	r.backend.WriteUniforms(common.StructToBytes(&uniforms))
	return r.backend.DrawFrame(r.viewport)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if !r.destroyed {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) SetStyle(style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = style
	if !r.destroyed {
		r.backend.SetClearColor(style.ClearColor)
	}
}

func (r *renderer) Style() Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

func (r *renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return
	}
	r.destroyed = true
	r.backend.Release()
}
