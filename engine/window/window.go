package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// CursorShape is the pointer affordance shown over the window.
type CursorShape int

const (
	// CursorArrow is the platform default pointer.
	CursorArrow CursorShape = iota
	// CursorGrab signals that the surface can be dragged.
	CursorGrab
	// CursorGrabbing signals that a drag is in progress.
	CursorGrabbing
)

// Window provides platform windowing and pointer/keyboard event handling for the globe surface.
//
// Callbacks fire on the thread running ProcessMessages. SetCursor and SetTitle may be called from
// any goroutine; the change is applied on the next message loop iteration.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetPointerDownCallback sets the callback for primary button presses.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in pixels
	SetPointerDownCallback(callback func(x, y float64))

	// SetPointerUpCallback sets the callback for primary button releases.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in pixels
	SetPointerUpCallback(callback func(x, y float64))

	// SetPointerMoveCallback sets the callback for pointer movement over the window.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in pixels
	SetPointerMoveCallback(callback func(x, y float64))

	// SetPointerLeaveCallback sets the callback fired when the pointer exits the window.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetPointerLeaveCallback(callback func())

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetCharCallback sets the callback for text input.
	//
	// Parameters:
	//   - callback: function receiving the typed rune
	SetCharCallback(callback func(r rune))

	// SetCursor requests a new pointer affordance.
	//
	// Parameters:
	//   - shape: the cursor to show
	SetCursor(shape CursorShape)

	// SetTitle requests a new title bar text.
	//
	// Parameters:
	//   - title: the title to show
	SetTitle(title string)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// pending holds requests from other goroutines, applied by the message loop.
	pendingMu     sync.Mutex
	pendingCursor *CursorShape
	pendingTitle  *string

	onUpdate       func()
	onResize       func(width, height int)
	onPointerDown  func(x, y float64)
	onPointerUp    func(x, y float64)
	onPointerMove  func(x, y float64)
	onPointerLeave func()
	onKeyDown      func(keyCode uint32)
	onChar         func(r rune)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Globe",
		maxWidth:  2400,
		maxHeight: 2400,
		minWidth:  200,
		minHeight: 200,
		width:     800,
		height:    800,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = clampDimension(w.width, w.minWidth, w.maxWidth)
	w.height = clampDimension(w.height, w.minHeight, w.maxHeight)
	return w
}

// clampDimension limits v to [lo, hi], ignoring bounds that are not positive.
func clampDimension(v, lo, hi int) int {
	if lo > 0 && v < lo {
		v = lo
	}
	if hi > 0 && hi >= lo && v > hi {
		v = hi
	}
	return v
}

// takePending returns and clears any queued cursor and title requests.
func (w *engineWindow) takePending() (*CursorShape, *string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	c, t := w.pendingCursor, w.pendingTitle
	w.pendingCursor, w.pendingTitle = nil, nil
	return c, t
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float64)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetPointerLeaveCallback(callback func()) {
	w.onPointerLeave = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetCharCallback(callback func(r rune)) {
	w.onChar = callback
}

func (w *engineWindow) SetCursor(shape CursorShape) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pendingCursor = &shape
}

func (w *engineWindow) SetTitle(title string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pendingTitle = &title
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		cursor, title := w.takePending()
		platformApplyPending(w, cursor, title)

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
