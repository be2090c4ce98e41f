package globe

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

// ErrInvalidScale is returned by SetScale for non-positive or non-finite values.
var ErrInvalidScale = errors.New("globe: scale must be a positive finite number")

// RotationState is the base orientation of the sphere in radians.
type RotationState struct {
	// Longitude is the spin around the polar axis, kept in [0, 2π).
	Longitude float64
	// Latitude is the tilt toward the viewer. Not clamped.
	Latitude float64
}

// DragOffset is the spring-smoothed offset layered on top of RotationState by pointer drags.
type DragOffset struct {
	DeltaLongitude float64
	DeltaLatitude  float64
}

// Orientation is the angle pair handed to the renderer: base rotation plus drag offset.
type Orientation struct {
	// Phi is the rendered longitude angle in radians.
	Phi float64
	// Theta is the rendered latitude angle in radians.
	Theta float64
}

// Frame is an immutable snapshot of everything the renderer needs for one frame.
type Frame struct {
	Orientation Orientation
	Scale       float64
	Mode        InteractionMode
	Markers     []common.Marker
}

// Globe is the interactive globe widget's state machine.
//
// It owns the base rotation, the drag springs and the interaction mode. Pointer handlers and the
// fly-to controller only mutate this state; drawing happens elsewhere from Frame snapshots. All
// methods are safe for concurrent use.
type Globe interface {
	// Advance moves the simulation forward by dt of wall-clock time.
	// Auto-spin is applied only in ModeAutoSpin; the drag springs are always integrated.
	//
	// Parameters:
	//   - dt: elapsed time since the previous call; non-positive values only refresh nothing
	Advance(dt time.Duration)

	// Orientation returns the rendered orientation (base rotation + drag offset).
	//
	// Returns:
	//   - Orientation: current phi/theta in radians
	Orientation() Orientation

	// Rotation returns the base rotation without the drag offset.
	//
	// Returns:
	//   - RotationState: current base longitude/latitude in radians
	Rotation() RotationState

	// DragOffset returns the current spring-smoothed drag offset.
	//
	// Returns:
	//   - DragOffset: current offset in radians
	DragOffset() DragOffset

	// Mode returns the active interaction mode.
	//
	// Returns:
	//   - InteractionMode: AutoSpin, Dragging or FlyingTo
	Mode() InteractionMode

	// AutoSpinEnabled reports whether releasing a drag returns to auto-spin.
	// A fly-to disables auto-spin until ResumeAutoSpin is called.
	//
	// Returns:
	//   - bool: true if auto-spin is enabled
	AutoSpinEnabled() bool

	// PointerDown starts a drag at the given surface position.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerDown(x, y float64)

	// PointerMove updates the drag target while a drag is active. Ignored otherwise.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float64)

	// PointerUp ends the current drag, if any.
	PointerUp()

	// PointerLeave ends the current drag when the pointer leaves the surface.
	PointerLeave()

	// FlyTo repositions the globe to face the request's coordinates when its token has changed.
	// A new token cancels any drag, zeroes the drag offset and disables auto-spin.
	//
	// Parameters:
	//   - req: the fly-to request
	//
	// Returns:
	//   - bool: true if the request triggered a transition, false if the token was unchanged
	//   - error: ErrInvalidCoordinates or ErrInvalidToken; state is untouched on error
	FlyTo(req FlyToRequest) (bool, error)

	// ResumeAutoSpin re-enables auto-spin and leaves FlyingTo. Has no effect on an active drag
	// other than letting its release return to auto-spin.
	ResumeAutoSpin()

	// Scale returns the visual scale factor applied by the renderer.
	//
	// Returns:
	//   - float64: scale factor, 1 by default
	Scale() float64

	// SetScale sets the visual scale factor.
	//
	// Parameters:
	//   - scale: positive finite scale factor
	//
	// Returns:
	//   - error: ErrInvalidScale if scale is not positive and finite
	SetScale(scale float64) error

	// Markers returns a copy of the initial marker list.
	//
	// Returns:
	//   - []common.Marker: markers in configuration order
	Markers() []common.Marker

	// Frame returns a snapshot suitable for rendering one frame.
	//
	// Returns:
	//   - Frame: orientation, scale, mode and markers
	Frame() Frame

	// SetCursorCallback registers a function notified when the pointer affordance changes.
	//
	// Parameters:
	//   - callback: function receiving the new cursor (or nil to disable)
	SetCursorCallback(callback func(c Cursor))
}

// globeImpl is the single implementation of Globe.
type globeImpl struct {
	mu *sync.Mutex

	rotation  RotationState
	lonSpring *Spring
	latSpring *Spring

	mode     InteractionMode
	autoSpin bool

	// Drag tracking. originX/originY are only meaningful while dragging is true.
	dragging bool
	originX  float64
	originY  float64

	// lastToken is the most recently accepted fly-to token.
	lastToken any

	spinSpeed       float64 // radians per second
	movementDamping float64 // pixels per radian of drag
	springConfig    SpringConfig

	scale   float64
	markers []common.Marker

	onCursor func(c Cursor)
}

// Compile-time interface compliance check
var _ Globe = &globeImpl{}

// NewGlobe creates a globe in auto-spin mode facing the default orientation.
//
// Parameters:
//   - options: functional options to configure the globe
//
// Returns:
//   - Globe: the newly created globe
func NewGlobe(options ...GlobeBuilderOption) Globe {
	g := &globeImpl{
		mu: &sync.Mutex{},

		rotation: RotationState{Longitude: 0, Latitude: DefaultLatitude},

		mode:     ModeAutoSpin,
		autoSpin: true,

		spinSpeed:       DefaultSpinSpeed,
		movementDamping: DefaultMovementDamping,
		springConfig:    DefaultSpringConfig,

		scale: 1,
	}

	for _, option := range options {
		option(g)
	}

	g.rotation.Longitude = common.WrapAngle(g.rotation.Longitude)
	g.lonSpring = NewSpring(g.springConfig)
	g.latSpring = NewSpring(g.springConfig)
	return g
}

// --- internal helpers ---

// endDrag folds the pointer-driven target into the base rotation and retargets both springs at zero.
// The rendered orientation does not jump: the springs keep their momentum relative to the new rest
// point and the offset decays to zero. Caller must hold the mutex.
func (g *globeImpl) endDrag() {
	if !g.dragging {
		return
	}
	g.dragging = false

	dLon := g.lonSpring.Target()
	dLat := g.latSpring.Target()
	g.rotation.Longitude = common.WrapAngle(g.rotation.Longitude + dLon)
	g.rotation.Latitude += dLat
	g.lonSpring.Rebase(-dLon)
	g.latSpring.Rebase(-dLat)

	if g.autoSpin {
		g.mode = ModeAutoSpin
	} else {
		g.mode = ModeFlyingTo
	}
	g.notifyCursor(CursorGrab)
}

// notifyCursor invokes the cursor callback, if any. Caller must hold the mutex.
func (g *globeImpl) notifyCursor(c Cursor) {
	if g.onCursor != nil {
		g.onCursor(c)
	}
}

// --- Globe methods ---

func (g *globeImpl) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.mode == ModeAutoSpin {
		g.rotation.Longitude = common.WrapAngle(g.rotation.Longitude + g.spinSpeed*dt.Seconds())
	}
	g.lonSpring.Step(dt)
	g.latSpring.Step(dt)
}

func (g *globeImpl) Orientation() Orientation {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orientation()
}

// orientation computes the rendered angles. Caller must hold the mutex.
func (g *globeImpl) orientation() Orientation {
	return Orientation{
		Phi:   g.rotation.Longitude + g.lonSpring.Value(),
		Theta: g.rotation.Latitude + g.latSpring.Value(),
	}
}

func (g *globeImpl) Rotation() RotationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *globeImpl) DragOffset() DragOffset {
	g.mu.Lock()
	defer g.mu.Unlock()
	return DragOffset{
		DeltaLongitude: g.lonSpring.Value(),
		DeltaLatitude:  g.latSpring.Value(),
	}
}

func (g *globeImpl) Mode() InteractionMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

func (g *globeImpl) AutoSpinEnabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.autoSpin
}

func (g *globeImpl) PointerDown(x, y float64) {
	if !common.IsFinite(x) || !common.IsFinite(y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dragging = true
	g.originX = x
	g.originY = y
	g.mode = ModeDragging
	g.notifyCursor(CursorGrabbing)
}

func (g *globeImpl) PointerMove(x, y float64) {
	if !common.IsFinite(x) || !common.IsFinite(y) {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.dragging {
		return
	}
	// Targets accumulate the displacement from the press origin on every move event, which makes a
	// held-still-but-displaced pointer keep turning the globe like a joystick.
	g.lonSpring.SetTarget(g.lonSpring.Target() + (x-g.originX)/g.movementDamping)
	g.latSpring.SetTarget(g.latSpring.Target() + (y-g.originY)/g.movementDamping)
}

func (g *globeImpl) PointerUp() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endDrag()
}

func (g *globeImpl) PointerLeave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.endDrag()
}

func (g *globeImpl) FlyTo(req FlyToRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastToken != nil && g.lastToken == req.Token {
		return false, nil
	}
	g.lastToken = req.Token

	if g.dragging {
		g.dragging = false
		g.notifyCursor(CursorGrab)
	}
	g.autoSpin = false
	g.mode = ModeFlyingTo

	lon, lat := AnglesFor(req.Lat, req.Lng)
	g.rotation.Longitude = common.WrapAngle(lon)
	g.rotation.Latitude = lat
	g.lonSpring.Snap(0)
	g.latSpring.Snap(0)
	return true, nil
}

func (g *globeImpl) ResumeAutoSpin() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.autoSpin = true
	if g.mode == ModeFlyingTo {
		g.mode = ModeAutoSpin
	}
}

func (g *globeImpl) Scale() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *globeImpl) SetScale(scale float64) error {
	if !common.IsFinite(scale) || scale <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
	return nil
}

func (g *globeImpl) Markers() []common.Marker {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]common.Marker(nil), g.markers...)
}

func (g *globeImpl) Frame() Frame {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Frame{
		Orientation: g.orientation(),
		Scale:       g.scale,
		Mode:        g.mode,
		Markers:     g.markers,
	}
}

func (g *globeImpl) SetCursorCallback(callback func(c Cursor)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onCursor = callback
}
