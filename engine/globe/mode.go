package globe

// InteractionMode identifies which input currently drives the globe's rotation.
// Exactly one mode is active at a time.
type InteractionMode int

const (
	// ModeAutoSpin rotates the globe continuously eastward at the configured spin speed.
	ModeAutoSpin InteractionMode = iota

	// ModeDragging follows the pointer while a button is held on the globe.
	ModeDragging

	// ModeFlyingTo holds the orientation set by the last fly-to request. There is no automatic exit.
	ModeFlyingTo
)

// String returns the lower-camel name used in logs and the remote feed.
func (m InteractionMode) String() string {
	switch m {
	case ModeAutoSpin:
		return "autoSpin"
	case ModeDragging:
		return "dragging"
	case ModeFlyingTo:
		return "flyingTo"
	default:
		return "unknown"
	}
}

// Cursor is the pointer affordance the host should display over the globe.
type Cursor int

const (
	// CursorGrab signals the globe can be dragged.
	CursorGrab Cursor = iota
	// CursorGrabbing signals a drag is in progress.
	CursorGrabbing
)
