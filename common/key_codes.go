package common

// Virtual key codes for cross-platform input handling.
// Printable keys feed the search text through the char callback, so commands live on
// non-printable GLFW keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc   = 256 // Escape key (GLFW), resets the search flow
	KeyEnter = 257 // Enter key (GLFW), submits the typed location
	KeyBack  = 259 // Backspace key (GLFW)
	KeyF1    = 290 // F1 key (GLFW), resumes auto-spin
	KeyF2    = 291 // F2 key (GLFW), flies to a random showcase city
	KeyF3    = 292 // F3 key (GLFW), toggles the profiler
)
