package renderer

// Viewport is the rectangle of the surface the globe is drawn into, in pixels.
type Viewport struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// SquareViewport returns the largest square centered in a width x height surface.
// Non-positive dimensions yield an empty viewport.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - Viewport: centered square with side min(width, height)
func SquareViewport(width, height int) Viewport {
	if width <= 0 || height <= 0 {
		return Viewport{}
	}
	side := min(width, height)
	return Viewport{
		X:      float32((width - side) / 2),
		Y:      float32((height - side) / 2),
		Width:  float32(side),
		Height: float32(side),
	}
}

// Empty reports whether nothing can be drawn into the viewport.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
