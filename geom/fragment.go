package geom

// Fragment is a piece of text with its page-space bounding box, the raw
// unit of input produced by the document decoder. Fragments are never
// mutated by the engine; regions derived during extraction are new Rects.
type Fragment struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
}

// Bounds returns the fragment's bounding rectangle.
func (f Fragment) Bounds() Rect {
	return Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Right returns the right edge X coordinate.
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// Bottom returns the bottom edge Y coordinate.
func (f Fragment) Bottom() float64 {
	return f.Y + f.Height
}
