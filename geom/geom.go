// Package geom provides the rectangle primitives used to decide which text
// fragments belong to which region of a page. Coordinates are in page-space
// units with Y increasing down the page, matching the order fragments are
// read by the document decoder.
package geom

import "math"

// Rect represents a rectangle in page space.
type Rect struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the overlapping rectangle of two rectangles, or the
// zero rectangle when they do not overlap. Rectangles that merely share an
// edge intersect with zero area.
func Intersect(a, b Rect) Rect {
	x1 := math.Max(a.Left(), b.Left())
	y1 := math.Max(a.Top(), b.Top())
	x2 := math.Min(a.Right(), b.Right())
	y2 := math.Min(a.Bottom(), b.Bottom())

	if x2 < x1 || y2 < y1 {
		return Rect{}
	}

	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// PercentageInside returns how much of fragment f's area lies inside r,
// as a percentage of f's own area. A zero-area fragment is never inside
// anything. This is the engine-wide membership test: a fragment belongs to
// a region when at least 10% of it falls inside.
func PercentageInside(f, r Rect) float64 {
	area := f.Area()
	if area == 0 {
		return 0
	}
	return 100 * Intersect(r, f).Area() / area
}

// VerticalOverlapPercentage returns the vertical overlap of a and b as a
// percentage of b's height. Measuring against b keeps an abnormally tall
// fragment from counting as "same row" as everything it happens to span.
func VerticalOverlapPercentage(a, b Rect) float64 {
	if b.Height == 0 {
		return 0
	}
	top := math.Max(a.Top(), b.Top())
	bottom := math.Min(a.Bottom(), b.Bottom())
	if bottom <= top {
		return 0
	}
	return 100 * (bottom - top) / b.Height
}
