package tracklite

// Rect represents an axis-aligned bounding box in normalized image
// coordinates, where x,y is the top-left corner and all values are in the
// range [0,1] relative to the frame dimensions
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// NewRect creates a new Rect with given top-left corner and size
func NewRect(x, y, width, height float32) Rect {
	return Rect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// BRX returns the bottom-right x coordinate of the rectangle
func (r Rect) BRX() float32 {
	return r.X + r.Width
}

// BRY returns the bottom-right y coordinate of the rectangle
func (r Rect) BRY() float32 {
	return r.Y + r.Height
}

// Center returns the center point coordinates of the rectangle
func (r Rect) Center() (float32, float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area returns the area of the rectangle
func (r Rect) Area() float32 {
	return r.Width * r.Height
}

// IoU calculates the Intersection over Union with another rectangle.  When
// the union of both rectangles has zero area, such as for degenerate boxes,
// the IoU is defined as 0
func (r Rect) IoU(other Rect) float32 {

	iw := minf(r.BRX(), other.BRX()) - maxf(r.X, other.X)

	if iw <= 0 {
		return 0
	}

	ih := minf(r.BRY(), other.BRY()) - maxf(r.Y, other.Y)

	if ih <= 0 {
		return 0
	}

	inter := iw * ih
	union := r.Area() + other.Area() - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
