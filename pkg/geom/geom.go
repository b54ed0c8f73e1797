// Package geom provides the primitive geometry types used throughout the
// layout engine. All coordinates are in pixels at the reference canvas
// density (1920×1080 at 144 DPI); the origin is the top-left corner and Y
// grows downward.
package geom

// DPI is the reference pixel density. Point/pixel conversions assume this
// density; the rendering backend maps reference pixels onto its own units.
const DPI = 144

// Point is a position on the reference canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.W * r.H }

// Contains reports whether other lies entirely inside r (edges inclusive).
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// ContainsPoint reports whether p lies inside r (edges inclusive).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and other overlap with positive area.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Inset returns r shrunk by dx on the left/right and dy on the top/bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// ScaledAbout returns r scaled by factor about its center point.
func (r Rect) ScaledAbout(factor float64) Rect {
	w := r.W * factor
	h := r.H * factor
	return Rect{
		X: r.CenterX() - w/2,
		Y: r.CenterY() - h/2,
		W: w,
		H: h,
	}
}

// PtToPx converts points to reference pixels (1pt = 2px at 144 DPI).
func PtToPx(pt float64) float64 { return pt * DPI / 72 }

// PxToPt converts reference pixels to points.
func PxToPt(px float64) float64 { return px * 72 / DPI }
