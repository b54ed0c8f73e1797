// Package zone defines the fixed canvas grid: the reference canvas, the safe
// area, and the named vertical layout zones (title, content, footer).
//
// All values are process-wide constants at the 1920×1080 reference
// resolution. The zones are disjoint, ordered top to bottom, and separated by
// fixed gutters; nothing here is mutable after initialization, so the package
// is safe for concurrent use without locking.
//
// The only elements permitted outside the safe area are full-bleed
// backgrounds on title and section-divider slides; every other element's
// bounding rectangle must be a subset of [SafeArea].
package zone

import "github.com/deckgrid/deckgrid/pkg/geom"

// Canvas dimensions at the reference density.
const (
	CanvasWidth  = 1920.0
	CanvasHeight = 1080.0
)

// Safe area margins: 5% of each canvas dimension.
const (
	MarginHorizontal = 96.0
	MarginVertical   = 54.0
)

// Fixed gutters between zones and between layout components.
const (
	GutterTitleToContent  = 20.0
	GutterContentToFooter = 16.0
	GutterHorizontal      = 60.0
	GutterVertical        = 30.0
)

// Name identifies a layout zone.
type Name string

const (
	Title   Name = "title"
	Content Name = "content"
	Footer  Name = "footer"
)

// zones holds the fixed zone rectangles. Title spans y 54..134, content
// y 154..956 (20px gutter below the title), footer y 972..1026 (16px gutter
// below the content).
var zones = map[Name]geom.Rect{
	Title:   {X: MarginHorizontal, Y: MarginVertical, W: CanvasWidth - 2*MarginHorizontal, H: 80},
	Content: {X: MarginHorizontal, Y: 154, W: CanvasWidth - 2*MarginHorizontal, H: 802},
	Footer:  {X: MarginHorizontal, Y: 972, W: CanvasWidth - 2*MarginHorizontal, H: 54},
}

// Canvas returns the full reference canvas rectangle.
func Canvas() geom.Rect {
	return geom.Rect{X: 0, Y: 0, W: CanvasWidth, H: CanvasHeight}
}

// SafeArea returns the canvas inset by the fixed margins (1728×972).
func SafeArea() geom.Rect {
	return geom.Rect{
		X: MarginHorizontal,
		Y: MarginVertical,
		W: CanvasWidth - 2*MarginHorizontal,
		H: CanvasHeight - 2*MarginVertical,
	}
}

// Zone returns the rectangle for the named zone. The second return value is
// false for unknown names.
func Zone(name Name) (geom.Rect, bool) {
	r, ok := zones[name]
	return r, ok
}

// InSafeArea reports whether r lies entirely within the safe area. Callers
// use this as a precondition check before committing a region.
func InSafeArea(r geom.Rect) bool {
	return SafeArea().Contains(r)
}

// InZone reports whether r lies entirely within the named zone.
func InZone(name Name, r geom.Rect) bool {
	z, ok := zones[name]
	if !ok {
		return false
	}
	return z.Contains(r)
}
