// Package overflow shrinks non-text elements that escape their bounds. Text
// overflow is handled by the owning typography level; this resolver covers
// charts, images, and other fixed-aspect components.
package overflow

import (
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
)

const (
	// ScaleStep is the fixed shrink decrement applied per attempt.
	ScaleStep = 0.05
	// ScaleFloor is the smallest scale tried before giving up.
	ScaleFloor = 0.50
)

// Fit returns elem adjusted to lie inside bounds. The element is scaled about
// its center in fixed 5% decrements, re-checked after each step, down to the
// 50% floor. If no scale fits, Fit returns an UNRESOLVED_OVERFLOW error
// naming the element and the attempted range; it never returns an
// out-of-bounds rectangle.
func Fit(id string, elem, bounds geom.Rect) (geom.Rect, float64, error) {
	if bounds.Contains(elem) {
		return elem, 1.0, nil
	}

	for pct := 95; pct >= 50; pct -= 5 {
		scale := float64(pct) / 100
		adjusted := elem.ScaledAbout(scale)
		if bounds.Contains(adjusted) {
			return adjusted, scale, nil
		}
	}
	return geom.Rect{}, 0, errors.New(errors.ErrCodeUnresolvedOverflow,
		"element %q at %gx%g+%g+%g does not fit %gx%g+%g+%g after scaling to %d%%",
		id, elem.W, elem.H, elem.X, elem.Y, bounds.W, bounds.H, bounds.X, bounds.Y,
		int(ScaleFloor*100))
}
