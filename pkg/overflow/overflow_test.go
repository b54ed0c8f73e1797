package overflow

import (
	"math"
	"testing"

	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

func TestFitAlreadyInside(t *testing.T) {
	elem := geom.Rect{X: 200, Y: 200, W: 400, H: 300}
	got, scale, err := Fit("chart", elem, zone.SafeArea())
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got != elem || scale != 1.0 {
		t.Errorf("in-bounds element altered: %+v scale %g", got, scale)
	}
}

func TestFitShrinksInSteps(t *testing.T) {
	safe := zone.SafeArea()
	// Centered on the safe area but 10% too wide: the first fitting step
	// is 90%.
	elem := geom.Rect{
		X: safe.CenterX() - safe.W/2*1.1,
		Y: safe.CenterY() - safe.H/4,
		W: safe.W * 1.1,
		H: safe.H / 2,
	}
	got, scale, err := Fit("chart", elem, safe)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if scale != 0.90 {
		t.Errorf("scale = %g, want 0.90", scale)
	}
	if !safe.Contains(got) {
		t.Errorf("adjusted %+v escapes safe area", got)
	}
	// Scaling is about the element's own center.
	if math.Abs(got.CenterX()-elem.CenterX()) > 1e-9 || math.Abs(got.CenterY()-elem.CenterY()) > 1e-9 {
		t.Errorf("center moved: %+v vs %+v", got.Center(), elem.Center())
	}
}

func TestFitUnresolved(t *testing.T) {
	safe := zone.SafeArea()
	// More than twice the safe area width cannot fit even at the 50% floor.
	elem := geom.Rect{
		X: safe.CenterX() - safe.W*1.05,
		Y: safe.Y,
		W: safe.W * 2.1,
		H: safe.H / 2,
	}
	_, _, err := Fit("hero-image", elem, safe)
	if !errors.Is(err, errors.ErrCodeUnresolvedOverflow) {
		t.Fatalf("want UNRESOLVED_OVERFLOW, got %v", err)
	}
}

func TestFitOffCenterNeverEmitsOutOfBounds(t *testing.T) {
	safe := zone.SafeArea()
	// An element whose center sits outside the bounds can never be scaled in.
	elem := geom.Rect{X: safe.Right() + 10, Y: safe.Y, W: 100, H: 100}
	got, _, err := Fit("badge", elem, safe)
	if err == nil {
		t.Fatalf("expected error, got %+v", got)
	}
	if !errors.Is(err, errors.ErrCodeUnresolvedOverflow) {
		t.Fatalf("want UNRESOLVED_OVERFLOW, got %v", err)
	}
}
