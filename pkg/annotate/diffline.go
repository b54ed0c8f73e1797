package annotate

import (
	"github.com/deckgrid/deckgrid/pkg/chart"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

const (
	diffLabelPad    = 10.0
	diffLabelW      = 144.0
	diffLabelH      = 44.0
	diffLabelHTwo   = 72.0 // with a secondary line
	diffLabelSizePt = 11.0
)

// placeDifferenceLine draws a dashed delta connector centered in the
// inter-bar gutter, spanning exactly from the first bar's top to the second
// bar's top. The label goes to the right of the line unless it would overlap
// the second bar, in which case it flips to the left. That is the only
// collision check.
func placeDifferenceLine(r DifferenceLine, grid *chart.Grid) (Geometry, error) {
	if r.ToCategory-r.FromCategory != 1 && r.FromCategory-r.ToCategory != 1 {
		return Geometry{}, errors.New(errors.ErrCodeConfiguration,
			"difference line needs adjacent categories, got %d and %d", r.FromCategory, r.ToCategory)
	}

	bar1, err := grid.BarRect(r.Series, r.FromCategory)
	if err != nil {
		return Geometry{}, err
	}
	bar2, err := grid.BarRect(r.Series, r.ToCategory)
	if err != nil {
		return Geometry{}, err
	}

	// The gutter midpoint, never a bar centerline.
	left, right := bar1, bar2
	if left.X > right.X {
		left, right = right, left
	}
	lineX := (left.Right() + right.X) / 2

	// The span follows the bar tops and is vertical only when they are
	// level.
	line := []geom.Point{{X: lineX, Y: bar1.Y}, {X: lineX, Y: bar2.Y}}
	midY := (bar1.Y + bar2.Y) / 2

	h := diffLabelH
	if r.Secondary != "" {
		h = diffLabelHTwo
	}
	label := geom.Rect{X: lineX + diffLabelPad, Y: midY - h/2, W: diffLabelW, H: h}
	side := SideRight
	if label.Intersects(bar2) {
		label.X = lineX - diffLabelPad - diffLabelW
		side = SideLeft
	}

	return Geometry{
		Kind:       DifferenceLine{}.annotationKind(),
		Line:       line,
		LineColor:  palette.NegativeRed,
		Dashed:     true,
		Label:      label,
		LabelText:  r.Label,
		Secondary:  r.Secondary,
		LabelStyle: TextStyle{SizePt: diffLabelSizePt, Bold: true, Color: palette.NegativeRed},
		Side:       side,
	}, nil
}
