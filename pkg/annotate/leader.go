package annotate

import (
	"github.com/deckgrid/deckgrid/pkg/chart"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

const (
	leaderDefaultLen = 40.0
	leaderLabelW     = 100.0
	leaderLabelH     = 20.0
	leaderSizePt     = 10.0
)

// placeLeaderLine runs a thin line from a fractional anchor outward and puts
// the label just beyond the far end, oriented with the direction.
func placeLeaderLine(r LeaderLine, grid *chart.Grid) (Geometry, error) {
	if err := checkFrac(r.X, r.Y); err != nil {
		return Geometry{}, err
	}
	length := r.Length
	if length <= 0 {
		length = leaderDefaultLen
	}

	anchor := grid.FracPoint(r.X, r.Y)
	end := anchor
	var label geom.Rect
	align := SideLeft // text alignment inside the box

	switch r.Direction {
	case DirUp:
		end.Y -= length
		label = geom.Rect{X: end.X - 50, Y: end.Y - 25, W: leaderLabelW, H: leaderLabelH}
	case DirDown:
		end.Y += length
		label = geom.Rect{X: end.X - 50, Y: end.Y + 5, W: leaderLabelW, H: leaderLabelH}
	case DirRight:
		end.X += length
		label = geom.Rect{X: end.X + 5, Y: end.Y - 10, W: leaderLabelW, H: leaderLabelH}
	case DirLeft:
		end.X -= length
		label = geom.Rect{X: end.X - 105, Y: end.Y - 10, W: leaderLabelW, H: leaderLabelH}
		align = SideRight
	default:
		return Geometry{}, errors.New(errors.ErrCodeConfiguration, "unknown leader direction %q", r.Direction)
	}

	return Geometry{
		Kind:       LeaderLine{}.annotationKind(),
		Line:       []geom.Point{anchor, end},
		LineColor:  palette.AxisGrey,
		Label:      label,
		LabelText:  r.Text,
		LabelStyle: TextStyle{SizePt: leaderSizePt, Color: palette.BodyText},
		LabelAlign: align,
	}, nil
}

const (
	calloutW      = 120.0
	calloutH      = 40.0
	calloutSizePt = 10.0
)

// calloutOffsets maps a position keyword to the box's top-left offset from
// the anchor point.
var calloutOffsets = map[Position]geom.Point{
	PosAbove: {X: -60, Y: -50},
	PosBelow: {X: -60, Y: 10},
	PosRight: {X: 10, Y: -20},
	PosLeft:  {X: -130, Y: -20},
}

// placeCallout offsets a bordered note box from a fractional anchor. There
// is no collision logic beyond the keyword offset.
func placeCallout(r Callout, grid *chart.Grid) (Geometry, error) {
	if err := checkFrac(r.X, r.Y); err != nil {
		return Geometry{}, err
	}
	off, ok := calloutOffsets[r.Position]
	if !ok {
		return Geometry{}, errors.New(errors.ErrCodeConfiguration, "unknown callout position %q", r.Position)
	}
	anchor := grid.FracPoint(r.X, r.Y)

	return Geometry{
		Kind:       Callout{}.annotationKind(),
		Label:      geom.Rect{X: anchor.X + off.X, Y: anchor.Y + off.Y, W: calloutW, H: calloutH},
		LabelText:  r.Text,
		LabelStyle: TextStyle{SizePt: calloutSizePt, Color: palette.BodyText},
		Fill:       palette.LightBG,
		Border:     palette.PrimaryGreen,
	}, nil
}

// checkFrac validates a fractional chart-area anchor.
func checkFrac(x, y float64) error {
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return errors.New(errors.ErrCodeInvalidAnchor, "anchor (%g, %g) outside the unit square", x, y)
	}
	return nil
}
