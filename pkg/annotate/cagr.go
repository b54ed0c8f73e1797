package annotate

import (
	"math"

	"github.com/deckgrid/deckgrid/pkg/chart"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

const (
	// cagrClearance is the minimum vertical gap between the curve's apex and
	// the tallest bar under it.
	cagrClearance = 30.0
	// cagrApexFactor scales the apex target above the bare clearance so the
	// sampled polyline still clears after segment approximation.
	cagrApexFactor = 1.33
	// cagrSegments is the number of straight segments approximating the
	// quadratic curve.
	cagrSegments = 20

	cagrLabelW      = 130.0
	cagrLabelH      = 36.0
	cagrLabelGap    = 12.0
	cagrLabelSizePt = 10.0
)

// placeCAGR anchors a quadratic curve on the top-centers of the two bars and
// lifts its control point so the apex clears every bar in the inclusive
// category range, across all series.
func placeCAGR(r CAGRArrow, grid *chart.Grid) (Geometry, error) {
	from := r.FromCategory
	to := r.ToCategory
	if to < 0 {
		to = grid.NumCategories() + to
	}
	if from == to {
		return Geometry{}, errors.New(errors.ErrCodeConfiguration,
			"growth arrow needs two distinct categories, got %d twice", from)
	}

	p0, err := grid.BarTopCenter(r.Series, from)
	if err != nil {
		return Geometry{}, err
	}
	p2, err := grid.BarTopCenter(r.Series, to)
	if err != nil {
		return Geometry{}, err
	}
	obstacleY, err := grid.HighestTopY(from, to)
	if err != nil {
		return Geometry{}, err
	}

	// Solve the control point so the curve's true minimum Y hits the apex
	// target. For a quadratic with endpoints y0, y2 and control yc, the
	// minimum is (y0*y2 - yc^2) / (y0 + y2 - 2*yc).
	apexTarget := obstacleY - cagrClearance*cagrApexFactor
	controlY := apexTarget - math.Sqrt((p0.Y-apexTarget)*(p2.Y-apexTarget))
	control := geom.Point{X: (p0.X + p2.X) / 2, Y: controlY}

	points := make([]geom.Point, cagrSegments+1)
	apex := geom.Point{Y: math.Inf(1)}
	for i := 0; i <= cagrSegments; i++ {
		t := float64(i) / cagrSegments
		p := quadBezier(t, p0, control, p2)
		points[i] = p
		if p.Y < apex.Y {
			apex = p
		}
	}

	return Geometry{
		Kind:      CAGRArrow{}.annotationKind(),
		Line:      points,
		LineColor: palette.AxisGrey,
		Label: geom.Rect{
			X: apex.X - cagrLabelW/2,
			Y: apex.Y - cagrLabelH - cagrLabelGap,
			W: cagrLabelW,
			H: cagrLabelH,
		},
		LabelText:  r.Label,
		LabelStyle: TextStyle{SizePt: cagrLabelSizePt, Color: palette.BodyText},
	}, nil
}

// quadBezier evaluates (1-t)^2*p0 + 2(1-t)t*p1 + t^2*p2.
func quadBezier(t float64, p0, p1, p2 geom.Point) geom.Point {
	a := (1 - t) * (1 - t)
	b := 2 * (1 - t) * t
	c := t * t
	return geom.Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}
