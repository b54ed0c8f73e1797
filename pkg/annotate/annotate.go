// Package annotate places chart annotations: growth arrows, difference
// lines, leader lines, and callouts. It layers on top of finalized bar
// geometry and never re-runs layout or consults story-mode colors; each
// annotation type carries its own fixed colors.
package annotate

import (
	"github.com/deckgrid/deckgrid/pkg/chart"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/overflow"
	"github.com/deckgrid/deckgrid/pkg/palette"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

// Request is one of the four annotation shapes. The set is closed; Place
// dispatches on the concrete type.
type Request interface {
	annotationKind() string
}

// CAGRArrow spans two bars of one series with a quadratic growth curve. A
// negative ToCategory counts from the end (-1 is the last category).
type CAGRArrow struct {
	Series       int
	FromCategory int
	ToCategory   int
	Label        string
}

// DifferenceLine connects the tops of two bars in adjacent categories with a
// dashed delta line centered in the inter-bar gutter.
type DifferenceLine struct {
	Series       int
	FromCategory int
	ToCategory   int
	Label        string
	Secondary    string
}

// Direction orients a leader line.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// LeaderLine runs from a fractional chart-area anchor outward to a label.
// Length is in pixels; zero means the default.
type LeaderLine struct {
	X, Y      float64
	Text      string
	Direction Direction
	Length    float64
}

// Position places a callout relative to its anchor.
type Position string

const (
	PosAbove Position = "above"
	PosBelow Position = "below"
	PosLeft  Position = "left"
	PosRight Position = "right"
)

// Callout is a bordered note box offset from a fractional anchor point.
type Callout struct {
	X, Y     float64
	Text     string
	Position Position
}

func (CAGRArrow) annotationKind() string      { return "cagr_arrow" }
func (DifferenceLine) annotationKind() string { return "difference_line" }
func (LeaderLine) annotationKind() string     { return "leader_line" }
func (Callout) annotationKind() string        { return "callout" }

// Side reports which side of its line a label landed on.
type Side string

const (
	SideRight Side = "right"
	SideLeft  Side = "left"
)

// TextStyle is the fixed text treatment of an annotation label.
type TextStyle struct {
	SizePt float64
	Bold   bool
	Color  palette.Token
}

// Geometry is the placed annotation: a polyline (curve segments or a straight
// connector), the label box, and fixed styling. Fields not used by a kind
// are zero.
type Geometry struct {
	Kind      string
	Line      []geom.Point
	LineColor palette.Token
	Dashed    bool

	Label      geom.Rect
	LabelText  string
	Secondary  string
	LabelStyle TextStyle
	LabelAlign Side

	Side   Side
	Fill   palette.Token
	Border palette.Token
}

// Place computes the geometry for one annotation request against finalized
// bar geometry. Every returned label box lies inside the safe area; a box
// that cannot be fitted is an UNRESOLVED_OVERFLOW error.
func Place(req Request, grid *chart.Grid) (Geometry, error) {
	var g Geometry
	var err error

	switch r := req.(type) {
	case CAGRArrow:
		g, err = placeCAGR(r, grid)
	case DifferenceLine:
		g, err = placeDifferenceLine(r, grid)
	case LeaderLine:
		g, err = placeLeaderLine(r, grid)
	case Callout:
		g, err = placeCallout(r, grid)
	default:
		return Geometry{}, errors.New(errors.ErrCodeConfiguration, "unknown annotation request %T", req)
	}
	if err != nil {
		return Geometry{}, err
	}

	fitted, _, err := overflow.Fit(g.Kind+" label", g.Label, zone.SafeArea())
	if err != nil {
		return Geometry{}, err
	}
	g.Label = fitted
	return g, nil
}
