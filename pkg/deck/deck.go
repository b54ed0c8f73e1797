// Package deck defines the backend-agnostic descriptor tree a layout pass
// produces. Every element carries final pixel geometry and palette tokens,
// so a renderer only draws; it never re-measures or re-colors.
package deck

import (
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

// Deck is the root descriptor for a composed presentation.
type Deck struct {
	Title    string
	Author   string
	Scheme   string
	Currency string
	Slides   []Slide
}

// Slide holds the finalized elements of one slide, in paint order.
type Slide struct {
	Index    int
	Title    string
	Subtitle string
	Pattern  string
	Elements []Element
}

// Element is a drawable descriptor. Implementations are the concrete element
// types below; Kind returns a stable type tag for interchange formats.
type Element interface {
	Kind() string
}

// Align is horizontal text alignment inside a frame.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextBlock is resolved text: wrapped lines at a final font size.
type TextBlock struct {
	Frame      geom.Rect
	Lines      []string
	FontSizePt float64
	Bold       bool
	Color      palette.Token
	Align      Align
	SpaceAfter float64
}

func (TextBlock) Kind() string { return "text" }

// ShapeRect is a filled rectangle (bars, chrome fills, plot backgrounds).
type ShapeRect struct {
	Frame  geom.Rect
	Fill   palette.Token
	Border palette.Token
}

func (ShapeRect) Kind() string { return "rect" }

// Polyline is an open line strip (annotation curves, axis lines).
type Polyline struct {
	Points []geom.Point
	Color  palette.Token
	Dashed bool
}

func (Polyline) Kind() string { return "polyline" }

// LabelBox is a small framed text element attached to an annotation.
type LabelBox struct {
	Frame      geom.Rect
	Text       string
	Secondary  string
	FontSizePt float64
	Bold       bool
	Color      palette.Token
	Fill       palette.Token
	Border     palette.Token
	Align      Align
}

func (LabelBox) Kind() string { return "label" }

// ConnectorLine is a short straight segment joining two chart features,
// such as waterfall column bridges.
type ConnectorLine struct {
	From  geom.Point
	To    geom.Point
	Color palette.Token
}

func (ConnectorLine) Kind() string { return "connector" }
