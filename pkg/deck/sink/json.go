// Package sink exports composed decks as interchange documents.
package sink

import (
	"encoding/json"

	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	version string
	compact bool
}

// WithJSONVersion records the engine version in the output, for provenance
// when documents are cached or re-rendered.
func WithJSONVersion(v string) JSONOption { return func(r *jsonRenderer) { r.version = v } }

// WithJSONCompact disables pretty-printing. Useful for HTTP responses.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Title    string      `json:"title"`
	Author   string      `json:"author,omitempty"`
	Scheme   string      `json:"scheme,omitempty"`
	Currency string      `json:"currency,omitempty"`
	Version  string      `json:"version,omitempty"`
	Slides   []jsonSlide `json:"slides"`
}

type jsonSlide struct {
	Index    int           `json:"index"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Pattern  string        `json:"pattern,omitempty"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	Type       string      `json:"type"`
	Frame      *jsonRect   `json:"frame,omitempty"`
	Points     []jsonPoint `json:"points,omitempty"`
	Lines      []string    `json:"lines,omitempty"`
	Text       string      `json:"text,omitempty"`
	Secondary  string      `json:"secondary,omitempty"`
	FontSizePt float64     `json:"font_size_pt,omitempty"`
	Bold       bool        `json:"bold,omitempty"`
	Align      string      `json:"align,omitempty"`
	SpaceAfter float64     `json:"space_after,omitempty"`
	Dashed     bool        `json:"dashed,omitempty"`
	Color      *jsonColor  `json:"color,omitempty"`
	Fill       *jsonColor  `json:"fill,omitempty"`
	Border     *jsonColor  `json:"border,omitempty"`
}

type jsonRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonColor struct {
	Token string `json:"token"`
	Hex   string `json:"hex"`
}

// RenderJSON exports a composed deck as a JSON document. This is the primary
// interchange format: positions and dimensions are final canvas pixels, text
// is pre-wrapped, and every color carries both its palette token and hex so a
// renderer needs no engine knowledge.
//
// RenderJSON returns an error only for unknown element types. It does not
// modify d and is safe to call concurrently.
func RenderJSON(d deck.Deck, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    zone.CanvasWidth,
		Height:   zone.CanvasHeight,
		Title:    d.Title,
		Author:   d.Author,
		Scheme:   d.Scheme,
		Currency: d.Currency,
		Version:  r.version,
		Slides:   make([]jsonSlide, 0, len(d.Slides)),
	}

	for _, s := range d.Slides {
		js := jsonSlide{
			Index:    s.Index,
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Pattern:  s.Pattern,
			Elements: make([]jsonElement, 0, len(s.Elements)),
		}
		for _, el := range s.Elements {
			je, err := buildJSONElement(el)
			if err != nil {
				return nil, err
			}
			js.Elements = append(js.Elements, je)
		}
		out.Slides = append(out.Slides, js)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONElement(el deck.Element) (jsonElement, error) {
	switch e := el.(type) {
	case deck.TextBlock:
		return jsonElement{
			Type:       e.Kind(),
			Frame:      rectOf(e.Frame),
			Lines:      e.Lines,
			FontSizePt: e.FontSizePt,
			Bold:       e.Bold,
			Align:      string(e.Align),
			SpaceAfter: e.SpaceAfter,
			Color:      colorOf(e.Color),
		}, nil
	case deck.ShapeRect:
		return jsonElement{
			Type:   e.Kind(),
			Frame:  rectOf(e.Frame),
			Fill:   colorOf(e.Fill),
			Border: colorOf(e.Border),
		}, nil
	case deck.Polyline:
		return jsonElement{
			Type:   e.Kind(),
			Points: pointsOf(e.Points),
			Dashed: e.Dashed,
			Color:  colorOf(e.Color),
		}, nil
	case deck.LabelBox:
		return jsonElement{
			Type:       e.Kind(),
			Frame:      rectOf(e.Frame),
			Text:       e.Text,
			Secondary:  e.Secondary,
			FontSizePt: e.FontSizePt,
			Bold:       e.Bold,
			Align:      string(e.Align),
			Color:      colorOf(e.Color),
			Fill:       colorOf(e.Fill),
			Border:     colorOf(e.Border),
		}, nil
	case deck.ConnectorLine:
		return jsonElement{
			Type:   e.Kind(),
			Points: pointsOf([]geom.Point{e.From, e.To}),
			Color:  colorOf(e.Color),
		}, nil
	default:
		return jsonElement{}, errors.New(errors.ErrCodeInternal,
			"unknown element type %T", el)
	}
}

func rectOf(r geom.Rect) *jsonRect {
	return &jsonRect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func pointsOf(pts []geom.Point) []jsonPoint {
	out := make([]jsonPoint, len(pts))
	for i, p := range pts {
		out[i] = jsonPoint{X: p.X, Y: p.Y}
	}
	return out
}

func colorOf(t palette.Token) *jsonColor {
	if t == "" {
		return nil
	}
	return &jsonColor{Token: string(t), Hex: t.Hex()}
}
