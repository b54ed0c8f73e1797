package pipeline

import (
	"context"
	"math"

	"github.com/deckgrid/deckgrid/pkg/annotate"
	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/labels"
	"github.com/deckgrid/deckgrid/pkg/manifest"
)

// buildAnnotations places every annotation of a slide against the finished
// chart grid. Empty labels are filled through the runner's label engine
// before placement.
func (r *Runner) buildAnnotations(ctx context.Context, currency string, s *manifest.Slide, state *chartState) ([]deck.Element, error) {
	elems := make([]deck.Element, 0, 2*len(s.Annotations))
	for i := range s.Annotations {
		req, err := s.Annotations[i].Request()
		if err != nil {
			return nil, err
		}
		if state.isWaterfall {
			switch req.(type) {
			case annotate.CAGRArrow, annotate.DifferenceLine:
				return nil, errors.New(errors.ErrCodeConfiguration,
					"%s annotations need column bar geometry", s.Annotations[i].Type)
			}
		}
		req, err = r.fillLabel(ctx, currency, s.Chart, req)
		if err != nil {
			return nil, err
		}
		g, err := annotate.Place(req, state.grid)
		if err != nil {
			return nil, err
		}
		elems = append(elems, geometryElements(g)...)
	}
	return elems, nil
}

// fillLabel generates a label for requests that arrive without one.
func (r *Runner) fillLabel(ctx context.Context, currency string, c *manifest.Chart, req annotate.Request) (annotate.Request, error) {
	switch q := req.(type) {
	case annotate.CAGRArrow:
		if q.Label != "" {
			return q, nil
		}
		vals, from, to, err := annotationSpan(c, q.Series, q.FromCategory, q.ToCategory)
		if err != nil {
			return nil, err
		}
		if vals[from] <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"growth rate needs a positive start value, got %g", vals[from])
		}
		years := to - from
		if years < 1 {
			years = 1
		}
		rate := math.Pow(vals[to]/vals[from], 1/float64(years)) - 1
		label, err := r.Labels.CAGRLabel(ctx, labels.CAGRRequest{
			Series: vals[from : to+1],
			Rate:   rate,
		})
		if err != nil {
			return nil, err
		}
		q.Label = label
		return q, nil

	case annotate.DifferenceLine:
		if q.Label != "" {
			return q, nil
		}
		vals, from, to, err := annotationSpan(c, q.Series, q.FromCategory, q.ToCategory)
		if err != nil {
			return nil, err
		}
		dir := labels.DirectionIncrease
		if vals[to] < vals[from] {
			dir = labels.DirectionReduction
		}
		label, err := r.Labels.DifferenceLabel(ctx, labels.DifferenceRequest{
			StartValue: vals[from],
			EndValue:   vals[to],
			Currency:   currency,
			Direction:  dir,
		})
		if err != nil {
			return nil, err
		}
		q.Label = label.Primary
		q.Secondary = label.Secondary
		return q, nil
	}
	return req, nil
}

// annotationSpan resolves category anchors against chart data. A negative
// "to" index counts back from the last category.
func annotationSpan(c *manifest.Chart, series, from, to int) ([]float64, int, int, error) {
	if c == nil || series < 0 || series >= len(c.Series) {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidAnchor, "series %d out of range", series)
	}
	vals := c.Series[series].Values
	if to < 0 {
		to = len(vals) + to
	}
	if from < 0 || from >= len(vals) || to < 0 || to >= len(vals) {
		return nil, 0, 0, errors.New(errors.ErrCodeInvalidAnchor,
			"categories %d..%d out of range for %d values", from, to, len(vals))
	}
	if from > to {
		from, to = to, from
	}
	return vals, from, to, nil
}

// geometryElements converts placed annotation geometry into deck elements.
func geometryElements(g annotate.Geometry) []deck.Element {
	var out []deck.Element
	if len(g.Line) > 0 {
		out = append(out, deck.Polyline{Points: g.Line, Color: g.LineColor, Dashed: g.Dashed})
	}
	out = append(out, deck.LabelBox{
		Frame:      g.Label,
		Text:       g.LabelText,
		Secondary:  g.Secondary,
		FontSizePt: g.LabelStyle.SizePt,
		Bold:       g.LabelStyle.Bold,
		Color:      g.LabelStyle.Color,
		Fill:       g.Fill,
		Border:     g.Border,
		Align:      alignOf(g.LabelAlign),
	})
	return out
}

func alignOf(side annotate.Side) deck.Align {
	switch side {
	case annotate.SideRight:
		return deck.AlignRight
	case annotate.SideLeft:
		return deck.AlignLeft
	default:
		return deck.AlignCenter
	}
}
