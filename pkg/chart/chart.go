// Package chart derives finalized bar screen geometry from chart data and a
// chart region. Annotation placement consumes these rectangles; the package
// never assigns colors or re-runs layout.
package chart

import (
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
)

// Plot-area margins as fractions of the chart region, leaving room for axis
// labels, title padding, and the legend.
const (
	plotMarginLeft   = 0.12
	plotMarginRight  = 0.02
	plotMarginTop    = 0.08
	plotMarginBottom = 0.15
)

// gapRatio is the inter-category gap as a fraction of the bar group width.
const gapRatio = 0.5

// yMaxHeadroom scales the auto axis maximum above the data maximum.
const yMaxHeadroom = 1.1

// Series is one named value sequence, clustered per category.
type Series struct {
	Name   string
	Values []float64
}

// Grid is the finalized bar geometry for a clustered column chart inside a
// chart region. It is immutable once built.
type Grid struct {
	region     geom.Rect
	plot       geom.Rect
	series     []Series
	categories int
	yMin       float64
	yMax       float64
}

// NewGrid computes bar geometry for the given region and data. The value
// axis runs from zero to 1.1 times the data maximum unless the caller
// overrides it with SetAxisMax on the returned grid.
func NewGrid(region geom.Rect, series []Series) (*Grid, error) {
	if region.W <= 0 || region.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart region %gx%g is not positive", region.W, region.H)
	}
	if len(series) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart has no series")
	}
	categories := len(series[0].Values)
	if categories == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "series %q has no values", series[0].Name)
	}
	dataMax := 0.0
	for _, s := range series {
		if len(s.Values) != categories {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"series %q has %d values, want %d", s.Name, len(s.Values), categories)
		}
		for _, v := range s.Values {
			if v > dataMax {
				dataMax = v
			}
		}
	}
	yMax := dataMax * yMaxHeadroom
	if yMax <= 0 {
		yMax = 1
	}

	return &Grid{
		region: region,
		plot: geom.Rect{
			X: region.X + plotMarginLeft*region.W,
			Y: region.Y + plotMarginTop*region.H,
			W: region.W * (1 - plotMarginLeft - plotMarginRight),
			H: region.H * (1 - plotMarginTop - plotMarginBottom),
		},
		series:     series,
		categories: categories,
		yMin:       0,
		yMax:       yMax,
	}, nil
}

// SetAxisMax overrides the auto-computed value axis maximum.
func (g *Grid) SetAxisMax(max float64) error {
	if max <= g.yMin {
		return errors.New(errors.ErrCodeInvalidInput, "axis max %g not above min %g", max, g.yMin)
	}
	g.yMax = max
	return nil
}

// Plot returns the plot area inside the chart region.
func (g *Grid) Plot() geom.Rect { return g.plot }

// NumSeries returns the series count.
func (g *Grid) NumSeries() int { return len(g.series) }

// NumCategories returns the category count.
func (g *Grid) NumCategories() int { return g.categories }

// categoryWidth is the horizontal slot per category including the gap.
func (g *Grid) categoryWidth() float64 {
	return g.plot.W / float64(g.categories)
}

// barWidth is the width of a single bar within its cluster.
func (g *Grid) barWidth() float64 {
	groupWidth := g.categoryWidth() / (1 + gapRatio)
	return groupWidth / float64(len(g.series))
}

// checkAnchor validates a series/category pair.
func (g *Grid) checkAnchor(series, category int) error {
	if series < 0 || series >= len(g.series) {
		return errors.New(errors.ErrCodeInvalidAnchor,
			"series %d out of range [0,%d)", series, len(g.series))
	}
	if category < 0 || category >= g.categories {
		return errors.New(errors.ErrCodeInvalidAnchor,
			"category %d out of range [0,%d)", category, g.categories)
	}
	return nil
}

// TopY maps a data value to its screen Y coordinate. Larger values map to
// smaller Y.
func (g *Grid) TopY(value float64) float64 {
	ratio := (value - g.yMin) / (g.yMax - g.yMin)
	return g.plot.Bottom() - ratio*g.plot.H
}

// BarRect returns the screen rectangle of one bar. Out-of-range indices are
// an invalid anchor error.
func (g *Grid) BarRect(series, category int) (geom.Rect, error) {
	if err := g.checkAnchor(series, category); err != nil {
		return geom.Rect{}, err
	}
	catWidth := g.categoryWidth()
	groupWidth := catWidth / (1 + gapRatio)
	gap := catWidth - groupWidth
	barWidth := g.barWidth()

	x := g.plot.X + float64(category)*catWidth + gap/2 + float64(series)*barWidth
	top := g.TopY(g.series[series].Values[category])
	return geom.Rect{X: x, Y: top, W: barWidth, H: g.plot.Bottom() - top}, nil
}

// BarTopCenter returns the top-center anchor point of one bar.
func (g *Grid) BarTopCenter(series, category int) (geom.Point, error) {
	r, err := g.BarRect(series, category)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Point{X: r.CenterX(), Y: r.Y}, nil
}

// HighestTopY returns the screen Y of the tallest bar across all series in
// the inclusive category range. The range order does not matter.
func (g *Grid) HighestTopY(fromCategory, toCategory int) (float64, error) {
	if err := g.checkAnchor(0, fromCategory); err != nil {
		return 0, err
	}
	if err := g.checkAnchor(0, toCategory); err != nil {
		return 0, err
	}
	lo, hi := fromCategory, toCategory
	if lo > hi {
		lo, hi = hi, lo
	}
	highest := 0.0
	for cat := lo; cat <= hi; cat++ {
		for _, s := range g.series {
			if s.Values[cat] > highest {
				highest = s.Values[cat]
			}
		}
	}
	return g.TopY(highest), nil
}

// FracPoint maps fractional chart-area coordinates to screen coordinates.
// X runs left to right, Y runs bottom to top (fy=0 is the region's bottom
// edge), matching how callers describe data points.
func (g *Grid) FracPoint(fx, fy float64) geom.Point {
	return geom.Point{X: g.region.X + fx*g.region.W, Y: g.region.Y + (1-fy)*g.region.H}
}

// Region returns the chart region the grid was built for.
func (g *Grid) Region() geom.Rect { return g.region }
