package pipeline

import (
	"strconv"

	"github.com/deckgrid/deckgrid/pkg/chart"
	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/manifest"
	"github.com/deckgrid/deckgrid/pkg/palette"
	"github.com/deckgrid/deckgrid/pkg/typography"
)

// chartState accumulates the color and geometry stages of one slide's chart.
// The finished grid stays available for the annotation stage.
type chartState struct {
	tokens      []palette.Token
	perSeries   bool
	isWaterfall bool
	grid        *chart.Grid
	elements    []deck.Element
}

// assignColors runs the slide's color story and keeps the token assignment.
func (st *chartState) assignColors(s *manifest.Slide) error {
	c := s.Chart
	opts := s.StoryOptions()

	if c.Type == "waterfall" {
		// One token per column: grounded start, every delta, grounded end.
		vals := make([]float64, 0, len(c.Deltas)+2)
		vals = append(vals, 0)
		vals = append(vals, c.Deltas...)
		vals = append(vals, 0)
		tokens, err := palette.Assign(palette.ModeWaterfall, vals, opts)
		if err != nil {
			return err
		}
		st.tokens = tokens
		return nil
	}

	mode := palette.ModeSequentialSingle
	if s.Story != "" {
		var err error
		mode, err = s.StoryMode()
		if err != nil {
			return err
		}
	} else if len(c.Series) > 1 {
		mode = palette.ModeComparison
	}

	if mode == palette.ModeWaterfall {
		// Waterfall story over a plain column chart colors each bar by the
		// sign of its change from the previous bar.
		v := c.Series[0].Values
		deltas := make([]float64, len(v))
		for i := 1; i < len(v); i++ {
			deltas[i] = v[i] - v[i-1]
		}
		tokens, err := palette.Assign(mode, deltas, opts)
		if err != nil {
			return err
		}
		st.tokens = tokens
		return nil
	}

	n := len(c.Categories)
	if len(c.Series) > 1 {
		n = len(c.Series)
		st.perSeries = true
	}
	tokens, err := palette.Assign(mode, make([]float64, n), opts)
	if err != nil {
		return err
	}
	st.tokens = tokens
	return nil
}

// barColor picks the token for one bar. Multi-series charts color by series,
// single-series charts by category.
func (st *chartState) barColor(seriesIdx, categoryIdx int) palette.Token {
	if st.perSeries {
		return st.tokens[seriesIdx]
	}
	return st.tokens[categoryIdx]
}

// buildGeometry computes the chart's drawable elements inside region.
func (st *chartState) buildGeometry(s *manifest.Slide, region geom.Rect) error {
	if s.Chart.Type == "waterfall" {
		return st.buildWaterfall(s.Chart, region)
	}
	return st.buildColumns(s.Chart, region)
}

func (st *chartState) buildColumns(c *manifest.Chart, region geom.Rect) error {
	series := make([]chart.Series, len(c.Series))
	for i, s := range c.Series {
		series[i] = chart.Series{Name: s.Name, Values: s.Values}
	}

	grid, err := chart.NewGrid(region, series)
	if err != nil {
		return err
	}
	st.grid = grid
	plot := grid.Plot()

	st.elements = append(st.elements, deck.Polyline{
		Points: []geom.Point{{X: plot.X, Y: plot.Bottom()}, {X: plot.Right(), Y: plot.Bottom()}},
		Color:  palette.AxisGrey,
	})

	for si := range series {
		for ci := range series[si].Values {
			bar, err := grid.BarRect(si, ci)
			if err != nil {
				return err
			}
			st.elements = append(st.elements, deck.ShapeRect{Frame: bar, Fill: st.barColor(si, ci)})
		}
	}

	st.categoryLabels(c.Categories, plot)

	// Value labels stay readable on single-series charts only; clustered
	// charts leave values to annotations.
	if len(series) == 1 {
		if err := st.dataLabels(grid, series[0].Values); err != nil {
			return err
		}
	}
	return nil
}

func (st *chartState) buildWaterfall(c *manifest.Chart, region geom.Rect) error {
	cols, err := chart.Waterfall(region, c.Start, c.Deltas)
	if err != nil {
		return err
	}
	st.isWaterfall = true

	baseline := 0.0
	for i, col := range cols {
		st.elements = append(st.elements, deck.ShapeRect{Frame: col.Rect, Fill: st.tokens[i]})
		if len(col.Connector) == 2 {
			st.elements = append(st.elements, deck.ConnectorLine{
				From:  col.Connector[0],
				To:    col.Connector[1],
				Color: palette.AxisGrey,
			})
		}
		if col.Rect.Bottom() > baseline {
			baseline = col.Rect.Bottom()
		}
	}

	if len(c.Categories) == len(cols) {
		size := typography.DensitySize(len(c.Categories), avgLabelLen(c.Categories))
		for i, label := range c.Categories {
			st.elements = append(st.elements, labelBelow(label, cols[i].Rect.CenterX(), baseline, size))
		}
	}

	// Fractional annotation anchors need the chart region; a running-total
	// series stands in for bar geometry.
	totals := make([]float64, 0, len(cols))
	run := c.Start
	totals = append(totals, run)
	for _, d := range c.Deltas {
		run += d
		totals = append(totals, run)
	}
	totals = append(totals, run)
	grid, err := chart.NewGrid(region, []chart.Series{{Name: "total", Values: totals}})
	if err != nil {
		return err
	}
	st.grid = grid
	return nil
}

// categoryLabels centers one density-sized label under each category slot.
func (st *chartState) categoryLabels(categories []string, plot geom.Rect) {
	if len(categories) == 0 {
		return
	}
	size := typography.DensitySize(len(categories), avgLabelLen(categories))
	slot := plot.W / float64(len(categories))
	for i, label := range categories {
		cx := plot.X + (float64(i)+0.5)*slot
		st.elements = append(st.elements, labelBelow(label, cx, plot.Bottom(), size))
	}
}

func labelBelow(text string, centerX, topY, sizePt float64) deck.TextBlock {
	w := typography.TextWidthPx(text, sizePt)
	return deck.TextBlock{
		Frame: geom.Rect{
			X: centerX - w/2,
			Y: topY + categoryLabelGap,
			W: w,
			H: typography.LineHeightPx(sizePt),
		},
		Lines:      []string{text},
		FontSizePt: sizePt,
		Color:      palette.AxisGrey,
		Align:      deck.AlignCenter,
	}
}

// dataLabels places one value label per bar, shifted or shrunk when labels
// of neighboring bars would collide.
func (st *chartState) dataLabels(grid *chart.Grid, values []float64) error {
	lineH := typography.LineHeightPx(dataLabelSizePt)
	placed := make([]geom.Rect, 0, len(values))
	for ci, v := range values {
		bar, err := grid.BarRect(0, ci)
		if err != nil {
			return err
		}
		text := formatValue(v)
		w := typography.TextWidthPx(text, dataLabelSizePt)
		box := geom.Rect{
			X: bar.CenterX() - w/2,
			Y: bar.Y - lineH - dataLabelGap,
			W: w,
			H: lineH,
		}
		frame, res, err := typography.ResolveDataLabel(text, box, placed)
		if err != nil {
			return err
		}
		st.elements = append(st.elements, deck.TextBlock{
			Frame:      frame,
			Lines:      res.Lines,
			FontSizePt: res.FontSize,
			Color:      res.Color,
			Align:      deck.AlignCenter,
		})
		placed = append(placed, frame)
	}
	return nil
}

func avgLabelLen(labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}
	total := 0
	for _, l := range labels {
		total += len([]rune(l))
	}
	return float64(total) / float64(len(labels))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
