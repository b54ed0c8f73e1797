package chart

import (
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
)

// ColumnKind classifies a waterfall column.
type ColumnKind string

const (
	ColumnStart    ColumnKind = "start"
	ColumnIncrease ColumnKind = "increase"
	ColumnDecrease ColumnKind = "decrease"
	ColumnFlat     ColumnKind = "flat"
	ColumnEnd      ColumnKind = "end"
)

// Column is one waterfall column: a floating or grounded rectangle plus the
// connector segment linking it to the next column's baseline. The last
// column has no connector.
type Column struct {
	Kind      ColumnKind
	Rect      geom.Rect
	Connector []geom.Point
}

// Waterfall segments a delta sequence into floating columns. The first value
// is the grounded starting total, intermediates are signed changes, and the
// final grounded column is the running total after all changes. Each column
// is linked to the next by a horizontal connector at the shared level.
func Waterfall(region geom.Rect, start float64, deltas []float64) ([]Column, error) {
	if region.W <= 0 || region.H <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart region %gx%g is not positive", region.W, region.H)
	}
	if start < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "waterfall start %g is negative", start)
	}

	// Running totals determine both the axis range and each column's span.
	levels := make([]float64, 0, len(deltas)+1)
	levels = append(levels, start)
	running := start
	max := start
	for i, d := range deltas {
		running += d
		if running < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"waterfall drops below zero after change %d", i)
		}
		levels = append(levels, running)
		if running > max {
			max = running
		}
	}

	// Reuse the clustered-bar plot geometry with one synthetic series so
	// column widths and the axis scale match a plain column chart.
	values := make([]float64, len(deltas)+2)
	values[0] = max // only the maximum matters for the axis scale
	grid, err := NewGrid(region, []Series{{Name: "waterfall", Values: values}})
	if err != nil {
		return nil, err
	}

	n := len(deltas) + 2
	cols := make([]Column, n)
	for i := 0; i < n; i++ {
		var kind ColumnKind
		var lo, hi float64
		switch {
		case i == 0:
			kind, lo, hi = ColumnStart, 0, start
		case i == n-1:
			kind, lo, hi = ColumnEnd, 0, levels[len(levels)-1]
		case deltas[i-1] > 0:
			kind, lo, hi = ColumnIncrease, levels[i-1], levels[i]
		case deltas[i-1] < 0:
			kind, lo, hi = ColumnDecrease, levels[i], levels[i-1]
		default:
			// Zero-height marker at the unchanged level, colored neutrally
			// by the waterfall story.
			kind, lo, hi = ColumnFlat, levels[i], levels[i]
		}

		slot, err := grid.BarRect(0, i)
		if err != nil {
			return nil, err
		}
		top := grid.TopY(hi)
		cols[i] = Column{
			Kind: kind,
			Rect: geom.Rect{X: slot.X, Y: top, W: slot.W, H: grid.TopY(lo) - top},
		}
	}

	// Connectors run from each column's leading level across the gap to the
	// next column at the level they share.
	for i := 0; i < n-1; i++ {
		level := levels[i]
		if i == n-2 {
			level = levels[len(levels)-1]
		}
		y := grid.TopY(level)
		cols[i].Connector = []geom.Point{
			{X: cols[i].Rect.Right(), Y: y},
			{X: cols[i+1].Rect.X, Y: y},
		}
	}
	return cols, nil
}
