// Package layout allocates content-zone regions for a slide's components and
// computes bullet spacing.
package layout

import (
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

// Pattern names a layout distribution rule.
type Pattern string

const (
	PatternSingle           Pattern = "single"
	PatternSideBySide       Pattern = "sideBySide50_50"
	PatternChartPlusInsight Pattern = "chartPlusInsight"
	PatternTopBottom        Pattern = "topBottom"
	PatternTwoColumnText    Pattern = "twoColumnText"
)

// Role tags what a region is for.
type Role string

const (
	RoleChart  Role = "chart"
	RoleText   Role = "text"
	RoleLeft   Role = "left"
	RoleRight  Role = "right"
	RoleTop    Role = "top"
	RoleBottom Role = "bottom"
	RoleFull   Role = "full"
)

// Region is a computed rectangle plus its role. Regions live for one layout
// pass only.
type Region struct {
	Role Role
	Rect geom.Rect
}

// Single-component scale cap relative to the content zone.
const singleMaxScale = 0.80

// Two-column text trigger thresholds.
const (
	twoColumnBulletLimit = 5
	twoColumnCharLimit   = 500
)

// Distribute allocates regions in the content zone for the given pattern and
// component count. Region coordinates are fixed by the design system; an
// unsupported pattern/count combination is a configuration error, never a
// silent coercion.
func Distribute(pattern Pattern, componentCount int) ([]Region, error) {
	content, _ := zone.Zone(zone.Content)

	switch pattern {
	case PatternSingle:
		if componentCount != 1 {
			return nil, countErr(pattern, 1, componentCount)
		}
		w := content.W * singleMaxScale
		h := content.H * singleMaxScale
		return []Region{{Role: RoleFull, Rect: geom.Rect{
			X: content.CenterX() - w/2,
			Y: content.CenterY() - h/2,
			W: w,
			H: h,
		}}}, nil

	case PatternSideBySide:
		if componentCount != 2 {
			return nil, countErr(pattern, 2, componentCount)
		}
		return []Region{
			{Role: RoleLeft, Rect: geom.Rect{X: 96, Y: 154, W: 810, H: 802}},
			{Role: RoleRight, Rect: geom.Rect{X: 966, Y: 154, W: 858, H: 802}},
		}, nil

	case PatternChartPlusInsight:
		if componentCount != 2 {
			return nil, countErr(pattern, 2, componentCount)
		}
		chart := geom.Rect{X: 96, Y: 154, W: 738, H: 802}
		// The text region's vertical center is pinned to the chart's.
		text := geom.Rect{X: 894, Y: 154, W: 930, H: 802}
		text.Y = chart.CenterY() - text.H/2
		return []Region{
			{Role: RoleChart, Rect: chart},
			{Role: RoleText, Rect: text},
		}, nil

	case PatternTopBottom:
		if componentCount != 2 {
			return nil, countErr(pattern, 2, componentCount)
		}
		return []Region{
			{Role: RoleTop, Rect: geom.Rect{X: 96, Y: 154, W: 1728, H: 386}},
			{Role: RoleBottom, Rect: geom.Rect{X: 96, Y: 570, W: 1728, H: 386}},
		}, nil

	case PatternTwoColumnText:
		switch componentCount {
		case 1:
			return []Region{{Role: RoleFull, Rect: content}}, nil
		case 2:
			return []Region{
				{Role: RoleLeft, Rect: geom.Rect{X: 96, Y: 154, W: 824, H: 802}},
				{Role: RoleRight, Rect: geom.Rect{X: 1000, Y: 154, W: 824, H: 802}},
			}, nil
		default:
			return nil, countErr(pattern, 2, componentCount)
		}

	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown layout pattern %q", pattern)
	}
}

// TextRegions returns the text layout for a bullet list: two columns once the
// content is dense (more than 5 bullets or more than 500 characters), a
// single full-width region otherwise.
func TextRegions(bulletCount, textLen int) []Region {
	if bulletCount > twoColumnBulletLimit || textLen > twoColumnCharLimit {
		regions, _ := Distribute(PatternTwoColumnText, 2)
		return regions
	}
	regions, _ := Distribute(PatternTwoColumnText, 1)
	return regions
}

// FitSingle centers a component of the given natural size in the content
// zone, scaled down if needed to the single-component cap with its aspect
// ratio preserved. Components smaller than the cap keep their natural size.
func FitSingle(naturalW, naturalH float64) (geom.Rect, error) {
	if naturalW <= 0 || naturalH <= 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput,
			"component size %gx%g is not positive", naturalW, naturalH)
	}
	content, _ := zone.Zone(zone.Content)
	maxW := content.W * singleMaxScale
	maxH := content.H * singleMaxScale

	scale := 1.0
	if s := maxW / naturalW; s < scale {
		scale = s
	}
	if s := maxH / naturalH; s < scale {
		scale = s
	}
	w := naturalW * scale
	h := naturalH * scale
	return geom.Rect{
		X: content.CenterX() - w/2,
		Y: content.CenterY() - h/2,
		W: w,
		H: h,
	}, nil
}

func countErr(pattern Pattern, want, got int) error {
	return errors.New(errors.ErrCodeConfiguration,
		"pattern %q takes %d components, got %d", pattern, want, got)
}
