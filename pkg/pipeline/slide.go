package pipeline

import (
	"context"
	"time"

	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/layout"
	"github.com/deckgrid/deckgrid/pkg/manifest"
	"github.com/deckgrid/deckgrid/pkg/observability"
	"github.com/deckgrid/deckgrid/pkg/typography"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

// composeSlide runs the full stage sequence for one slide.
func (r *Runner) composeSlide(ctx context.Context, m *manifest.Manifest, idx int) (slide deck.Slide, err error) {
	s := &m.Slides[idx]
	start := time.Now()

	declared := s.Pattern
	if declared == "" {
		declared = "auto"
	}
	observability.Layout().OnSlideStart(ctx, idx, declared)
	defer func() {
		observability.Layout().OnSlideComplete(ctx, idx, slide.Pattern, time.Since(start), err)
	}()

	slide = deck.Slide{Index: idx, Title: s.Title, Subtitle: s.Subtitle}

	var (
		pattern layout.Pattern
		regions []layout.Region
	)
	err = stage(ctx, idx, StageDistribute, func() error {
		var serr error
		pattern, regions, serr = planRegions(s)
		return serr
	})
	if err != nil {
		return slide, err
	}
	slide.Pattern = string(pattern)

	var textElems []deck.Element
	err = stage(ctx, idx, StageTypography, func() error {
		var serr error
		textElems, serr = r.buildText(s, pattern, regions)
		return serr
	})
	if err != nil {
		return slide, err
	}
	slide.Elements = append(slide.Elements, textElems...)

	if s.Chart == nil {
		if len(s.Annotations) > 0 {
			return slide, errors.New(errors.ErrCodeConfiguration,
				"%d annotations declared with no chart to anchor them", len(s.Annotations))
		}
		return slide, nil
	}

	state := &chartState{}
	err = stage(ctx, idx, StageColors, func() error {
		return state.assignColors(s)
	})
	if err != nil {
		return slide, err
	}

	err = stage(ctx, idx, StageChart, func() error {
		return state.buildGeometry(s, chartRegion(regions))
	})
	if err != nil {
		return slide, err
	}
	slide.Elements = append(slide.Elements, state.elements...)

	if len(s.Annotations) > 0 {
		var annElems []deck.Element
		err = stage(ctx, idx, StageAnnotate, func() error {
			var serr error
			annElems, serr = r.buildAnnotations(ctx, m.Deck.Currency, s, state)
			return serr
		})
		if err != nil {
			return slide, err
		}
		slide.Elements = append(slide.Elements, annElems...)
	}

	return slide, nil
}

// planRegions picks the layout pattern and allocates content regions. A
// declared pattern is honored; otherwise the pattern follows the content:
// chart plus bullets, chart alone, or a bullet list dense enough for two
// columns.
func planRegions(s *manifest.Slide) (layout.Pattern, []layout.Region, error) {
	if s.Pattern != "" {
		p, err := s.LayoutPattern()
		if err != nil {
			return "", nil, err
		}
		count := 2
		if p == layout.PatternSingle {
			count = 1
		}
		regions, err := layout.Distribute(p, count)
		return p, regions, err
	}

	hasChart := s.Chart != nil
	hasText := len(s.Bullets) > 0
	switch {
	case hasChart && hasText:
		regions, err := layout.Distribute(layout.PatternChartPlusInsight, 2)
		return layout.PatternChartPlusInsight, regions, err
	case hasChart:
		regions, err := layout.Distribute(layout.PatternSingle, 1)
		return layout.PatternSingle, regions, err
	default:
		regions := layout.TextRegions(len(s.Bullets), bulletRunes(s.Bullets))
		if len(regions) == 2 {
			return layout.PatternTwoColumnText, regions, nil
		}
		return layout.PatternSingle, regions, nil
	}
}

func bulletRunes(bullets []string) int {
	total := 0
	for _, b := range bullets {
		total += len([]rune(b))
	}
	return total
}

// chartRegion returns the region a chart should occupy: the first region of
// every pattern that carries one.
func chartRegion(regions []layout.Region) geom.Rect {
	return regions[0].Rect
}

// textRegionsOf returns the regions available for bullet text.
func textRegionsOf(s *manifest.Slide, regions []layout.Region) []geom.Rect {
	var out []geom.Rect
	for _, reg := range regions {
		switch reg.Role {
		case layout.RoleText, layout.RoleRight, layout.RoleBottom:
			out = append(out, reg.Rect)
		case layout.RoleFull, layout.RoleLeft, layout.RoleTop:
			// Chartless slides use every region for text.
			if s.Chart == nil {
				out = append(out, reg.Rect)
			}
		}
	}
	return out
}

// buildText resolves the slide's title, subtitle, bullets, and footnote, and
// shifts content regions down to make room for the subtitle.
func (r *Runner) buildText(s *manifest.Slide, pattern layout.Pattern, regions []layout.Region) ([]deck.Element, error) {
	var elems []deck.Element

	titleZone, _ := zone.Zone(zone.Title)
	title, err := typography.Resolve(typography.T1, s.Title, titleZone)
	if err != nil {
		return nil, err
	}
	elems = append(elems, deck.TextBlock{
		Frame:      geom.Rect{X: titleZone.X, Y: titleZone.Y, W: titleZone.W, H: title.HeightPx()},
		Lines:      title.Lines,
		FontSizePt: title.FontSize,
		Bold:       true,
		Color:      title.Color,
		Align:      deck.AlignLeft,
	})

	if s.Subtitle != "" {
		content, _ := zone.Zone(zone.Content)
		sub, err := typography.Resolve(typography.T2, s.Subtitle, content)
		if err != nil {
			return nil, err
		}
		elems = append(elems, deck.TextBlock{
			Frame:      geom.Rect{X: content.X, Y: content.Y, W: content.W, H: sub.HeightPx()},
			Lines:      sub.Lines,
			FontSizePt: sub.FontSize,
			Bold:       true,
			Color:      sub.Color,
			Align:      deck.AlignLeft,
		})

		// Content regions yield the subtitle's height.
		dh := sub.HeightPx() + subtitleGap
		for i := range regions {
			regions[i].Rect.Y += dh
			regions[i].Rect.H -= dh
			if regions[i].Rect.H <= 0 {
				return nil, errors.New(errors.ErrCodeUnresolvedOverflow,
					"subtitle of height %.0fpx leaves no room for the %s region", dh, regions[i].Role)
			}
		}
	}

	if len(s.Bullets) > 0 {
		textRegions := textRegionsOf(s, regions)
		if len(textRegions) == 0 {
			return nil, errors.New(errors.ErrCodeConfiguration,
				"pattern %q allocates no text region for %d bullets", pattern, len(s.Bullets))
		}
		for col, bullets := range splitBullets(s.Bullets, len(textRegions)) {
			blocks, err := stackBullets(bullets, textRegions[col])
			if err != nil {
				return nil, err
			}
			elems = append(elems, blocks...)
		}
	}

	if s.Footnote != "" {
		footer, _ := zone.Zone(zone.Footer)
		note, err := typography.Resolve(typography.T5, s.Footnote, footer)
		if err != nil {
			return nil, err
		}
		elems = append(elems, deck.TextBlock{
			Frame:      geom.Rect{X: footer.X, Y: footer.Y, W: footer.W, H: note.HeightPx()},
			Lines:      note.Lines,
			FontSizePt: note.FontSize,
			Color:      note.Color,
			Align:      deck.AlignLeft,
		})
	}

	return elems, nil
}

// splitBullets deals bullets into columns in contiguous runs, front-loaded
// so the first column is never shorter than the second.
func splitBullets(bullets []string, cols int) [][]string {
	if cols <= 1 {
		return [][]string{bullets}
	}
	per := (len(bullets) + cols - 1) / cols
	out := make([][]string, 0, cols)
	for start := 0; start < len(bullets); start += per {
		end := start + per
		if end > len(bullets) {
			end = len(bullets)
		}
		out = append(out, bullets[start:end])
	}
	return out
}

// stackBullets lays a bullet run top-down inside a region with the list's
// computed inter-bullet spacing.
func stackBullets(bullets []string, region geom.Rect) ([]deck.Element, error) {
	spec, _ := typography.LevelSpec(typography.T3)
	spacePt := layout.SpaceAfter(len(bullets), spec.BaseSize*1.2, geom.PxToPt(region.H))
	spacePx := geom.PtToPx(spacePt)

	y := region.Y
	out := make([]deck.Element, 0, len(bullets))
	for i, b := range bullets {
		avail := geom.Rect{X: region.X, Y: y, W: region.W, H: region.Bottom() - y}
		res, err := typography.Resolve(typography.T3, b, avail)
		if err != nil {
			return nil, err
		}
		h := res.HeightPx()
		out = append(out, deck.TextBlock{
			Frame:      geom.Rect{X: region.X, Y: y, W: region.W, H: h},
			Lines:      res.Lines,
			FontSizePt: res.FontSize,
			Color:      res.Color,
			Align:      deck.AlignLeft,
			SpaceAfter: spacePx,
		})
		y += h
		if i < len(bullets)-1 {
			y += spacePx
		}
	}
	return out, nil
}
