package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/deckgrid/deckgrid/pkg/cache"
	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/manifest"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

const columnManifest = `
[deck]
title = "FY25 Review"
currency = "€"

[[slide]]
title = "Revenue Growth"
subtitle = "Three straight years of expansion"
bullets = ["Margin improved", "Churn reduced"]

[slide.chart]
type = "column"
categories = ["FY23", "FY24", "FY25"]

[[slide.chart.series]]
name = "revenue"
values = [100, 120, 150]

[[slide.annotation]]
type = "cagr_arrow"
series = 0
from = 0
to = -1
`

const waterfallManifest = `
[deck]
title = "Cost Bridge"

[[slide]]
title = "Cost Bridge"
story = "waterfall"

[slide.chart]
type = "waterfall"
categories = ["Start", "Volume", "Pricing", "Mix", "End"]
waterfall_start = 100
waterfall_deltas = [30, -20, 40]
`

func mustParse(t *testing.T, src string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return m
}

func TestComposeColumnSlide(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	result, err := r.Compose(context.Background(), mustParse(t, columnManifest))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if result.Stats.SlideCount != 1 {
		t.Fatalf("SlideCount = %d, want 1", result.Stats.SlideCount)
	}

	slide := result.Deck.Slides[0]
	if slide.Pattern != "chartPlusInsight" {
		t.Errorf("pattern = %q, want chartPlusInsight", slide.Pattern)
	}

	title, ok := slide.Elements[0].(deck.TextBlock)
	if !ok || !title.Bold || title.Lines[0] != "Revenue Growth" {
		t.Errorf("first element = %#v, want bold title block", slide.Elements[0])
	}

	var bars int
	var label *deck.LabelBox
	for _, el := range slide.Elements {
		switch e := el.(type) {
		case deck.ShapeRect:
			bars++
		case deck.LabelBox:
			label = &e
		}
	}
	if bars != 3 {
		t.Errorf("bar count = %d, want 3", bars)
	}
	if label == nil {
		t.Fatal("no annotation label placed")
	}
	if label.Text != "2-Year CAGR: +22%" {
		t.Errorf("CAGR label = %q", label.Text)
	}

	safe := zone.SafeArea()
	for i, el := range slide.Elements {
		if tb, ok := el.(deck.TextBlock); ok && !safe.Contains(tb.Frame) {
			t.Errorf("element %d frame %+v escapes the safe area", i, tb.Frame)
		}
	}
}

func TestComposeWaterfallSlide(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	result, err := r.Compose(context.Background(), mustParse(t, waterfallManifest))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	slide := result.Deck.Slides[0]
	var rects, connectors, texts int
	for _, el := range slide.Elements {
		switch el.(type) {
		case deck.ShapeRect:
			rects++
		case deck.ConnectorLine:
			connectors++
		case deck.TextBlock:
			texts++
		}
	}
	// Start, three changes, end.
	if rects != 5 {
		t.Errorf("column count = %d, want 5", rects)
	}
	if connectors != 4 {
		t.Errorf("connector count = %d, want 4", connectors)
	}
	// Title plus five category labels.
	if texts != 6 {
		t.Errorf("text block count = %d, want 6", texts)
	}
}

func TestComposePreservesSlideOrder(t *testing.T) {
	src := `
[deck]
title = "Agenda"

[[slide]]
title = "One"
bullets = ["a"]

[[slide]]
title = "Two"
bullets = ["b"]

[[slide]]
title = "Three"
bullets = ["c"]
`
	r := NewRunner(nil, nil, nil, nil)
	result, err := r.Compose(context.Background(), mustParse(t, src))
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	want := []string{"One", "Two", "Three"}
	for i, slide := range result.Deck.Slides {
		if slide.Title != want[i] || slide.Index != i {
			t.Errorf("slide %d = %q (index %d), want %q", i, slide.Title, slide.Index, want[i])
		}
	}
}

func TestComposeErrorNamesSlide(t *testing.T) {
	src := `
[deck]
title = "Broken"

[[slide]]
title = "Fine"

[[slide]]
title = "Cramped"
pattern = "single"
bullets = ["no room for text"]

[slide.chart]
type = "column"
categories = ["A"]

[[slide.chart.series]]
name = "s"
values = [1]
`
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Compose(context.Background(), mustParse(t, src))
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("err = %v, want CONFIGURATION_ERROR", err)
	}
	if !strings.Contains(err.Error(), "slide 2") {
		t.Errorf("err = %v, want slide number in message", err)
	}
}

func TestDifferenceLineRejectedOnWaterfall(t *testing.T) {
	src := waterfallManifest + `
[[slide.annotation]]
type = "difference_line"
series = 0
from = 0
to = 1
`
	r := NewRunner(nil, nil, nil, nil)
	_, err := r.Compose(context.Background(), mustParse(t, src))
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("err = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestComposeDocumentDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	ctx := context.Background()

	first, hit, err := r.ComposeDocument(ctx, []byte(columnManifest), DocumentOptions{})
	if err != nil || hit {
		t.Fatalf("first compose: hit=%v err=%v", hit, err)
	}
	second, _, err := r.ComposeDocument(ctx, []byte(columnManifest), DocumentOptions{Refresh: true})
	if err != nil {
		t.Fatalf("second compose: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("recomposed document differs")
	}
}

func TestComposeDocumentCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil, nil)
	ctx := context.Background()

	first, hit, err := r.ComposeDocument(ctx, []byte(columnManifest), DocumentOptions{})
	if err != nil || hit {
		t.Fatalf("cold compose: hit=%v err=%v", hit, err)
	}

	cached, hit, err := r.ComposeDocument(ctx, []byte(columnManifest), DocumentOptions{})
	if err != nil || !hit {
		t.Fatalf("warm compose: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(first, cached) {
		t.Error("cached document differs from original")
	}

	_, hit, err = r.ComposeDocument(ctx, []byte(columnManifest), DocumentOptions{Refresh: true})
	if err != nil || hit {
		t.Fatalf("refresh compose: hit=%v err=%v", hit, err)
	}
}

func TestComposeRejectsAnnotationWithoutChart(t *testing.T) {
	src := `
[deck]
title = "Anchorless"

[[slide]]
title = "Talking points"
bullets = ["no chart here"]

[[slide.annotation]]
type = "cagr_arrow"
series = 0
from = 0
to = -1
`
	r := NewRunner(nil, nil, nil, nil)

	// The manifest is rejected up front.
	_, _, err := r.ComposeDocument(context.Background(), []byte(src), DocumentOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Fatalf("ComposeDocument err = %v, want INVALID_MANIFEST", err)
	}

	// A hand-built manifest that skips validation still errors instead of
	// dropping the annotation.
	m := &manifest.Manifest{
		Deck: manifest.Deck{Title: "Anchorless"},
		Slides: []manifest.Slide{{
			Title:       "Talking points",
			Bullets:     []string{"no chart here"},
			Annotations: []manifest.Annotation{{Type: "cagr_arrow", Series: 0, From: 0, To: -1}},
		}},
	}
	_, err = r.Compose(context.Background(), m)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("Compose err = %v, want CONFIGURATION_ERROR", err)
	}
	if !strings.Contains(err.Error(), "no chart to anchor") {
		t.Errorf("err = %v, want anchor message", err)
	}
}

func TestComposeDocumentBadManifest(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	_, _, err := r.ComposeDocument(context.Background(), []byte("not toml = ["), DocumentOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Fatalf("err = %v, want INVALID_MANIFEST", err)
	}
}

func TestSplitBullets(t *testing.T) {
	tests := []struct {
		bullets []string
		cols    int
		want    [][]string
	}{
		{[]string{"a", "b", "c"}, 1, [][]string{{"a", "b", "c"}}},
		{[]string{"a", "b", "c"}, 2, [][]string{{"a", "b"}, {"c"}}},
		{[]string{"a", "b", "c", "d"}, 2, [][]string{{"a", "b"}, {"c", "d"}}},
	}
	for _, tt := range tests {
		got := splitBullets(tt.bullets, tt.cols)
		if len(got) != len(tt.want) {
			t.Errorf("splitBullets(%d bullets, %d cols) = %v", len(tt.bullets), tt.cols, got)
			continue
		}
		for i := range got {
			if strings.Join(got[i], ",") != strings.Join(tt.want[i], ",") {
				t.Errorf("column %d = %v, want %v", i, got[i], tt.want[i])
			}
		}
	}
}
