package layout

import (
	"math"
	"testing"

	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/zone"
)

func TestDistributeContainment(t *testing.T) {
	content, _ := zone.Zone(zone.Content)

	cases := []struct {
		pattern Pattern
		count   int
	}{
		{PatternSingle, 1},
		{PatternSideBySide, 2},
		{PatternChartPlusInsight, 2},
		{PatternTopBottom, 2},
		{PatternTwoColumnText, 1},
		{PatternTwoColumnText, 2},
	}
	for _, c := range cases {
		regions, err := Distribute(c.pattern, c.count)
		if err != nil {
			t.Fatalf("Distribute(%s, %d): %v", c.pattern, c.count, err)
		}
		if len(regions) != c.count {
			t.Fatalf("Distribute(%s, %d): got %d regions", c.pattern, c.count, len(regions))
		}
		for _, r := range regions {
			if !content.Contains(r.Rect) {
				t.Errorf("%s %s region %+v escapes content zone %+v", c.pattern, r.Role, r.Rect, content)
			}
		}
	}
}

func TestDistributeNonOverlapAndTiling(t *testing.T) {
	content, _ := zone.Zone(zone.Content)

	cases := []struct {
		pattern  Pattern
		gutterPx float64
		vertical bool
	}{
		{PatternSideBySide, 60, false},
		{PatternChartPlusInsight, 60, false},
		{PatternTopBottom, 30, true},
	}
	for _, c := range cases {
		regions, err := Distribute(c.pattern, 2)
		if err != nil {
			t.Fatalf("Distribute(%s): %v", c.pattern, err)
		}
		a, b := regions[0].Rect, regions[1].Rect
		if a.Intersects(b) {
			t.Errorf("%s regions overlap: %+v, %+v", c.pattern, a, b)
		}

		gutterArea := c.gutterPx * a.H
		if c.vertical {
			gutterArea = c.gutterPx * a.W
		}
		total := a.Area() + b.Area() + gutterArea
		if math.Abs(total-content.Area()) > 1 {
			t.Errorf("%s tiling: regions+gutter = %g, content zone = %g", c.pattern, total, content.Area())
		}
	}
}

func TestChartPlusInsightCrossAlignment(t *testing.T) {
	regions, err := Distribute(PatternChartPlusInsight, 2)
	if err != nil {
		t.Fatal(err)
	}
	chart, text := regions[0].Rect, regions[1].Rect
	if chart.CenterY() != text.CenterY() {
		t.Errorf("text center %g != chart center %g", text.CenterY(), chart.CenterY())
	}
}

func TestDistributeSingleCap(t *testing.T) {
	content, _ := zone.Zone(zone.Content)
	regions, err := Distribute(PatternSingle, 1)
	if err != nil {
		t.Fatal(err)
	}
	r := regions[0].Rect
	if r.W != content.W*0.80 || r.H != content.H*0.80 {
		t.Errorf("single region %gx%g, want 80%% of %gx%g", r.W, r.H, content.W, content.H)
	}
	if r.CenterX() != content.CenterX() || r.CenterY() != content.CenterY() {
		t.Errorf("single region not centered: %+v", r)
	}
}

func TestDistributeBadCount(t *testing.T) {
	cases := []struct {
		pattern Pattern
		count   int
	}{
		{PatternSingle, 2},
		{PatternSideBySide, 1},
		{PatternSideBySide, 3},
		{PatternChartPlusInsight, 0},
		{PatternTopBottom, 3},
		{PatternTwoColumnText, 3},
		{Pattern("grid3x3"), 9},
	}
	for _, c := range cases {
		if _, err := Distribute(c.pattern, c.count); !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("Distribute(%s, %d): want CONFIGURATION_ERROR, got %v", c.pattern, c.count, err)
		}
	}
}

func TestTextRegions(t *testing.T) {
	content, _ := zone.Zone(zone.Content)

	tests := []struct {
		name    string
		bullets int
		chars   int
		columns int
	}{
		{"sparse stays single", 3, 200, 1},
		{"boundary stays single", 5, 500, 1},
		{"many bullets split", 6, 200, 2},
		{"long text splits", 3, 501, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions := TextRegions(tt.bullets, tt.chars)
			if len(regions) != tt.columns {
				t.Fatalf("got %d regions, want %d", len(regions), tt.columns)
			}
			if tt.columns == 1 && regions[0].Rect != content {
				t.Errorf("single region %+v, want full content zone", regions[0].Rect)
			}
			if tt.columns == 2 && regions[0].Rect.W != regions[1].Rect.W {
				t.Errorf("columns unequal: %g vs %g", regions[0].Rect.W, regions[1].Rect.W)
			}
		})
	}
}

func TestFitSingle(t *testing.T) {
	content, _ := zone.Zone(zone.Content)

	// Wide component: width binds, aspect preserved.
	r, err := FitSingle(3456, 802)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.W-content.W*0.80) > 1e-9 {
		t.Errorf("W = %g, want %g", r.W, content.W*0.80)
	}
	if math.Abs(r.W/r.H-3456.0/802.0) > 1e-9 {
		t.Errorf("aspect changed: %g", r.W/r.H)
	}

	// Small component keeps its natural size.
	r, err = FitSingle(400, 300)
	if err != nil {
		t.Fatal(err)
	}
	if r.W != 400 || r.H != 300 {
		t.Errorf("small component resized to %gx%g", r.W, r.H)
	}
	if r.CenterX() != content.CenterX() {
		t.Errorf("not centered: %+v", r)
	}

	if _, err := FitSingle(0, 100); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero size: want INVALID_INPUT, got %v", err)
	}
}

func TestSpaceAfter(t *testing.T) {
	tests := []struct {
		bullets    int
		lineHeight float64
		zoneHeight float64
		want       float64
	}{
		{3, 24, 972, 48}, // sparse spread, clamped to ceiling
		{1, 24, 972, 24}, // single bullet, clamp floor, no division
		{7, 24, 972, 12}, // dense fixed spacing
		{4, 24, 972, 12},
		{2, 300, 972, 24}, // tall lines clamp to floor
	}
	for _, tt := range tests {
		got := SpaceAfter(tt.bullets, tt.lineHeight, tt.zoneHeight)
		if got != tt.want {
			t.Errorf("SpaceAfter(%d, %g, %g) = %g, want %g", tt.bullets, tt.lineHeight, tt.zoneHeight, got, tt.want)
		}
		if got < 12 || got > 48 {
			t.Errorf("SpaceAfter(%d, %g, %g) = %g outside sane range", tt.bullets, tt.lineHeight, tt.zoneHeight, got)
		}
	}
}
