package typography

import (
	"strings"
	"testing"

	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

func TestLevelSpecs(t *testing.T) {
	tests := []struct {
		level  Level
		size   float64
		weight Weight
		color  palette.Token
		policy Policy
	}{
		{T1, 32, WeightBold, palette.PrimaryGreen, PolicyReduceStep},
		{T2, 20, WeightBold, palette.BodyText, PolicyWrapReduce},
		{T3, 18, WeightRegular, palette.BodyText, PolicyWrapOnly},
		{T4, 12, WeightRegular, palette.BodyText, PolicyReposition},
		{T45, 9, WeightRegular, palette.AxisGrey, PolicyDensity},
		{T5, 9, WeightRegular, palette.AxisGrey, PolicyTruncate},
	}
	for _, tt := range tests {
		spec, ok := LevelSpec(tt.level)
		if !ok {
			t.Fatalf("LevelSpec(%s): missing", tt.level)
		}
		if spec.BaseSize != tt.size || spec.Weight != tt.weight || spec.Color != tt.color || spec.Policy != tt.policy {
			t.Errorf("LevelSpec(%s) = %+v", tt.level, spec)
		}
	}
	if _, ok := LevelSpec(Level("T9")); ok {
		t.Error("unknown level reported present")
	}
}

func TestDensitySize(t *testing.T) {
	tests := []struct {
		categories  int
		avgLabelLen float64
		want        float64
	}{
		{4, 6, 9},
		{6, 0, 9},
		{8, 6, 8},
		{10, 0, 8},
		{10, 9, 7},
		{12, 12, 7},
	}
	for _, tt := range tests {
		if got := DensitySize(tt.categories, tt.avgLabelLen); got != tt.want {
			t.Errorf("DensitySize(%d, %g) = %g, want %g", tt.categories, tt.avgLabelLen, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	// 18pt body: 19.8px per character, so a 396px container fits 20 chars.
	lines := Wrap("alpha beta gamma delta", 396, 18)
	want := []string{"alpha beta gamma", "delta"}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("Wrap = %q, want %q", lines, want)
	}
}

func TestWrapHardBreaksLongWord(t *testing.T) {
	lines := Wrap(strings.Repeat("x", 45), 396, 18)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, l := range lines[:2] {
		if len(l) != 20 {
			t.Errorf("line %d has %d chars, want 20", i, len(l))
		}
	}
}

func TestResolveTitleReduces(t *testing.T) {
	// 20 chars: 704px at 32pt, 572px at 26pt. The first fitting step is 26.
	text := strings.Repeat("a", 20)
	got, err := Resolve(T1, text, geom.Rect{W: 600, H: 100})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FontSize != 26 {
		t.Errorf("FontSize = %g, want 26", got.FontSize)
	}
	if len(got.Lines) != 1 || got.Lines[0] != text {
		t.Errorf("Lines = %q", got.Lines)
	}
	if got.Color != palette.PrimaryGreen {
		t.Errorf("Color = %s", got.Color)
	}
}

func TestResolveTitleFloorEscalates(t *testing.T) {
	_, err := Resolve(T1, strings.Repeat("a", 20), geom.Rect{W: 100, H: 100})
	if !errors.Is(err, errors.ErrCodeUnresolvedOverflow) {
		t.Fatalf("want UNRESOLVED_OVERFLOW, got %v", err)
	}
}

func TestResolveSubtitleWrapsThenReduces(t *testing.T) {
	// A 60-char run in a 440px container wraps to 3 lines. At 20pt the block
	// is 144px tall; at 19pt it is 136.8px and fits a 140px container.
	text := strings.Repeat("a", 60)
	got, err := Resolve(T2, text, geom.Rect{W: 440, H: 140})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FontSize != 19 {
		t.Errorf("FontSize = %g, want 19", got.FontSize)
	}
	if len(got.Lines) != 3 {
		t.Errorf("got %d lines, want 3", len(got.Lines))
	}
}

// Subtitle reduction deliberately stops at the body base size instead of
// shrinking without bound.
func TestResolveSubtitleStopsAtBodySize(t *testing.T) {
	_, err := Resolve(T2, strings.Repeat("a", 60), geom.Rect{W: 440, H: 100})
	if !errors.Is(err, errors.ErrCodeUnresolvedOverflow) {
		t.Fatalf("want UNRESOLVED_OVERFLOW, got %v", err)
	}
	spec, _ := LevelSpec(T2)
	if spec.FloorSize != 18 {
		t.Errorf("T2 floor = %g, want 18", spec.FloorSize)
	}
}

func TestResolveBodyWrapOnly(t *testing.T) {
	got, err := Resolve(T3, "alpha beta gamma delta", geom.Rect{W: 396, H: 90})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.FontSize != 18 {
		t.Errorf("FontSize = %g, body text never resizes", got.FontSize)
	}
	if len(got.Lines) != 2 {
		t.Errorf("got %d lines, want 2", len(got.Lines))
	}

	_, err = Resolve(T3, "alpha beta gamma delta", geom.Rect{W: 396, H: 80})
	if !errors.Is(err, errors.ErrCodeUnresolvedOverflow) {
		t.Errorf("want UNRESOLVED_OVERFLOW, got %v", err)
	}
}

func TestResolveFootnoteTruncates(t *testing.T) {
	// 9pt footnote: 9.9px per character, 99px container fits 10 chars.
	got, err := Resolve(T5, "abcdefghijk", geom.Rect{W: 99, H: 30})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.Truncated {
		t.Error("expected truncation")
	}
	if got.Lines[0] != "abcdefghi…" {
		t.Errorf("Lines[0] = %q", got.Lines[0])
	}
	if got.FontSize != 9 {
		t.Errorf("FontSize = %g, footnotes never resize", got.FontSize)
	}

	got, err = Resolve(T5, "short", geom.Rect{W: 99, H: 30})
	if err != nil || got.Truncated || got.Lines[0] != "short" {
		t.Errorf("short text altered: %+v, %v", got, err)
	}
}

func TestResolveDataLabelRepositions(t *testing.T) {
	neighbor := geom.Rect{X: 100, Y: 190, W: 50, H: 20}
	placed, res, err := ResolveDataLabel("42", geom.Rect{X: 100, Y: 200}, []geom.Rect{neighbor})
	if err != nil {
		t.Fatalf("ResolveDataLabel: %v", err)
	}
	if res.FontSize != 12 {
		t.Errorf("FontSize = %g, repositioning should precede reduction", res.FontSize)
	}
	if placed.Intersects(neighbor) {
		t.Errorf("placed %+v still overlaps neighbor", placed)
	}
	if placed.Bottom() > neighbor.Y {
		t.Errorf("placed %+v not offset above neighbor", placed)
	}
}

func TestResolveDeterministic(t *testing.T) {
	container := geom.Rect{W: 440, H: 140}
	text := strings.Repeat("a", 60)
	first, err := Resolve(T2, text, container)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Resolve(T2, text, container)
		if err != nil {
			t.Fatal(err)
		}
		if again.FontSize != first.FontSize || len(again.Lines) != len(first.Lines) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}
