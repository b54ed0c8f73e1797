package typography

import (
	"strings"

	"github.com/deckgrid/deckgrid/pkg/geom"
)

// Measurement model constants. Width is estimated per character as a fixed
// fraction of the point size; line height as a fixed multiple. The model is
// font-independent and never rasterizes.
const (
	charWidthRatio  = 0.55
	lineHeightRatio = 1.2
)

// CharWidthPx returns the estimated width in pixels of a single character at
// the given point size.
func CharWidthPx(sizePt float64) float64 {
	return geom.PtToPx(sizePt * charWidthRatio)
}

// LineHeightPx returns the line height in pixels for the given point size.
func LineHeightPx(sizePt float64) float64 {
	return geom.PtToPx(sizePt * lineHeightRatio)
}

// TextWidthPx returns the estimated rendered width of s at the given point
// size.
func TextWidthPx(s string, sizePt float64) float64 {
	return float64(len([]rune(s))) * CharWidthPx(sizePt)
}

// maxCharsPerLine returns how many characters fit in widthPx at sizePt.
func maxCharsPerLine(widthPx, sizePt float64) int {
	cw := CharWidthPx(sizePt)
	if cw <= 0 {
		return 0
	}
	return int(widthPx / cw)
}

// Wrap breaks text into lines no wider than widthPx at sizePt, splitting on
// word boundaries. A single word longer than a line is hard-broken rather
// than allowed to overrun.
func Wrap(text string, widthPx, sizePt float64) []string {
	limit := maxCharsPerLine(widthPx, sizePt)
	if limit < 1 {
		limit = 1
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			for len([]rune(w)) > limit {
				if cur != "" {
					lines = append(lines, cur)
					cur = ""
				}
				r := []rune(w)
				lines = append(lines, string(r[:limit]))
				w = string(r[limit:])
			}
			switch {
			case cur == "":
				cur = w
			case len([]rune(cur))+1+len([]rune(w)) <= limit:
				cur += " " + w
			default:
				lines = append(lines, cur)
				cur = w
			}
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

// Truncate cuts s with a trailing ellipsis so it fits widthPx at sizePt. The
// input is returned unchanged when it already fits.
func Truncate(s string, widthPx, sizePt float64) string {
	limit := maxCharsPerLine(widthPx, sizePt)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit < 2 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
