package typography

import (
	"strings"

	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/geom"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

// Resolved is the outcome of fitting text into a container: the final point
// size, the wrapped lines, and the level's color token.
type Resolved struct {
	FontSize  float64
	Lines     []string
	Color     palette.Token
	Truncated bool
}

// HeightPx returns the total rendered height of the resolved lines.
func (r Resolved) HeightPx() float64 {
	return float64(len(r.Lines)) * LineHeightPx(r.FontSize)
}

// Resolve fits text into container according to the level's overflow policy.
// It either returns a result that fits or an UNRESOLVED_OVERFLOW error with
// the attempted size; it never silently clips.
func Resolve(level Level, text string, container geom.Rect) (Resolved, error) {
	spec, ok := LevelSpec(level)
	if !ok {
		return Resolved{}, errors.New(errors.ErrCodeConfiguration, "unknown typography level %q", level)
	}

	switch spec.Policy {
	case PolicyReduceStep:
		return resolveReduce(spec, text, container)
	case PolicyWrapReduce:
		return resolveWrapReduce(spec, text, container)
	case PolicyWrapOnly:
		return resolveWrapOnly(level, spec, text, container)
	case PolicyReposition:
		// Without neighbor geometry there is nothing to reposition against;
		// fall back to plain reduction. ResolveDataLabel handles collisions.
		return resolveReduce(spec, text, container)
	case PolicyTruncate:
		out := Truncate(text, container.W, spec.BaseSize)
		return Resolved{
			FontSize:  spec.BaseSize,
			Lines:     []string{out},
			Color:     spec.Color,
			Truncated: out != text,
		}, nil
	case PolicyDensity:
		// Density-sized text is fitted by the chart, not by this resolver.
		return Resolved{FontSize: spec.BaseSize, Lines: []string{text}, Color: spec.Color}, nil
	default:
		return Resolved{}, errors.New(errors.ErrCodeInternal, "level %q has no overflow policy", level)
	}
}

// resolveReduce shrinks a single line in fixed steps until it fits or hits
// the floor.
func resolveReduce(spec Spec, text string, container geom.Rect) (Resolved, error) {
	size := spec.BaseSize
	for {
		if fitsLine(text, size, container) {
			return Resolved{FontSize: size, Lines: []string{text}, Color: spec.Color}, nil
		}
		if size <= spec.FloorSize {
			return Resolved{}, errors.New(errors.ErrCodeUnresolvedOverflow,
				"text %q does not fit %gx%g at the %gpt floor", excerpt(text), container.W, container.H, spec.FloorSize)
		}
		size -= spec.ReduceStep
		if size < spec.FloorSize {
			size = spec.FloorSize
		}
	}
}

// resolveWrapReduce wraps first, then shrinks in steps when the wrapped block
// is too tall.
func resolveWrapReduce(spec Spec, text string, container geom.Rect) (Resolved, error) {
	size := spec.BaseSize
	for {
		lines := Wrap(text, container.W, size)
		if fitsBlock(lines, size, container) {
			return Resolved{FontSize: size, Lines: lines, Color: spec.Color}, nil
		}
		if size <= spec.FloorSize {
			return Resolved{}, errors.New(errors.ErrCodeUnresolvedOverflow,
				"text %q wraps to %d lines and does not fit %gx%g at the %gpt floor",
				excerpt(text), len(lines), container.W, container.H, spec.FloorSize)
		}
		size -= spec.ReduceStep
		if size < spec.FloorSize {
			size = spec.FloorSize
		}
	}
}

// resolveWrapOnly wraps at the base size and never resizes.
func resolveWrapOnly(level Level, spec Spec, text string, container geom.Rect) (Resolved, error) {
	lines := Wrap(text, container.W, spec.BaseSize)
	if !fitsBlock(lines, spec.BaseSize, container) {
		return Resolved{}, errors.New(errors.ErrCodeUnresolvedOverflow,
			"%s text %q wraps to %d lines exceeding height %g", level, excerpt(text), len(lines), container.H)
	}
	return Resolved{FontSize: spec.BaseSize, Lines: lines, Color: spec.Color}, nil
}

// ResolveDataLabel places a chart data label. It tries the default box first,
// then offsets outward (upward) past each colliding neighbor, and reduces the
// size toward the floor only as a last resort.
func ResolveDataLabel(text string, box geom.Rect, neighbors []geom.Rect) (geom.Rect, Resolved, error) {
	spec, _ := LevelSpec(T4)
	size := spec.BaseSize
	for {
		placed := box
		placed.W = TextWidthPx(text, size)
		placed.H = LineHeightPx(size)
		for i := 0; i < len(neighbors); i++ {
			if placed.Intersects(neighbors[i]) {
				placed.Y = neighbors[i].Y - placed.H - 2
				i = -1 // restart: the new position may hit an earlier neighbor
			}
		}
		if placed.Y >= 0 {
			return placed, Resolved{FontSize: size, Lines: []string{text}, Color: spec.Color}, nil
		}
		if size <= spec.FloorSize {
			return geom.Rect{}, Resolved{}, errors.New(errors.ErrCodeUnresolvedOverflow,
				"data label %q cannot avoid %d neighbors at the %gpt floor", excerpt(text), len(neighbors), spec.FloorSize)
		}
		size -= spec.ReduceStep
	}
}

func fitsLine(text string, size float64, container geom.Rect) bool {
	return TextWidthPx(text, size) <= container.W && LineHeightPx(size) <= container.H
}

func fitsBlock(lines []string, size float64, container geom.Rect) bool {
	return float64(len(lines))*LineHeightPx(size) <= container.H
}

// excerpt shortens long text for error messages.
func excerpt(s string) string {
	const cut = 40
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= cut {
		return s
	}
	return string(r[:cut]) + "..."
}
