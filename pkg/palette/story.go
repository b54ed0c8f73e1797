package palette

import "github.com/deckgrid/deckgrid/pkg/errors"

// StoryMode governs how tokens map onto an ordered sequence of chart
// elements.
type StoryMode string

const (
	// ModeHighlight colors one element with the primary token and greys out
	// the rest. Without a highlight index every element is neutral.
	ModeHighlight StoryMode = "highlight"

	// ModeComparison assigns the sequential ramp across series of equal
	// narrative weight.
	ModeComparison StoryMode = "comparison"

	// ModeSequentialSingle assigns the sequential ramp across the categories
	// of a single series.
	ModeSequentialSingle StoryMode = "sequential_single"

	// ModeWaterfall colors grounded start/end columns with the primary token,
	// increases with the sequential ramp, and decreases with the negative
	// token.
	ModeWaterfall StoryMode = "waterfall"
)

// NoHighlight marks the absence of a highlight index.
const NoHighlight = -1

// Options tunes token assignment for a story mode.
type Options struct {
	// HighlightIndex selects the highlighted element under ModeHighlight.
	// Use NoHighlight for the single-series default (all neutral).
	HighlightIndex int

	// Request asks for a specific token to participate in the assignment
	// (e.g. an explicit highlight color). Modes that exclude the requested
	// token fail fast with a configuration error instead of substituting.
	Request Token
}

// DefaultOptions returns Options with no highlight and no token request.
func DefaultOptions() Options {
	return Options{HighlightIndex: NoHighlight}
}

// Assign maps each element of a chart series onto a palette token according
// to the story mode. For ModeWaterfall, deltas carries each element's signed
// change; for the other modes only len(deltas) matters.
//
// Assignment is a pure function of (mode, ordered delta signs, options):
// identical input always yields identical output. The result never contains
// a token outside the closed palette.
func Assign(mode StoryMode, deltas []float64, opts Options) ([]Token, error) {
	if len(deltas) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "story mode %q: no elements to color", mode)
	}
	if opts.Request != "" && !opts.Request.Valid() {
		return nil, errors.New(errors.ErrCodeConfiguration, "requested color %q is outside the closed palette", opts.Request)
	}

	switch mode {
	case ModeHighlight:
		return assignHighlight(len(deltas), opts)
	case ModeComparison, ModeSequentialSingle:
		return assignSequential(len(deltas)), nil
	case ModeWaterfall:
		return assignWaterfall(deltas, opts)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown story mode %q", mode)
	}
}

// assignHighlight colors the highlighted element and greys out the rest.
func assignHighlight(n int, opts Options) ([]Token, error) {
	highlight := PrimaryGreen
	if opts.Request != "" {
		highlight = opts.Request
	}

	out := make([]Token, n)
	for i := range out {
		out[i] = LightGrey
	}
	if opts.HighlightIndex == NoHighlight {
		return out, nil
	}
	if opts.HighlightIndex < 0 || opts.HighlightIndex >= n {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"highlight index %d out of range for %d elements", opts.HighlightIndex, n)
	}
	out[opts.HighlightIndex] = highlight
	return out, nil
}

// assignSequential cycles the 4-shade ramp across n elements.
func assignSequential(n int) []Token {
	out := make([]Token, n)
	for i := range out {
		out[i] = Sequential[i%len(Sequential)]
	}
	return out
}

// assignWaterfall applies positional semantics: the first and last elements
// are grounded columns and always primary. Each strictly-increasing
// intermediate consumes the next sequential shade, cycling every 4
// independently of element count. Strictly-decreasing intermediates are
// always negative and never cycle. Flat intermediates stay neutral.
func assignWaterfall(deltas []float64, opts Options) ([]Token, error) {
	if opts.Request == AccentBlue {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"color %q is excluded from waterfall mode", AccentBlue)
	}

	n := len(deltas)
	out := make([]Token, n)
	out[0] = PrimaryGreen
	out[n-1] = PrimaryGreen

	increases := 0
	for i := 1; i < n-1; i++ {
		switch {
		case deltas[i] > 0:
			out[i] = Sequential[increases%len(Sequential)]
			increases++
		case deltas[i] < 0:
			out[i] = NegativeRed
		default:
			out[i] = LightGrey
		}
	}
	return out, nil
}
