// Package pipeline composes deck manifests into finalized layout documents.
//
// This package implements the complete manifest → layout → descriptor pass
// that is shared by the CLI and the HTTP server. By centralizing this logic,
// every entry point composes slides identically.
//
// # Architecture
//
// Each slide runs through the same stage sequence:
//
//  1. Distribute: pick the layout pattern and allocate content regions
//  2. Typography: resolve title, subtitle, bullets, and footnote text
//  3. Colors: assign palette tokens from the slide's color story
//  4. Chart: compute clustered column or waterfall geometry
//  5. Annotate: place annotation lines and label boxes
//
// Slides are independent of each other, so the runner composes them in
// parallel and reassembles the deck in manifest order. The whole pass is
// deterministic: the same manifest always produces the same document.
//
// # Usage
//
// Create a Runner and compose a parsed manifest:
//
//	runner := pipeline.NewRunner(cache, nil, labels.Local{}, logger)
//	result, err := runner.Compose(ctx, m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := sink.RenderJSON(result.Deck)
package pipeline

import (
	"time"

	"github.com/deckgrid/deckgrid/pkg/deck"
)

// DefaultMaxParallel bounds how many slides compose concurrently.
const DefaultMaxParallel = 4

// Stage names reported to layout hooks.
const (
	StageDistribute = "distribute"
	StageTypography = "typography"
	StageColors     = "colors"
	StageChart      = "chart"
	StageAnnotate   = "annotate"
)

// Layout constants for elements the pipeline positions itself.
const (
	subtitleGap      = 10.0 // px between subtitle block and content regions
	categoryLabelGap = 6.0  // px between plot baseline and category labels
	dataLabelGap     = 4.0  // px between bar top and its value label
	dataLabelSizePt  = 12.0
)

// Stats aggregates timing for one compose pass.
type Stats struct {
	SlideCount  int
	ComposeTime time.Duration
}

// Result is the outcome of a compose pass.
type Result struct {
	Deck  deck.Deck
	Stats Stats
}
