// Package manifest parses TOML deck manifests into engine inputs. A manifest
// describes the deck's metadata and each slide's content, layout pattern,
// chart data, story mode, and annotation requests.
package manifest

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/deckgrid/deckgrid/pkg/annotate"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/layout"
	"github.com/deckgrid/deckgrid/pkg/palette"
)

// Manifest is a parsed deck description.
type Manifest struct {
	Deck   Deck    `toml:"deck"`
	Slides []Slide `toml:"slide"`
}

// Deck holds deck-wide metadata.
type Deck struct {
	Title    string `toml:"title"`
	Author   string `toml:"author"`
	Scheme   string `toml:"scheme"`
	Currency string `toml:"currency"`
}

// Slide describes one slide's content and layout intent.
type Slide struct {
	Title          string       `toml:"title"`
	Subtitle       string       `toml:"subtitle"`
	Pattern        string       `toml:"pattern"`
	Story          string       `toml:"story"`
	HighlightIndex *int         `toml:"highlight_index"`
	Bullets        []string     `toml:"bullets"`
	Footnote       string       `toml:"footnote"`
	Chart          *Chart       `toml:"chart"`
	Annotations    []Annotation `toml:"annotation"`
}

// Chart holds the slide's chart data.
type Chart struct {
	Type       string   `toml:"type"` // column or waterfall
	Categories []string `toml:"categories"`
	Series     []Series `toml:"series"`

	// Waterfall-only fields.
	Start  float64   `toml:"waterfall_start"`
	Deltas []float64 `toml:"waterfall_deltas"`
}

// Series is one named value sequence.
type Series struct {
	Name   string    `toml:"name"`
	Values []float64 `toml:"values"`
}

// Annotation is one annotation request in manifest form.
type Annotation struct {
	Type      string  `toml:"type"`
	Series    int     `toml:"series"`
	From      int     `toml:"from"`
	To        int     `toml:"to"`
	Label     string  `toml:"label"`
	Secondary string  `toml:"secondary"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Text      string  `toml:"text"`
	Direction string  `toml:"direction"`
	Length    float64 `toml:"line_length"`
	Position  string  `toml:"position"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading manifest %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decoding manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Deck.Title == "" {
		return errors.New(errors.ErrCodeInvalidManifest, "deck title is required")
	}
	if len(m.Slides) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no slides")
	}
	for i, s := range m.Slides {
		if s.Title == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "slide %d has no title", i+1)
		}
		if s.Pattern != "" {
			if _, err := s.LayoutPattern(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "slide %d", i+1)
			}
		}
		if s.Story != "" {
			if _, err := s.StoryMode(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "slide %d", i+1)
			}
		}
		if s.Chart != nil {
			if err := s.Chart.validate(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "slide %d", i+1)
			}
		}
		for j := range s.Annotations {
			if s.Chart == nil {
				return errors.New(errors.ErrCodeInvalidManifest,
					"slide %d annotation %d (%s) has no chart to anchor it", i+1, j+1, s.Annotations[j].Type)
			}
			if _, err := s.Annotations[j].Request(); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "slide %d annotation %d", i+1, j+1)
			}
		}
	}
	return nil
}

func (c *Chart) validate() error {
	switch c.Type {
	case "column":
		if len(c.Series) == 0 {
			return errors.New(errors.ErrCodeInvalidManifest, "column chart has no series")
		}
		for _, s := range c.Series {
			if len(s.Values) != len(c.Categories) {
				return errors.New(errors.ErrCodeInvalidManifest,
					"series %q has %d values for %d categories", s.Name, len(s.Values), len(c.Categories))
			}
		}
	case "waterfall":
		if len(c.Deltas) == 0 {
			return errors.New(errors.ErrCodeInvalidManifest, "waterfall chart has no deltas")
		}
	default:
		return errors.New(errors.ErrCodeInvalidManifest, "unknown chart type %q", c.Type)
	}
	return nil
}

// LayoutPattern maps the slide's pattern name onto a layout pattern.
func (s *Slide) LayoutPattern() (layout.Pattern, error) {
	switch s.Pattern {
	case "single":
		return layout.PatternSingle, nil
	case "sideBySide50_50":
		return layout.PatternSideBySide, nil
	case "chartPlusInsight":
		return layout.PatternChartPlusInsight, nil
	case "topBottom":
		return layout.PatternTopBottom, nil
	case "twoColumnText":
		return layout.PatternTwoColumnText, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidManifest, "unknown layout pattern %q", s.Pattern)
	}
}

// StoryMode maps the slide's story name onto a palette story mode.
func (s *Slide) StoryMode() (palette.StoryMode, error) {
	switch s.Story {
	case "highlight":
		return palette.ModeHighlight, nil
	case "comparison":
		return palette.ModeComparison, nil
	case "sequentialSingle":
		return palette.ModeSequentialSingle, nil
	case "waterfall":
		return palette.ModeWaterfall, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidManifest, "unknown story mode %q", s.Story)
	}
}

// StoryOptions builds palette options from the slide's highlight index.
func (s *Slide) StoryOptions() palette.Options {
	opts := palette.DefaultOptions()
	if s.HighlightIndex != nil {
		opts.HighlightIndex = *s.HighlightIndex
	}
	return opts
}

// Request converts a manifest annotation into an engine request.
func (a *Annotation) Request() (annotate.Request, error) {
	switch a.Type {
	case "cagr_arrow":
		return annotate.CAGRArrow{
			Series:       a.Series,
			FromCategory: a.From,
			ToCategory:   a.To,
			Label:        a.Label,
		}, nil
	case "difference_line":
		return annotate.DifferenceLine{
			Series:       a.Series,
			FromCategory: a.From,
			ToCategory:   a.To,
			Label:        a.Label,
			Secondary:    a.Secondary,
		}, nil
	case "leader_line":
		return annotate.LeaderLine{
			X:         a.X,
			Y:         a.Y,
			Text:      a.Text,
			Direction: annotate.Direction(a.Direction),
			Length:    a.Length,
		}, nil
	case "callout":
		return annotate.Callout{
			X:        a.X,
			Y:        a.Y,
			Text:     a.Text,
			Position: annotate.Position(a.Position),
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown annotation type %q", a.Type)
	}
}
