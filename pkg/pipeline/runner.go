package pipeline

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deckgrid/deckgrid/pkg/buildinfo"
	"github.com/deckgrid/deckgrid/pkg/cache"
	"github.com/deckgrid/deckgrid/pkg/deck"
	"github.com/deckgrid/deckgrid/pkg/deck/sink"
	"github.com/deckgrid/deckgrid/pkg/errors"
	"github.com/deckgrid/deckgrid/pkg/labels"
	"github.com/deckgrid/deckgrid/pkg/manifest"
	"github.com/deckgrid/deckgrid/pkg/observability"
)

// Runner encapsulates compose execution with caching. Both CLI and server
// use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators; it stores no compose
// results. Multiple goroutines can safely share one Runner.
type Runner struct {
	Cache       cache.Cache
	Keyer       cache.Keyer
	Labels      labels.Engine
	Logger      *log.Logger
	MaxParallel int
}

// NewRunner creates a runner with the given cache, keyer, and label engine.
// A nil cache disables caching, a nil keyer selects the default keyer, a nil
// engine selects the local formatter, and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, engine labels.Engine, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if engine == nil {
		engine = labels.Local{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Labels:      engine,
		Logger:      logger,
		MaxParallel: DefaultMaxParallel,
	}
}

// Compose runs the layout pass for every slide of a parsed manifest and
// returns the finalized descriptor tree. Slides compose concurrently; the
// result preserves manifest order. The first slide error aborts the pass.
func (r *Runner) Compose(ctx context.Context, m *manifest.Manifest) (*Result, error) {
	start := time.Now()

	d := deck.Deck{
		Title:    m.Deck.Title,
		Author:   m.Deck.Author,
		Scheme:   m.Deck.Scheme,
		Currency: m.Deck.Currency,
		Slides:   make([]deck.Slide, len(m.Slides)),
	}

	slideErrs := make([]error, len(m.Slides))
	var wg sync.WaitGroup

	parallel := r.MaxParallel
	if parallel < 1 {
		parallel = 1
	}
	sem := make(chan struct{}, parallel)

	for i := range m.Slides {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			slide, err := r.composeSlide(ctx, m, idx)
			if err != nil {
				code := errors.GetCode(err)
				if code == "" {
					code = errors.ErrCodeInternal
				}
				slideErrs[idx] = errors.Wrap(code, err, "slide %d", idx+1)
				return
			}
			d.Slides[idx] = slide
		}(i)
	}
	wg.Wait()

	for _, err := range slideErrs {
		if err != nil {
			return nil, err
		}
	}

	r.Logger.Info("composed deck",
		"title", d.Title,
		"slides", len(d.Slides),
		"duration", time.Since(start))

	return &Result{
		Deck: d,
		Stats: Stats{
			SlideCount:  len(d.Slides),
			ComposeTime: time.Since(start),
		},
	}, nil
}

// DocumentOptions configure ComposeDocument.
type DocumentOptions struct {
	// Compact emits the document without indentation.
	Compact bool
	// Refresh bypasses the cache and recomputes.
	Refresh bool
	// TTL bounds how long the composed document stays cached.
	// Zero keeps it indefinitely; the engine is deterministic, so cached
	// documents never go stale.
	TTL time.Duration
}

// ComposeDocument parses raw manifest bytes, composes the deck, and returns
// the JSON layout document, with caching keyed by the manifest hash and
// engine version. The second return value reports a cache hit.
func (r *Runner) ComposeDocument(ctx context.Context, raw []byte, opts DocumentOptions) ([]byte, bool, error) {
	key := r.Keyer.LayoutKey(cache.Hash(raw), cache.LayoutKeyOpts{
		Version: buildinfo.Version,
		Compact: opts.Compact,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	m, err := manifest.Parse(raw)
	if err != nil {
		return nil, false, err
	}

	result, err := r.Compose(ctx, m)
	if err != nil {
		return nil, false, err
	}

	sinkOpts := []sink.JSONOption{sink.WithJSONVersion(buildinfo.Version)}
	if opts.Compact {
		sinkOpts = append(sinkOpts, sink.WithJSONCompact())
	}
	doc, err := sink.RenderJSON(result.Deck, sinkOpts...)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, doc, opts.TTL); err != nil {
		r.Logger.Warn("layout cache write failed", "err", err)
	}
	return doc, false, nil
}

// stage runs one named slide stage with hook instrumentation.
func stage(ctx context.Context, slideIndex int, name string, fn func() error) error {
	observability.Layout().OnStageStart(ctx, slideIndex, name)
	start := time.Now()
	err := fn()
	observability.Layout().OnStageComplete(ctx, slideIndex, name, time.Since(start), err)
	return err
}
