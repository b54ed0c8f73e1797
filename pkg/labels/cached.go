package labels

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deckgrid/deckgrid/pkg/cache"
)

// labelTTL bounds storage for cached service responses. Labels are
// deterministic per request payload, so expiry is a space concern only.
const labelTTL = 7 * 24 * time.Hour

// Cached wraps an engine with a byte cache so repeated identical requests
// skip the service round-trip. Cache failures are treated as misses.
type Cached struct {
	inner Engine
	cache cache.Cache
	keyer cache.Keyer
}

var _ Engine = (*Cached)(nil)

// WithCache wraps inner with response caching. Pass nil for keyer to use the
// default key scheme.
func WithCache(inner Engine, c cache.Cache, keyer cache.Keyer) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer}
}

// DifferenceLabel returns a cached label when one exists for the request.
func (e *Cached) DifferenceLabel(ctx context.Context, req DifferenceRequest) (DifferenceLabel, error) {
	payload, _ := json.Marshal(req)
	key := e.keyer.LabelKey("difference", payload)

	if raw, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		var out DifferenceLabel
		if json.Unmarshal(raw, &out) == nil {
			return out, nil
		}
	}

	out, err := e.inner.DifferenceLabel(ctx, req)
	if err != nil {
		return DifferenceLabel{}, err
	}
	if raw, err := json.Marshal(out); err == nil {
		_ = e.cache.Set(ctx, key, raw, labelTTL)
	}
	return out, nil
}

// CAGRLabel returns a cached label when one exists for the request.
func (e *Cached) CAGRLabel(ctx context.Context, req CAGRRequest) (string, error) {
	payload, _ := json.Marshal(req)
	key := e.keyer.LabelKey("cagr", payload)

	if raw, ok, err := e.cache.Get(ctx, key); err == nil && ok {
		return string(raw), nil
	}

	label, err := e.inner.CAGRLabel(ctx, req)
	if err != nil {
		return "", err
	}
	_ = e.cache.Set(ctx, key, []byte(label), labelTTL)
	return label, nil
}
