// Package cache provides byte caches for computed layout documents and
// remote label-service responses. The engine is deterministic, so a cached
// layout for a given manifest never goes stale; TTLs exist to bound storage,
// not correctness.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures the render options that shape a layout document.
type LayoutKeyOpts struct {
	Version string
	Compact bool
}

// Keyer generates cache keys for the cacheable artifact types.
type Keyer interface {
	// LayoutKey generates a key for composed layout documents.
	// manifestHash should be Hash of the raw manifest bytes.
	LayoutKey(manifestHash string, opts LayoutKeyOpts) string

	// LabelKey generates a key for remote label-service responses.
	LabelKey(task string, payload []byte) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for composed layout documents.
func (k *DefaultKeyer) LayoutKey(manifestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", manifestHash, opts.Version, opts.Compact)
}

// LabelKey generates a key for remote label-service responses.
func (k *DefaultKeyer) LabelKey(task string, payload []byte) string {
	return hashKey("label", task, string(payload))
}

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or tenants
// sharing one backend get separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for composed layout documents.
func (k *ScopedKeyer) LayoutKey(manifestHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(manifestHash, opts)
}

// LabelKey generates a prefixed key for remote label-service responses.
func (k *ScopedKeyer) LabelKey(task string, payload []byte) string {
	return k.prefix + k.inner.LabelKey(task, payload)
}
