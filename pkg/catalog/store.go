package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/deckgrid/deckgrid/pkg/errors"
)

// Store is the interface for scheme storage backends.
type Store interface {
	// Get retrieves a scheme by name.
	// Returns a SCHEME_NOT_FOUND error when no scheme has that name.
	Get(ctx context.Context, name string) (Scheme, error)

	// List returns all schemes sorted by name.
	List(ctx context.Context) ([]Scheme, error)

	// Put stores a scheme, replacing any scheme with the same name.
	Put(ctx context.Context, scheme Scheme) error
}

// MemoryStore keeps schemes in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	schemes map[string]Scheme
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{schemes: make(map[string]Scheme)}
}

// NewBuiltinStore creates an in-memory store seeded with the stock schemes.
func NewBuiltinStore() *MemoryStore {
	s := NewMemoryStore()
	for _, scheme := range Builtin() {
		s.schemes[scheme.Name] = scheme
	}
	return s
}

// Get retrieves a scheme by name.
func (s *MemoryStore) Get(_ context.Context, name string) (Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scheme, ok := s.schemes[name]
	if !ok {
		return Scheme{}, errors.New(errors.ErrCodeSchemeNotFound,
			"color scheme %q not found", name)
	}
	return scheme, nil
}

// List returns all schemes sorted by name.
func (s *MemoryStore) List(_ context.Context) ([]Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Scheme, 0, len(s.schemes))
	for _, scheme := range s.schemes {
		out = append(out, scheme)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Put stores a scheme, replacing any scheme with the same name.
func (s *MemoryStore) Put(_ context.Context, scheme Scheme) error {
	if scheme.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scheme has no name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemes[scheme.Name] = scheme
	return nil
}
