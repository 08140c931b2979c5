package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store for tests and single-instance
// deployments. Entries are copied on the way in and out, so callers can
// never mutate stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	patterns map[string]*SavedPattern
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{patterns: make(map[string]*SavedPattern)}
}

// Save inserts a pattern.
func (s *MemoryStore) Save(ctx context.Context, p *SavedPattern) error {
	if err := prepare(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[p.ID] = clone(p)
	return nil
}

// Get retrieves a pattern by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*SavedPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patterns[id]
	if !ok {
		return nil, notFound(id)
	}
	return clone(p), nil
}

// List returns all patterns, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*SavedPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*SavedPattern, 0, len(s.patterns))
	for _, p := range s.patterns {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete removes a pattern by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patterns[id]; !ok {
		return notFound(id)
	}
	delete(s.patterns, id)
	return nil
}

// Close does nothing for the memory backend.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

func clone(p *SavedPattern) *SavedPattern {
	c := *p
	c.ConfigJSON = append([]byte(nil), p.ConfigJSON...)
	return &c
}

var _ Store = (*MemoryStore)(nil)
