package store

import (
	"sync"

	"github.com/fortuneworks/fortune/pkg/fortune"
)

// Store is the authoritative in-memory mapping of id -> Fortune. It allows
// many concurrent readers or a single writer; the lock is held only for the
// duration of the map operation, never across a network call.
//
// Entries never expire. The store always contains at least the seeded
// defaults unless an overlay or create overwrote them under the same id.
type Store struct {
	mu       sync.RWMutex
	fortunes map[string]fortune.Fortune
}

// New returns an empty store.
func New() *Store {
	return &Store{fortunes: make(map[string]fortune.Fortune)}
}

// NewSeeded returns a store populated with the default fortune set.
func NewSeeded() *Store {
	s := New()
	for _, f := range fortune.Defaults() {
		s.fortunes[f.ID] = f
	}
	return s
}

// Get returns the fortune stored under id.
func (s *Store) Get(id string) (fortune.Fortune, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fortunes[id]
	return f, ok
}

// Put inserts or replaces the fortune under its id (last write wins).
func (s *Store) Put(f fortune.Fortune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fortunes[f.ID] = f
}

// Overlay bulk-inserts id -> message pairs from an external source, each
// insert replacing any existing entry with the same id.
func (s *Store) Overlay(entries map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, message := range entries {
		s.fortunes[id] = fortune.Fortune{ID: id, Message: message}
	}
}

// List returns a snapshot of all current entries. Order is unspecified;
// consumers must not depend on it.
func (s *Store) List() []fortune.Fortune {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fortune.Fortune, 0, len(s.fortunes))
	for _, f := range s.fortunes {
		out = append(out, f)
	}
	return out
}

// IDs returns a snapshot of the current key set.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.fortunes))
	for id := range s.fortunes {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fortunes)
}
