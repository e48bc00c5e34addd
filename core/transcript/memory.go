package transcript

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used for tests and offline runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Scope][]Entry
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[Scope][]Entry{}}
}

func (s *MemoryStore) Append(_ context.Context, scope Scope, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[scope] = append(s.entries[scope], entry)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, scope Scope, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.entries[scope]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	loaded := make([]Entry, len(entries))
	copy(loaded, entries)
	return loaded, nil
}

func (s *MemoryStore) Clear(_ context.Context, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, scope)
	return nil
}
