package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used when Redis is not configured.
// Expired entries are dropped lazily on access and during Put.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(_ context.Context, e Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, me := range s.entries {
		if !now.Before(me.expiresAt) {
			delete(s.entries, id)
		}
	}

	e.ID = newID()
	s.entries[e.ID] = memoryEntry{entry: e, expiresAt: now.Add(s.ttl)}
	return e.ID, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	if !s.now().Before(me.expiresAt) {
		delete(s.entries, id)
		return Entry{}, ErrNotFound
	}
	return me.entry, nil
}
