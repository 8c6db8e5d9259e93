// Package store provides storage backends for session state.
//
// This file implements the in-memory backend, used in tests and for running
// without a database.
package store

import (
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is an in-memory session store with TTL semantics. Expiry is
// enforced on read; DeleteExpired sweeps lazily like the SQL backends.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is overridable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func memoryKey(key, workflow string) string {
	return key + "|" + workflow
}

// GetSession returns the stored payload, or (nil, nil) on a miss. An expired
// entry is a miss.
func (s *MemoryStore) GetSession(key, workflow string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[memoryKey(key, workflow)]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, nil
}

// SetSession stores the payload with the given TTL.
func (s *MemoryStore) SetSession(key, workflow string, data []byte, ttl time.Duration) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.mu.Lock()
	s.entries[memoryKey(key, workflow)] = memoryEntry{
		data:      stored,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
	slog.Debug("MemoryStore SetSession", "key", key, "workflow", workflow, "ttl", ttl)
	return nil
}

// DeleteSession removes the entry if present.
func (s *MemoryStore) DeleteSession(key, workflow string) error {
	s.mu.Lock()
	delete(s.entries, memoryKey(key, workflow))
	s.mu.Unlock()
	return nil
}

// DeleteExpired removes all entries whose TTL has elapsed.
func (s *MemoryStore) DeleteExpired() (int64, error) {
	now := s.now()
	var removed int64
	s.mu.Lock()
	for k, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	s.mu.Unlock()
	return removed, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
