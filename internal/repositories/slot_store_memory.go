package repositories

import (
	"context"
	"fmt"
	"sync"
)

// MemorySlotStore is an in-memory implementation of SlotStore.
type MemorySlotStore struct {
	slots map[string][]byte
	mu    sync.RWMutex
}

// NewMemorySlotStore creates a new instance of MemorySlotStore.
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{
		slots: make(map[string][]byte),
	}
}

// Get returns a copy of the bytes stored under key.
func (s *MemorySlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.slots[key]
	if !ok {
		return nil, fmt.Errorf("key %s: %w", key, ErrSlotNotFound)
	}
	return append([]byte(nil), data...), nil
}

// PutAll stores every entry under a single lock.
func (s *MemorySlotStore) PutAll(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, data := range entries {
		s.slots[key] = append([]byte(nil), data...)
	}
	return nil
}

// Set overwrites a single key. Tests use it to plant raw snapshots.
func (s *MemorySlotStore) Set(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), data...)
}

func (s *MemorySlotStore) Close() error { return nil }
