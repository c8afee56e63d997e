package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory Store used by tests and dev mode.
// Records are kept as serialized bytes so reads hand back owned copies with
// the same decode semantics as the file store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory builds an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Exists(_ context.Context, collection, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[collection+"/"+key]
	return ok
}

func (s *MemoryStore) Create(_ context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := collection + "/" + key
	if _, exists := s.records[k]; exists {
		return ErrConflict
	}
	s.records[k] = data
	return nil
}

func (s *MemoryStore) Read(_ context.Context, collection, key string, out any) error {
	s.mu.RLock()
	data, ok := s.records[collection+"/"+key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := collection + "/" + key
	if _, exists := s.records[k]; !exists {
		return ErrNotFound
	}
	s.records[k] = data
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := collection + "/" + key
	if _, exists := s.records[k]; !exists {
		return ErrNotFound
	}
	delete(s.records, k)
	return nil
}
