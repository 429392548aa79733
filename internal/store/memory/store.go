// Package memory provides a mutex-guarded in-process record store. It backs
// tests and redis-less development runs; durability is the mongodb store's
// job.
package memory

import (
	"context"
	"encoding/json"
	"sync"
)

// Store implements store.Store on plain maps.
type Store struct {
	mu     sync.RWMutex
	tables map[string][]json.RawMessage
	values map[string]string
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		tables: make(map[string][]json.RawMessage),
		values: make(map[string]string),
	}
}

func (s *Store) GetTable(_ context.Context, key string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.tables[key]
	if !ok {
		return []json.RawMessage{}, nil
	}
	out := make([]json.RawMessage, len(records))
	copy(out, records)
	return out, nil
}

func (s *Store) PutTable(_ context.Context, key string, records []json.RawMessage) error {
	cp := make([]json.RawMessage, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[key] = cp
	return nil
}

func (s *Store) GetValue(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *Store) PutValue(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
