package kv

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store for tests and redis-less development.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[string]string{},
		lists:  map[string][]string{},
	}
}

func (s *MemoryStore) GetJSON(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (s *MemoryStore) SetJSON(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = string(raw)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	delete(s.lists, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) AppendJSON(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lists[key] = append(s.lists[key], string(raw))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ListJSON(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]string, len(s.lists[key]))
	copy(entries, s.lists[key])
	return entries, nil
}

// SetRaw stores a raw payload without marshaling, for corrupt-data tests.
func (s *MemoryStore) SetRaw(key, raw string) {
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
}
