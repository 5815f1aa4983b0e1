package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used by tests and as a seed target.
// Documents round-trip through JSON so Load sees exactly what a file or
// database backend would return.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, dataset string, out any) error {
	s.mu.RLock()
	data, ok := s.docs[dataset]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (s *MemoryStore) Save(_ context.Context, dataset string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[dataset] = data
	s.mu.Unlock()
	return nil
}
