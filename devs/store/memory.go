package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory TraceStore, the default for tests and short
// scripted runs that don't need durability across process restarts.
type MemoryStore struct {
	mu     sync.RWMutex
	traces map[string][]Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{traces: make(map[string][]Record)}
}

func (s *MemoryStore) Append(ctx context.Context, runID string, t string, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces[runID] = append(s.traces[runID], Record{Time: t, Msg: msg})
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, runID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.traces[runID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

var _ TraceStore = (*MemoryStore)(nil)
