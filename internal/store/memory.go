package store

import (
	"context"
	"sync"

	"github.com/questcycle/backend/internal/domain/history"
	"github.com/questcycle/backend/internal/domain/questionbank"
)

// MemoryHistory is a volatile history.Backend, used when no durable
// backend is configured and in tests.
type MemoryHistory struct {
	mu      sync.Mutex
	entries map[questionbank.ID]history.Entry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{entries: make(map[questionbank.ID]history.Entry)}
}

func (m *MemoryHistory) LoadAll(ctx context.Context) ([]history.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]history.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *MemoryHistory) Upsert(ctx context.Context, e history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.QuestionID] = e
	return nil
}

func (m *MemoryHistory) Remove(ctx context.Context, id questionbank.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *MemoryHistory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}
