package store

import (
	"context"
	"sync"

	"github.com/dedalus-labs/viz-mcp-example/vizmodel"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string]*vizmodel.Dataset
}

// NewMemoryStore returns a process-local StateStore. Intended for tests and
// single-process runs; nothing survives a restart.
func NewMemoryStore() StateStore {
	return &inMemory{}
}

func (m *inMemory) Read(_ context.Context, scope string) (*vizmodel.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return vizmodel.NewDataset(), nil
	}
	return m.storage[scope].Clone(), nil
}

func (m *inMemory) Write(_ context.Context, scope string, ds *vizmodel.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string]*vizmodel.Dataset)
	}
	m.storage[scope] = ds.Clone()
	return nil
}
