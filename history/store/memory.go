// Package store provides history.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/calc-engine/history"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries map[string][]history.Entry // sessionID -> entries in append order
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]history.Entry)}
}

// Append adds a single entry. Append-only.
func (m *Memory) Append(_ context.Context, sessionID string, e history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append(m.entries[sessionID], e)
	return nil
}

// List returns entries newest first.
func (m *Memory) List(_ context.Context, sessionID string) ([]history.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[sessionID]
	result := make([]history.Entry, len(stored))
	for i, e := range stored {
		result[len(stored)-1-i] = e
	}
	return result, nil
}

func (m *Memory) Latest(_ context.Context, sessionID string) (*history.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.entries[sessionID]
	if len(stored) == 0 {
		return nil, nil
	}
	latest := stored[len(stored)-1]
	return &latest, nil
}

func (m *Memory) Get(_ context.Context, sessionID, entryID string) (*history.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries[sessionID] {
		if e.ID == entryID {
			entry := e
			return &entry, nil
		}
	}
	return nil, history.ErrEntryNotFound
}

func (m *Memory) Purge(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}
