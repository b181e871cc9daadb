package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used by tests and ephemeral local play.
// Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage // collection → id → doc
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]map[string]json.RawMessage{}}
}

func (m *Memory) Get(_ context.Context, collection, id string, doc any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[collection][id]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[collection] == nil {
		m.data[collection] = map[string]json.RawMessage{}
	}
	m.data[collection][id] = raw
	return nil
}

func (m *Memory) Update(_ context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	merged, err := mergeFields(m.data[collection][id], fields)
	if err != nil {
		return err
	}
	if m.data[collection] == nil {
		m.data[collection] = map[string]json.RawMessage{}
	}
	m.data[collection][id] = merged
	return nil
}

func (m *Memory) Query(_ context.Context, collection string, filter map[string]any) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []json.RawMessage
	for _, raw := range m.data[collection] {
		if matchesFilter(raw, filter) {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }
