package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/orgcanvas/pkg/chart"
)

// MemoryStore keeps snapshots in process memory. Intended for development,
// testing and the default serve mode; contents vanish on exit.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string][]byte)}
}

// Load retrieves a snapshot by name.
func (m *MemoryStore) Load(ctx context.Context, name string) (chart.Snapshot, error) {
	if err := validName(name); err != nil {
		return chart.Snapshot{}, err
	}
	m.mu.RLock()
	data, ok := m.charts[name]
	m.mu.RUnlock()
	if !ok {
		return chart.Snapshot{}, ErrNotFound
	}
	return chart.Unmarshal(data)
}

// Save stores a snapshot under name. The snapshot is serialized on write so
// later mutations by the caller cannot alias stored state.
func (m *MemoryStore) Save(ctx context.Context, name string, s chart.Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := chart.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.charts[name] = data
	m.mu.Unlock()
	return nil
}

// Delete removes a snapshot. Missing names are a no-op.
func (m *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.charts, name)
	m.mu.Unlock()
	return nil
}

// List returns stored chart names, sorted.
func (m *MemoryStore) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.charts))
	for name := range m.charts {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

// Close does nothing for the memory store.
func (m *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
