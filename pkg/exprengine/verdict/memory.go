package verdict

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory verdict store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedVerdict
	seq    int
	closed bool
}

// storedVerdict holds the encoded record with its insertion order.
type storedVerdict struct {
	data     []byte
	info     Info
	sequence int
}

// NewMemoryStore creates a new in-memory verdict store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]storedVerdict),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(v *Verdict) error {
	if v == nil || v.ID == "" {
		return ErrInvalidVerdict
	}
	// Encode outside the lock; the stored copy is independent of v.
	data, err := v.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	m.data[v.ID] = storedVerdict{data: data, info: v.Info(), sequence: m.seq}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (*Verdict, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	stored, ok := m.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return Unmarshal(stored.data)
}

// List implements Store.
func (m *MemoryStore) List(limit int) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	entries := make([]storedVerdict, 0, len(m.data))
	for _, stored := range m.data {
		entries = append(entries, stored)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].sequence > entries[j].sequence
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	infos := make([]Info, len(entries))
	for i, e := range entries {
		infos[i] = e.info
	}
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored verdicts.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
