package storage

import (
	"context"
	"sort"
	"sync"
)

/*
MemoryBackend is the non-durable Backend implementation, grounded on
eliasdb's MemoryGraphStorage/MemoryStorageManager: a plain map with
sorted-key iteration on scan. Used as the default backend for tests and
for callers who don't need durability (§4.1).
*/
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

/*
NewMemoryBackend creates a new, empty in-memory backend.
*/
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Put(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	m.data[string(key)] = buf
	return nil
}

func (m *MemoryBackend) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	buf := make([]byte, len(v))
	copy(buf, v)
	return buf, true, nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, string(key))
	return nil
}

func (m *MemoryBackend) ScanPrefix(ctx context.Context, prefix []byte, fn func(key, value []byte) error) error {
	m.mu.RLock()
	p := string(prefix)
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if len(k) >= len(p) && k[:len(p)] == p {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// Snapshot values under the read lock, then call fn outside it so a
	// user fn that re-enters the backend can't deadlock against us.
	type kv struct {
		k string
		v []byte
	}
	snap := make([]kv, 0, len(keys))
	for _, k := range keys {
		snap = append(snap, kv{k, m.data[k]})
	}
	m.mu.RUnlock()

	for _, e := range snap {
		if err := fn([]byte(e.k), e.v); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryBackend) WriteBatch(ctx context.Context, muts []Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// In-memory: nothing can fail mid-batch, so this is trivially atomic.
	for _, mut := range muts {
		switch mut.Kind {
		case OpPut:
			buf := make([]byte, len(mut.Value))
			copy(buf, mut.Value)
			m.data[string(mut.Key)] = buf
		case OpDelete:
			delete(m.data, string(mut.Key))
		}
	}
	return nil
}

func (m *MemoryBackend) Flush() error { return nil }

func (m *MemoryBackend) Close() error { return nil }
