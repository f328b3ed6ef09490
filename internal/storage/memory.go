package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and when the session
// backend is unreachable; state then lives only for the process lifetime.
type MemoryStore struct {
	mu       sync.RWMutex
	blobs    map[string][]byte
	watchers map[string][]chan []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs:    make(map[string][]byte),
		watchers: make(map[string][]chan []byte),
	}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	m.mu.Lock()
	m.blobs[key] = stored
	watchers := append([]chan []byte(nil), m.watchers[key]...)
	m.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- stored:
		default:
			// Slow watcher; it will catch up on its next load.
		}
	}
	return nil
}

func (m *MemoryStore) Watch(ctx context.Context, key string) (<-chan []byte, error) {
	ch := make(chan []byte, 1)

	m.mu.Lock()
	m.watchers[key] = append(m.watchers[key], ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		watchers := m.watchers[key]
		for i, w := range watchers {
			if w == ch {
				m.watchers[key] = append(watchers[:i], watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
