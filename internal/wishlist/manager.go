package wishlist

import (
	"context"
	"log"
	"sync"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
)

// Manager hands out one hydrated wishlist Store per session.
type Manager struct {
	storage storage.Store

	mu     sync.Mutex
	stores map[string]*Store

	watchCtx    context.Context
	watchCancel context.CancelFunc
}

func NewManager(st storage.Store) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		storage:     st,
		stores:      make(map[string]*Store),
		watchCtx:    ctx,
		watchCancel: cancel,
	}
}

func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = NewStore(m.storage, sessionID)
		m.stores[sessionID] = store
	}
	m.mu.Unlock()

	store.bootOnce.Do(func() {
		store.Load(ctx)
		if err := store.Watch(m.watchCtx); err != nil {
			log.Printf("wishlist watch unavailable for session %s: %v", sessionID, err)
		}
	})
	return store
}

func (m *Manager) Close() {
	m.watchCancel()
}
