package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
)

const stateVersion = 1

type persistedState struct {
	Items []domain.WishlistItem `json:"items"`
}

// Store is the wishlist state container for one session. Identity is the
// product id alone: adding a product already present is a no-op, so a
// product never appears twice.
type Store struct {
	storage storage.Store
	key     string
	migrate storage.MigrateFunc

	mu       sync.RWMutex
	items    []domain.WishlistItem
	hydrated bool

	bootOnce sync.Once

	newID func() string
}

func NewStore(st storage.Store, sessionID string) *Store {
	return &Store{
		storage: st,
		key:     "wishlist:" + sessionID,
		migrate: storage.Passthrough,
		newID:   uuid.NewString,
	}
}

func (s *Store) Load(ctx context.Context) {
	data, err := s.storage.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true

	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("wishlist load failed for %s: %v", s.key, err)
		return
	}

	state, err := storage.DecodeEnvelope(data, stateVersion, s.migrate)
	if err != nil {
		log.Printf("wishlist decode failed for %s: %v", s.key, err)
		return
	}

	var ps persistedState
	if err := json.Unmarshal(state, &ps); err != nil {
		log.Printf("wishlist state unmarshal failed for %s: %v", s.key, err)
		return
	}
	s.items = ps.Items
}

func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Add saves a product; if it is already wishlisted the call is a no-op and
// reports false.
func (s *Store) Add(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfLocked(item.ProductID) >= 0 {
		return false
	}
	item.ID = s.newID()
	s.items = append(s.items, item)
	s.persistLocked(ctx)
	return true
}

func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOfLocked(productID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persistLocked(ctx)
	}
}

// Toggle adds the product if absent and removes it if present, reporting
// whether it is wishlisted afterwards.
func (s *Store) Toggle(ctx context.Context, item domain.WishlistItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOfLocked(item.ProductID); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persistLocked(ctx)
		return false
	}
	item.ID = s.newID()
	s.items = append(s.items, item)
	s.persistLocked(ctx)
	return true
}

func (s *Store) Has(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOfLocked(productID) >= 0
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked(ctx)
}

func (s *Store) Items() []domain.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Watch replaces local items wholesale when another writer saves the same
// session key. Last writer wins.
func (s *Store) Watch(ctx context.Context) error {
	ch, err := s.storage.Watch(ctx, s.key)
	if err != nil {
		return err
	}

	go func() {
		for data := range ch {
			state, err := storage.DecodeEnvelope(data, stateVersion, s.migrate)
			if err != nil {
				log.Printf("wishlist watch decode failed for %s: %v", s.key, err)
				continue
			}
			var ps persistedState
			if err := json.Unmarshal(state, &ps); err != nil {
				log.Printf("wishlist watch unmarshal failed for %s: %v", s.key, err)
				continue
			}
			s.mu.Lock()
			s.items = ps.Items
			s.mu.Unlock()
		}
	}()
	return nil
}

func (s *Store) indexOfLocked(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := storage.EncodeEnvelope(persistedState{Items: s.items}, stateVersion)
	if err != nil {
		log.Printf("wishlist encode failed for %s: %v", s.key, err)
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		log.Printf("wishlist persist failed for %s: %v", s.key, err)
	}
}
