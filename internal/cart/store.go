package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
)

// stateVersion is bumped when the persisted cart layout changes; migrate
// handles older blobs on load.
const stateVersion = 1

type persistedState struct {
	Items []domain.CartItem `json:"items"`
}

// Store is the cart state container for one session. Boot is two-phase:
// construct, then Load to hydrate from persisted state. Every mutation
// persists synchronously afterwards; persistence failures are logged and
// the store carries on in memory for the rest of the session.
type Store struct {
	storage storage.Store
	key     string
	migrate storage.MigrateFunc

	mu       sync.RWMutex
	items    []domain.CartItem
	hydrated bool

	// bootOnce guards the manager's hydrate-and-watch boot sequence.
	bootOnce sync.Once

	newID func() string
}

func NewStore(st storage.Store, sessionID string) *Store {
	return &Store{
		storage: st,
		key:     "cart:" + sessionID,
		migrate: storage.Passthrough,
		newID:   uuid.NewString,
	}
}

// Load hydrates the store from persisted state. It is called once before
// the store is handed out; counts derived from persisted items must not be
// served before it completes. A read failure leaves the store empty and
// in-memory-only, never broken.
func (s *Store) Load(ctx context.Context) {
	data, err := s.storage.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true

	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("cart load failed for %s: %v", s.key, err)
		return
	}

	state, err := storage.DecodeEnvelope(data, stateVersion, s.migrate)
	if err != nil {
		log.Printf("cart decode failed for %s: %v", s.key, err)
		return
	}

	var ps persistedState
	if err := json.Unmarshal(state, &ps); err != nil {
		log.Printf("cart state unmarshal failed for %s: %v", s.key, err)
		return
	}
	s.items = ps.Items
}

func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// AddItem merges by the composite product+color+size identity: an existing
// line gains the added quantity, otherwise a new line with a fresh id is
// appended. The resulting line is returned.
func (s *Store) AddItem(ctx context.Context, item domain.CartItem) domain.CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	key := compositeKey(item)
	merged := false
	for i := range s.items {
		if compositeKey(s.items[i]) == key {
			s.items[i].Quantity += item.Quantity
			item = s.items[i]
			merged = true
			break
		}
	}
	if !merged {
		item.ID = s.newID()
		s.items = append(s.items, item)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
	return item
}

// UpdateQuantity sets a line's quantity directly; zero or negative removes
// the line entirely.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(id)
	} else {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = quantity
				break
			}
		}
	}
	s.persistLocked(ctx)
}

func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	s.persistLocked(ctx)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked(ctx)
}

func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is a pure reduction over the current lines, never a separately
// maintained counter.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subtotal float64
	for _, item := range s.items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// Watch reconciles writes made by other holders of the same session key by
// replacing the local items wholesale. Last writer wins; no merging.
func (s *Store) Watch(ctx context.Context) error {
	ch, err := s.storage.Watch(ctx, s.key)
	if err != nil {
		return err
	}

	go func() {
		for data := range ch {
			state, err := storage.DecodeEnvelope(data, stateVersion, s.migrate)
			if err != nil {
				log.Printf("cart watch decode failed for %s: %v", s.key, err)
				continue
			}
			var ps persistedState
			if err := json.Unmarshal(state, &ps); err != nil {
				log.Printf("cart watch unmarshal failed for %s: %v", s.key, err)
				continue
			}
			s.mu.Lock()
			s.items = ps.Items
			s.mu.Unlock()
		}
	}()
	return nil
}

func (s *Store) removeLocked(id string) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := storage.EncodeEnvelope(persistedState{Items: s.items}, stateVersion)
	if err != nil {
		log.Printf("cart encode failed for %s: %v", s.key, err)
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		log.Printf("cart persist failed for %s: %v", s.key, err)
	}
}

// compositeKey is the merge identity: product plus chosen color and size.
func compositeKey(item domain.CartItem) string {
	return item.ProductID + "|" + strings.ToLower(item.ColorHex) + "|" + strings.ToLower(item.Size)
}
