package filter

import (
	"sync"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

// Store holds the filterable product base, the applied filter params, and a
// separate pending copy edited in the selection drawer before being
// confirmed. The base array is an explicit one-directional copy from the
// catalog (see UpdateProducts); the store never fetches on its own.
type Store struct {
	mu       sync.RWMutex
	base     []domain.ProductFull
	applied  Params
	pending  Params
	filtered []domain.ProductFull
	drawer   bool
}

func NewStore() *Store {
	return &Store{}
}

// UpdateProducts replaces the base array and recomputes the filtered view.
// This is the sole entry point for catalog data.
func (s *Store) UpdateProducts(products []domain.ProductFull) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base = append([]domain.ProductFull(nil), products...)
	s.recompute()
}

func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied.Search = q
	s.pending.Search = q
	s.recompute()
}

func (s *Store) SelectCollection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied.CollectionID = id
	s.pending.CollectionID = id
	s.recompute()
}

// TogglePendingColor toggles a hex in the pending color set. Nothing is
// applied until ApplyFilters runs.
func (s *Store) TogglePendingColor(hex string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Colors = toggle(s.pending.Colors, hex)
}

func (s *Store) TogglePendingSize(size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Sizes = toggle(s.pending.Sizes, size)
}

// SetPendingInStock sets the pending stock tri-state; nil means "any".
func (s *Store) SetPendingInStock(v *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == nil {
		s.pending.InStock = nil
		return
	}
	val := *v
	s.pending.InStock = &val
}

func (s *Store) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawer = true
}

// ApplyFilters promotes pending to applied, closes the drawer, and
// recomputes. Applying twice with unchanged pending state yields the same
// filtered array.
func (s *Store) ApplyFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = s.pending.clone()
	s.drawer = false
	s.recompute()
}

// ResetPendingFilters reverts the pending copy to the applied one, used when
// the drawer is cancelled or closed without confirming.
func (s *Store) ResetPendingFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = s.applied.clone()
}

func (s *Store) Filtered() []domain.ProductFull {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ProductFull, len(s.filtered))
	copy(out, s.filtered)
	return out
}

func (s *Store) Applied() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied.clone()
}

func (s *Store) Pending() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending.clone()
}

func (s *Store) DrawerOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drawer
}

// recompute rebuilds the derived filtered array. Callers hold s.mu.
func (s *Store) recompute() {
	s.filtered = Apply(s.base, s.applied)
}

func toggle(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, value)
}
