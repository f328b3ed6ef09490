package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/wishlist"
)

const testTimeout = 5 * time.Second

// catalogRepoMock implements catalog.Repository for handler tests
type catalogRepoMock struct {
	mu          sync.Mutex
	products    []domain.Product
	collections []domain.Collection
	colors      []domain.Color
	err         error

	productCalls int
}

func (m *catalogRepoMock) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.productCalls++
	return m.products, m.err
}

func (m *catalogRepoMock) ListCollections(context.Context) ([]domain.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collections, m.err
}

func (m *catalogRepoMock) ListColors(context.Context) ([]domain.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.colors, m.err
}

func stockedCatalog() *catalog.Store {
	repo := &catalogRepoMock{
		products: []domain.Product{
			{
				ID:           "p1",
				Name:         "Linen Dress",
				Price:        89,
				CollectionID: "c1",
				Colors: []domain.ColorVariant{
					{Name: "Black", Hex: "#000000"},
					{Name: "Beige", Hex: "#F5F5DC"},
				},
				Sizes:     []string{"S", "M"},
				InStock:   true,
				Images:    []string{"https://cdn.nelly.example/p1.jpg"},
				CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:           "p2",
				Name:         "Dress Shirt",
				Price:        45,
				CollectionID: "c2",
				Colors:       []domain.ColorVariant{{Name: "White", Hex: "#FFFFFF"}},
				Sizes:        []string{"M", "L"},
				InStock:      false,
				CreatedAt:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		collections: []domain.Collection{
			{ID: "c1", Name: "Summer"},
			{ID: "c2", Name: "Office"},
		},
		colors: []domain.Color{
			{Name: "Black", Hex: "#000000"},
			{Name: "White", Hex: "#FFFFFF"},
		},
	}
	return catalog.NewStore(repo, time.Minute, nil)
}

func newCartManager() *cart.Manager {
	return cart.NewManager(storage.NewMemoryStore())
}

func newWishlistManager() *wishlist.Manager {
	return wishlist.NewManager(storage.NewMemoryStore())
}

// withSession attaches a session id the way SessionMiddleware does.
func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
	return r.WithContext(ctx)
}
