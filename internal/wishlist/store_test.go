package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/storage"
)

func dress() domain.WishlistItem {
	return domain.WishlistItem{
		ProductID: "p1",
		Name:      "Linen Dress",
		Price:     89,
		InStock:   true,
	}
}

func TestAdd_DeduplicatesByProductID(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), "s1")
	ctx := context.Background()

	assert.True(t, store.Add(ctx, dress()))

	// Same product with a different chosen color is still the same entry.
	again := dress()
	again.Color = "Beige"
	assert.False(t, store.Add(ctx, again))

	assert.Equal(t, 1, store.Count())
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), "s1")
	ctx := context.Background()

	assert.True(t, store.Toggle(ctx, dress()))
	assert.True(t, store.Has("p1"))

	assert.False(t, store.Toggle(ctx, dress()))
	assert.False(t, store.Has("p1"))
	assert.Zero(t, store.Count())
}

func TestRemove_MissingProductIsNoop(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), "s1")
	ctx := context.Background()

	store.Add(ctx, dress())
	store.Remove(ctx, "unknown")

	assert.Equal(t, 1, store.Count())

	store.Remove(ctx, "p1")
	assert.Zero(t, store.Count())
}

func TestLoad_RoundTripsThroughStorage(t *testing.T) {
	backend := storage.NewMemoryStore()
	ctx := context.Background()

	first := NewStore(backend, "s1")
	first.Load(ctx)
	first.Add(ctx, dress())

	second := NewStore(backend, "s1")
	second.Load(ctx)

	require.True(t, second.Hydrated())
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.NotEmpty(t, items[0].ID)
}

func TestClear_EmptiesWishlist(t *testing.T) {
	store := NewStore(storage.NewMemoryStore(), "s1")
	ctx := context.Background()

	store.Add(ctx, dress())
	store.Add(ctx, domain.WishlistItem{ProductID: "p2", Name: "Shirt"})
	store.Clear(ctx)

	assert.Zero(t, store.Count())
	assert.Empty(t, store.Items())
}
