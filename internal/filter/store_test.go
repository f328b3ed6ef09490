package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PendingEditsDoNotAffectFilteredUntilApplied(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	store.OpenDrawer()
	store.TogglePendingColor("#000000")

	assert.Len(t, store.Filtered(), 3, "pending edits must not change the filtered view")

	store.ApplyFilters()

	filtered := store.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "p3", filtered[0].ID)
	assert.False(t, store.DrawerOpen())
}

func TestStore_ApplyFiltersIsIdempotent(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	store.TogglePendingSize("M")
	store.ApplyFilters()
	first := store.Filtered()

	store.ApplyFilters()
	second := store.Filtered()

	assert.Equal(t, first, second)
}

func TestStore_ToggleRemovesOnSecondCall(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	store.TogglePendingColor("#000000")
	store.TogglePendingColor("#000000")
	store.ApplyFilters()

	assert.Len(t, store.Filtered(), 3)
	assert.Empty(t, store.Applied().Colors)
}

func TestStore_ResetPendingRevertsToApplied(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	store.TogglePendingColor("#FFFFFF")
	store.ApplyFilters()

	store.OpenDrawer()
	store.TogglePendingColor("#000000")
	store.SetPendingInStock(boolPtr(true))
	store.ResetPendingFilters()

	pending := store.Pending()
	assert.Equal(t, []string{"#FFFFFF"}, pending.Colors)
	assert.Nil(t, pending.InStock)
}

func TestStore_SearchAndCollectionApplyImmediately(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	store.SetSearchQuery("dress shirt")
	filtered := store.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)

	store.SetSearchQuery("")
	store.SelectCollection("2")
	filtered = store.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)
}

func TestStore_UpdateProductsRecomputesUnderActiveFilter(t *testing.T) {
	store := NewStore()
	store.TogglePendingSize("XL")
	store.ApplyFilters()

	assert.Empty(t, store.Filtered())

	store.UpdateProducts(testProducts())

	filtered := store.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "p3", filtered[0].ID)
}

func TestStore_FilteredReturnsCopy(t *testing.T) {
	store := NewStore()
	store.UpdateProducts(testProducts())

	out := store.Filtered()
	require.NotEmpty(t, out)
	out[0].ID = "mutated"

	assert.Equal(t, "p3", store.Filtered()[0].ID)
}
