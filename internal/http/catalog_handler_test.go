package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
)

func TestListProducts_ReturnsJoinedCatalog(t *testing.T) {
	handler := NewCatalogHandler(stockedCatalog(), testTimeout)

	recorder := httptest.NewRecorder()
	handler.ListProducts(recorder, httptest.NewRequest("GET", "/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	// Newest first without an active search.
	assert.Equal(t, "p2", resp.Products[0].ID)
	assert.Equal(t, "Office", resp.Products[0].Collection.Name)
}

func TestListProducts_AppliesQueryFilters(t *testing.T) {
	handler := NewCatalogHandler(stockedCatalog(), testTimeout)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products?colors=%23000000&in_stock=true", nil)
	handler.ListProducts(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "p1", resp.Products[0].ID)
}

func TestListProducts_SearchRanking(t *testing.T) {
	handler := NewCatalogHandler(stockedCatalog(), testTimeout)

	recorder := httptest.NewRecorder()
	handler.ListProducts(recorder, httptest.NewRequest("GET", "/products?search=dress", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	// Prefix match ranks above plain substring match.
	assert.Equal(t, "Dress Shirt", resp.Products[0].Name)
	assert.Equal(t, "Linen Dress", resp.Products[1].Name)
}

func TestListProducts_BackendDownWithEmptyCache(t *testing.T) {
	repo := &catalogRepoMock{err: assert.AnError}
	handler := NewCatalogHandler(catalog.NewStore(repo, time.Minute, nil), testTimeout)

	recorder := httptest.NewRecorder()
	handler.ListProducts(recorder, httptest.NewRequest("GET", "/products", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestGetProduct(t *testing.T) {
	handler := NewCatalogHandler(stockedCatalog(), testTimeout)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products/p1", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "p1")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.GetProduct(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest("GET", "/products/unknown", nil)
	rctx = chi.NewRouteContext()
	rctx.URLParams.Add("id", "unknown")
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	handler.GetProduct(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListCollectionsAndColors(t *testing.T) {
	handler := NewCatalogHandler(stockedCatalog(), testTimeout)

	recorder := httptest.NewRecorder()
	handler.ListCollections(recorder, httptest.NewRequest("GET", "/collections", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var collections CollectionsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&collections))
	assert.Len(t, collections.Collections, 2)

	recorder = httptest.NewRecorder()
	handler.ListColors(recorder, httptest.NewRequest("GET", "/colors", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	var colors ColorsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&colors))
	assert.Len(t, colors.Colors, 2)
}
