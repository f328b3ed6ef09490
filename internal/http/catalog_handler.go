package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/filter"
)

type CatalogHandler struct {
	store   *catalog.Store
	timeout time.Duration
}

func NewCatalogHandler(store *catalog.Store, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{store: store, timeout: timeout}
}

type ProductsResponse struct {
	Products []domain.ProductFull `json:"products"`
	Total    int                  `json:"total"`
}

type CollectionsResponse struct {
	Collections []domain.Collection `json:"collections"`
}

type ColorsResponse struct {
	Colors []domain.Color `json:"colors"`
}

// ListProducts serves the shop listing. Filter parameters arrive as query
// params and run through an isolated filter store instance via its normal
// pending-then-apply flow, so the HTTP view and the drawer UI share one
// code path.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.store.FetchAll(ctx)
	if msg := h.store.Err(catalog.ResourceProducts); msg != "" && len(h.store.Products()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "backend_error", msg)
		return
	}

	fs := filter.NewStore()
	fs.UpdateProducts(h.store.ProductsFull())

	q := r.URL.Query()
	fs.SetSearchQuery(q.Get("search"))
	fs.SelectCollection(q.Get("collection"))
	for _, hex := range splitList(q.Get("colors")) {
		fs.TogglePendingColor(hex)
	}
	for _, size := range splitList(q.Get("sizes")) {
		fs.TogglePendingSize(size)
	}
	if v := q.Get("in_stock"); v != "" {
		inStock := v == "true"
		fs.SetPendingInStock(&inStock)
	}
	fs.ApplyFilters()

	products := fs.Filtered()
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Total: len(products)})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.store.FetchAll(ctx)

	id := chi.URLParam(r, "id")
	for _, product := range h.store.ProductsFull() {
		if product.ID == id {
			respondJSON(w, http.StatusOK, product)
			return
		}
	}
	respondError(w, http.StatusNotFound, "not_found", "product not found")
}

func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.store.FetchCollections(ctx)
	if msg := h.store.Err(catalog.ResourceCollections); msg != "" && len(h.store.Collections()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "backend_error", msg)
		return
	}
	respondJSON(w, http.StatusOK, CollectionsResponse{Collections: h.store.Collections()})
}

func (h *CatalogHandler) ListColors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	h.store.FetchColors(ctx)
	if msg := h.store.Err(catalog.ResourceColors); msg != "" && len(h.store.Colors()) == 0 {
		respondError(w, http.StatusServiceUnavailable, "backend_error", msg)
		return
	}
	respondJSON(w, http.StatusOK, ColorsResponse{Colors: h.store.Colors()})
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
