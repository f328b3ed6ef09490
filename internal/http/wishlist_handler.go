package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/wishlist"
)

type WishlistHandler struct {
	wishlists *wishlist.Manager
	catalog   *catalog.Store
	timeout   time.Duration
}

func NewWishlistHandler(wishlists *wishlist.Manager, catalogStore *catalog.Store, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		wishlists: wishlists,
		catalog:   catalogStore,
		timeout:   timeout,
	}
}

type ToggleWishlistRequestDTO struct {
	ProductID string `json:"product_id"`
	ColorHex  string `json:"color_hex"`
	Size      string `json:"size"`
}

type WishlistResponse struct {
	Items []domain.WishlistItem `json:"items"`
	Count int                   `json:"count"`
}

type ToggleWishlistResponse struct {
	Wishlisted bool `json:"wishlisted"`
	Count      int  `json:"count"`
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store := h.wishlists.Get(ctx, getSessionID(ctx))
	respondJSON(w, http.StatusOK, WishlistResponse{Items: store.Items(), Count: store.Count()})
}

func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ToggleWishlistRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	h.catalog.FetchAll(ctx)
	product, ok := findProduct(h.catalog.ProductsFull(), req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	item := domain.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		InStock:   product.InStock,
		Size:      req.Size,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	for _, variant := range product.Colors {
		if variant.Hex == req.ColorHex {
			item.Color = variant.Name
			break
		}
	}

	store := h.wishlists.Get(ctx, getSessionID(ctx))
	wishlisted := store.Toggle(ctx, item)
	respondJSON(w, http.StatusOK, ToggleWishlistResponse{Wishlisted: wishlisted, Count: store.Count()})
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}

	store := h.wishlists.Get(ctx, getSessionID(ctx))
	store.Remove(ctx, productID)
	respondJSON(w, http.StatusOK, WishlistResponse{Items: store.Items(), Count: store.Count()})
}
