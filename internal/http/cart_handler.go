package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/cart"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/catalog"
	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog *catalog.Store
	timeout time.Duration
}

func NewCartHandler(carts *cart.Manager, catalogStore *catalog.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalogStore,
		timeout: timeout,
	}
}

type AddCartItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	ColorHex  string `json:"color_hex"`
	Size      string `json:"size"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	Subtotal   float64           `json:"subtotal"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store := h.carts.Get(ctx, getSessionID(ctx))
	respondJSON(w, http.StatusOK, cartResponse(store))
}

// AddItem resolves the product from the catalog rather than trusting
// client-supplied names and prices; the cart line snapshot comes from the
// server-side full view.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddCartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	h.catalog.FetchAll(ctx)
	product, ok := findProduct(h.catalog.ProductsFull(), req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		ColorHex:  req.ColorHex,
		Size:      req.Size,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	for _, variant := range product.Colors {
		if strings.EqualFold(variant.Hex, req.ColorHex) {
			item.Color = variant.Name
			break
		}
	}

	store := h.carts.Get(ctx, getSessionID(ctx))
	store.AddItem(ctx, item)
	respondJSON(w, http.StatusCreated, cartResponse(store))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Zero and negative quantities remove the line entirely.
	store := h.carts.Get(ctx, getSessionID(ctx))
	store.UpdateQuantity(ctx, itemID, req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID := chi.URLParam(r, "item_id")
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id is required")
		return
	}

	store := h.carts.Get(ctx, getSessionID(ctx))
	store.RemoveItem(ctx, itemID)
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store := h.carts.Get(ctx, getSessionID(ctx))
	store.Clear(ctx)
	respondJSON(w, http.StatusOK, cartResponse(store))
}

func cartResponse(store *cart.Store) CartResponse {
	return CartResponse{
		Items:      store.Items(),
		TotalItems: store.TotalItems(),
		Subtotal:   store.Subtotal(),
	}
}

func findProduct(products []domain.ProductFull, id string) (domain.ProductFull, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ProductFull{}, false
}
